// Code-assistant executable discovery.
// Locates the external CLI code-assistant tool that the assistant agent
// drives as a subprocess.
package credentials

import (
	"fmt"
	"os"
	"os/exec"
)

// AssistantPathEnv overrides executable lookup when set.
const AssistantPathEnv = "UCP_ASSISTANT_PATH"

// DefaultAssistantName is the executable searched for on PATH when no
// override is set.
const DefaultAssistantName = "copilot"

// FindAssistant returns the path to the code-assistant executable.
// UCP_ASSISTANT_PATH takes priority; otherwise the default name is
// looked up on PATH. Returns an error naming both options when neither
// yields an executable.
func FindAssistant() (string, error) {
	return findAssistant(DefaultAssistantName)
}

func findAssistant(name string) (string, error) {
	if path := os.Getenv(AssistantPathEnv); path != "" {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || info.Mode().Perm()&0111 == 0 {
			return "", fmt.Errorf("%s is set but not executable: %s", AssistantPathEnv, path)
		}
		return path, nil
	}

	if path, err := exec.LookPath(name); err == nil {
		return path, nil
	}

	return "", fmt.Errorf(
		"%s executable not found: install it and ensure %q is on PATH, or set %s to the binary",
		name, name, AssistantPathEnv)
}
