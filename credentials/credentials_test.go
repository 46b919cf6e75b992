package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeCredsFile(t *testing.T, content string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.toml")
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		t.Fatalf("write credentials file: %v", err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeCredsFile(t, `
[llm]
api_key = "generic-key"

[anthropic]
api_key = "anthropic-key"
`, 0600)

	creds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}

	if got := creds.GetAPIKey("anthropic"); got != "anthropic-key" {
		t.Errorf("GetAPIKey(anthropic) = %q", got)
	}
	// Falls back to [llm] for providers without their own section.
	if got := creds.GetAPIKey("openai"); got != "generic-key" {
		t.Errorf("GetAPIKey(openai) = %q", got)
	}
}

func TestLoadFileInsecurePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission checks are skipped on windows")
	}

	path := writeCredsFile(t, `
[llm]
api_key = "key"
`, 0644)

	_, err := LoadFile(path)
	if !errors.Is(err, ErrInsecurePermissions) {
		t.Errorf("expected ErrInsecurePermissions, got %v", err)
	}
}

func TestGetAPIKeyEnvFallback(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "from-env")
	t.Setenv("CUSTOM_PROVIDER_API_KEY", "custom-env")

	// Nil receiver: everything comes from the environment.
	var creds *Credentials
	if got := creds.GetAPIKey("anthropic"); got != "from-env" {
		t.Errorf("GetAPIKey(anthropic) = %q", got)
	}
	if got := creds.GetAPIKey("custom-provider"); got != "custom-env" {
		t.Errorf("GetAPIKey(custom-provider) = %q", got)
	}
	if got := creds.GetAPIKey("unset-provider"); got != "" {
		t.Errorf("GetAPIKey(unset-provider) = %q, want empty", got)
	}
}

func TestGetAPIKeyFilePriority(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "from-env")

	path := writeCredsFile(t, `
[anthropic]
api_key = "from-file"
`, 0600)

	creds, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if got := creds.GetAPIKey("anthropic"); got != "from-file" {
		t.Errorf("file key should win over env, got %q", got)
	}
}

func TestStandardPaths(t *testing.T) {
	paths := StandardPaths()
	if len(paths) == 0 {
		t.Fatal("no standard paths")
	}
	if paths[0] != "credentials.toml" {
		t.Errorf("first path = %q, want current directory", paths[0])
	}
}
