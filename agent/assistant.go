package agent

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/ucplabs/ucp/policy"
	"github.com/ucplabs/ucp/registry"
)

// Assistant is an agent backed by an external CLI code-assistant tool,
// invoked as a one-shot subprocess per Run. Process lifecycle beyond
// the single invocation is the tool's own business.
type Assistant struct {
	id           string
	name         string
	path         string
	args         []string
	instructions string
	policy       *policy.Policy
	capabilities []registry.Capability
}

// AssistantConfig configures an Assistant.
type AssistantConfig struct {
	// ID defaults to a generated "assistant-*" identifier.
	ID string

	// Name defaults to "Code Assistant".
	Name string

	// Path is the executable to run. Required; resolve it with
	// credentials.FindAssistant.
	Path string

	// Args are passed before the prompt is written to stdin.
	Args []string

	// Instructions is prepended to every prompt.
	Instructions string

	// Policy gates invocation on the declared required permissions.
	// Nil means no gating.
	Policy *policy.Policy

	// Capabilities overrides the default declaration.
	Capabilities []registry.Capability
}

// NewAssistant creates a subprocess-backed assistant agent.
func NewAssistant(cfg AssistantConfig) (*Assistant, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("executable path is required")
	}
	if cfg.ID == "" {
		cfg.ID = newID("assistant")
	}
	if cfg.Name == "" {
		cfg.Name = "Code Assistant"
	}
	caps := cfg.Capabilities
	if caps == nil {
		caps = []registry.Capability{
			{
				Name:        "review_content",
				Type:        registry.TypeReview,
				Description: "Give brief feedback on the previous assistant message",
				Parameters: map[string]string{
					"content": "string: text to review",
				},
				RequiredPermissions: []string{"subprocess"},
			},
		}
	}

	return &Assistant{
		id:           cfg.ID,
		name:         cfg.Name,
		path:         cfg.Path,
		args:         cfg.Args,
		instructions: cfg.Instructions,
		policy:       cfg.Policy,
		capabilities: caps,
	}, nil
}

// ID implements Agent.
func (a *Assistant) ID() string { return a.id }

// Name implements Agent.
func (a *Assistant) Name() string { return a.name }

// Capabilities implements Agent.
func (a *Assistant) Capabilities() []registry.Capability { return a.capabilities }

// Run implements Agent: authorize against the policy, then run the
// tool once with the prompt on stdin.
func (a *Assistant) Run(ctx context.Context, input string) (string, error) {
	if a.policy != nil {
		for _, cap := range a.capabilities {
			if err := a.policy.Authorize(a.id, cap); err != nil {
				return "", err
			}
		}
	}

	prompt := input
	if a.instructions != "" {
		prompt = a.instructions + "\n\n" + input
	}

	cmd := exec.CommandContext(ctx, a.path, a.args...)
	cmd.Stdin = strings.NewReader(prompt)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("assistant %s: %w: %s", a.id, err, detail)
		}
		return "", fmt.Errorf("assistant %s: %w", a.id, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
