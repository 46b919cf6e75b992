// Package policy provides permission checks for capability invocation.
//
// A Capability declares the permission strings a caller must hold
// (registry.Capability.RequiredPermissions). A Policy holds the granted
// set and decides, optionally via an interactive prompt, whether an
// invocation may proceed.
package policy

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/ucplabs/ucp/registry"
)

// ErrDenied is returned when an invocation lacks required permissions.
var ErrDenied = errors.New("permission denied")

// Decision is the outcome of a permission prompt.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionDenied   Decision = "denied-interactively-by-user"
)

// PermissionRequest describes an invocation awaiting approval.
type PermissionRequest struct {
	// AgentID is the agent whose capability is being invoked.
	AgentID string

	// Capability is the capability name.
	Capability string

	// Missing lists the required permissions the policy does not grant.
	Missing []string
}

// PromptFunc decides on a permission request, typically by asking the
// user. Only called for requests with missing permissions.
type PromptFunc func(req PermissionRequest) Decision

// AutoApprove approves every request. For non-interactive runs.
func AutoApprove(PermissionRequest) Decision { return DecisionApproved }

// AutoDeny denies every request.
func AutoDeny(PermissionRequest) Decision { return DecisionDenied }

// Policy holds the granted permission set and the prompt hook.
type Policy struct {
	granted map[string]bool

	// Prompt is consulted for missing permissions. When nil, missing
	// permissions deny immediately.
	Prompt PromptFunc
}

// New creates a policy with no granted permissions.
func New() *Policy {
	return &Policy{
		granted: make(map[string]bool),
	}
}

// Grant adds permissions to the granted set.
func (p *Policy) Grant(perms ...string) {
	for _, perm := range perms {
		p.granted[perm] = true
	}
}

// Granted reports whether a single permission is granted.
func (p *Policy) Granted(perm string) bool {
	return p.granted[perm]
}

// Missing returns the required permissions of cap that the policy does
// not grant, in declaration order.
func (p *Policy) Missing(cap registry.Capability) []string {
	var missing []string
	for _, perm := range cap.RequiredPermissions {
		if !p.granted[perm] {
			missing = append(missing, perm)
		}
	}
	return missing
}

// Authorize decides whether agentID may run cap. Fully granted
// capabilities pass without prompting. Missing permissions go to the
// Prompt hook; without one they deny.
func (p *Policy) Authorize(agentID string, cap registry.Capability) error {
	missing := p.Missing(cap)
	if len(missing) == 0 {
		return nil
	}

	if p.Prompt != nil {
		req := PermissionRequest{
			AgentID:    agentID,
			Capability: cap.Name,
			Missing:    missing,
		}
		if p.Prompt(req) == DecisionApproved {
			return nil
		}
	}

	return fmt.Errorf("%w: capability %q requires %s",
		ErrDenied, cap.Name, strings.Join(missing, ", "))
}

// tomlPolicy is the TOML representation of a policy file.
type tomlPolicy struct {
	Permissions struct {
		Granted []string `toml:"granted"`
	} `toml:"permissions"`
}

// LoadFile loads a policy from a TOML file.
func LoadFile(path string) (*Policy, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read policy file: %w", err)
	}
	return Parse(string(content))
}

// Parse parses a policy from TOML content.
func Parse(content string) (*Policy, error) {
	var raw tomlPolicy
	if _, err := toml.Decode(content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}

	pol := New()
	pol.Grant(raw.Permissions.Granted...)
	return pol, nil
}
