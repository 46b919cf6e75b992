package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common errors.
var (
	ErrNotFound  = errors.New("not found")
	ErrClosed    = errors.New("registry closed")
	ErrInvalidID = errors.New("invalid agent ID")
)

// Registry stores agent capability declarations and answers discovery
// queries. Lookups never fail for unknown names or IDs in any way other
// than returning ErrNotFound; absence is a normal, representable outcome.
type Registry interface {
	// Register adds or replaces the declaration for info.AgentID.
	// Re-registration replaces the prior capability set entirely; it
	// does not merge. The agent keeps its original position in
	// first-registered-wins name resolution.
	Register(info AgentCapabilities) error

	// Discover returns the full mapping from agent ID to declaration
	// as registered at call time. The result is a copy; mutating it
	// does not affect the registry.
	Discover() (map[string]AgentCapabilities, error)

	// Get retrieves the declaration for a specific agent.
	// Returns nil, ErrNotFound for an unknown ID.
	Get(agentID string) (*AgentCapabilities, error)

	// FindByType returns every agent declaring at least one capability
	// of the given type. Each agent appears once, in registration
	// order, even if it declares several capabilities of the type.
	FindByType(t Type) ([]AgentCapabilities, error)

	// FindAgentForCapability returns the ID of the agent that provides
	// the named capability. When several agents declare the same name,
	// the first-registered agent wins. Returns "", ErrNotFound when no
	// agent declares it.
	FindAgentForCapability(name string) (string, error)

	// Close shuts down the registry. Further operations return ErrClosed.
	Close() error
}

// RegisterAgent builds an AgentCapabilities from raw parts and registers
// it. Thin convenience wrapper around Registry.Register.
func RegisterAgent(r Registry, agentID, agentName string, caps []Capability) error {
	return r.Register(AgentCapabilities{
		AgentID:      agentID,
		AgentName:    agentName,
		Capabilities: caps,
	})
}

// CanPerform reports whether the agent with the given ID declares the
// named capability. Unknown agents simply cannot perform anything.
func CanPerform(r Registry, agentID, name string) bool {
	info, err := r.Get(agentID)
	if err != nil {
		return false
	}
	return info.Get(name) != nil
}

// ValidateAgentCapabilities checks a declaration before registration:
// the agent ID must be set, every capability must validate, and
// capability names must be unique within the declaration.
func ValidateAgentCapabilities(info AgentCapabilities) error {
	if info.AgentID == "" {
		return ErrInvalidID
	}
	seen := make(map[string]bool, len(info.Capabilities))
	for i := range info.Capabilities {
		c := &info.Capabilities[i]
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate capability name %q for agent %q", c.Name, info.AgentID)
		}
		seen[c.Name] = true
	}
	return nil
}

// FormatRegistry renders the full contents of a registry as
// human-readable text, agents in lexical ID order.
func FormatRegistry(r Registry) (string, error) {
	agents, err := r.Discover()
	if err != nil {
		return "", err
	}
	if len(agents) == 0 {
		return "No agents registered.\n", nil
	}

	ids := make([]string, 0, len(agents))
	for id := range agents {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	for _, id := range ids {
		info := agents[id]
		b.WriteString(info.String())
		b.WriteString("\n")
	}
	return b.String(), nil
}
