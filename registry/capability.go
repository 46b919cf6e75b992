package registry

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Type classifies what kind of work a capability performs.
// The set is closed so that filter operations stay exhaustively checkable;
// add new constants here rather than passing arbitrary strings.
type Type string

const (
	TypeWeather       Type = "weather"
	TypeFilesystem    Type = "filesystem"
	TypeCopywriting   Type = "copywriting"
	TypeReview        Type = "review"
	TypeAnalysis      Type = "analysis"
	TypeOrchestration Type = "orchestration"
)

// types lists every known capability type.
var types = []Type{
	TypeWeather,
	TypeFilesystem,
	TypeCopywriting,
	TypeReview,
	TypeAnalysis,
	TypeOrchestration,
}

// Valid reports whether t is one of the known capability types.
func (t Type) Valid() bool {
	for _, known := range types {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType converts a string label to a Type.
// Returns an error for unknown labels.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown capability type %q", s)
	}
	return t, nil
}

// Capability describes a single named unit of functionality an agent
// can perform.
type Capability struct {
	// Name is the capability identifier (e.g. "get_weather").
	// Unique within an agent's declared set.
	Name string `json:"name"`

	// Type classifies the capability.
	Type Type `json:"capability_type"`

	// Description is a human-readable explanation.
	Description string `json:"description,omitempty"`

	// Parameters maps parameter names to a type/description hint.
	Parameters map[string]string `json:"parameters,omitempty"`

	// RequiredPermissions lists permission strings a caller must hold
	// to invoke this capability.
	RequiredPermissions []string `json:"required_permissions,omitempty"`
}

// Validate checks that the capability has a name and a known type.
// Parameter and permission contents are not validated; that is the
// caller's responsibility.
func (c *Capability) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("capability name is required")
	}
	if !c.Type.Valid() {
		return fmt.Errorf("capability %q: unknown type %q", c.Name, c.Type)
	}
	return nil
}

// AgentCapabilities is the full capability declaration of one agent.
type AgentCapabilities struct {
	// AgentName is a human-readable name for the agent.
	AgentName string `json:"agent_name"`

	// AgentID uniquely identifies the agent across the registry.
	AgentID string `json:"agent_id"`

	// Version of the declaration format.
	Version string `json:"version,omitempty"`

	// Capabilities is the ordered list of declared capabilities.
	Capabilities []Capability `json:"capabilities"`
}

// DefaultVersion is applied by Registry implementations when a
// declaration carries no version.
const DefaultVersion = "1.0"

// Add appends a capability to the declaration.
func (a *AgentCapabilities) Add(c Capability) {
	a.Capabilities = append(a.Capabilities, c)
}

// Get returns the capability with the given name, or nil if the agent
// does not declare it.
func (a *AgentCapabilities) Get(name string) *Capability {
	for i := range a.Capabilities {
		if a.Capabilities[i].Name == name {
			return &a.Capabilities[i]
		}
	}
	return nil
}

// ByType returns all declared capabilities of the given type, in
// declaration order.
func (a *AgentCapabilities) ByType(t Type) []Capability {
	var result []Capability
	for _, c := range a.Capabilities {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}

// Clone returns a deep copy. Registry implementations hand out clones
// so callers can never mutate registry state through a returned value.
func (a *AgentCapabilities) Clone() AgentCapabilities {
	out := AgentCapabilities{
		AgentName: a.AgentName,
		AgentID:   a.AgentID,
		Version:   a.Version,
	}
	if a.Capabilities != nil {
		out.Capabilities = make([]Capability, len(a.Capabilities))
		for i, c := range a.Capabilities {
			cc := c
			if c.Parameters != nil {
				cc.Parameters = make(map[string]string, len(c.Parameters))
				for k, v := range c.Parameters {
					cc.Parameters[k] = v
				}
			}
			if c.RequiredPermissions != nil {
				cc.RequiredPermissions = append([]string(nil), c.RequiredPermissions...)
			}
			out.Capabilities[i] = cc
		}
	}
	return out
}

// Marshal serializes the declaration to indented JSON.
func (a *AgentCapabilities) Marshal() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

// UnmarshalAgentCapabilities deserializes a declaration from JSON.
func UnmarshalAgentCapabilities(data []byte) (*AgentCapabilities, error) {
	var a AgentCapabilities
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// String renders the declaration as human-readable text for display.
func (a *AgentCapabilities) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Agent: %s (ID: %s)\n", a.AgentName, a.AgentID)
	if a.Version != "" {
		fmt.Fprintf(&b, "Version: %s\n", a.Version)
	}
	if len(a.Capabilities) == 0 {
		b.WriteString("  No capabilities declared.\n")
		return b.String()
	}
	b.WriteString("Capabilities:\n")
	for _, c := range a.Capabilities {
		fmt.Fprintf(&b, "  - %s (%s)\n", c.Name, c.Type)
		if c.Description != "" {
			fmt.Fprintf(&b, "    Description: %s\n", c.Description)
		}
		if len(c.Parameters) > 0 {
			names := make([]string, 0, len(c.Parameters))
			for name := range c.Parameters {
				names = append(names, name)
			}
			sort.Strings(names)
			fmt.Fprintf(&b, "    Parameters: %s\n", strings.Join(names, ", "))
		}
		if len(c.RequiredPermissions) > 0 {
			fmt.Fprintf(&b, "    Requires: %s\n", strings.Join(c.RequiredPermissions, ", "))
		}
	}
	return b.String()
}
