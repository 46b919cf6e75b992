// Package agent wires external runtimes (hosted LLMs, CLI tools) into
// the capability registry as invokable agents.
package agent

import (
	"context"

	"github.com/google/uuid"

	"github.com/ucplabs/ucp/registry"
)

// Agent is an external actor that declares capabilities and performs work.
type Agent interface {
	// ID uniquely identifies the agent across the registry.
	ID() string
	// Name is a human-readable name.
	Name() string
	// Capabilities returns the agent's capability declaration.
	Capabilities() []registry.Capability
	// Run performs the agent's work on the given input.
	Run(ctx context.Context, input string) (string, error)
}

// Register declares an agent's capabilities into the registry. Must be
// called before the agent can be discovered or routed to.
func Register(reg registry.Registry, a Agent) error {
	return registry.RegisterAgent(reg, a.ID(), a.Name(), a.Capabilities())
}

// newID generates an agent ID with a recognizable prefix.
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}
