// Package registry provides capability declaration and discovery for
// multi-agent coordination.
//
// # Overview
//
// Agents declare what they can do as typed Capability records, grouped
// into an AgentCapabilities set keyed by agent ID. Orchestration code
// registers these sets, then looks agents up by capability name or
// capability type before dispatching work to them.
//
// # Available Implementations
//
//   - MemoryRegistry: In-memory implementation for testing and single-node use
//   - NATSRegistry: Distributed registry using NATS JetStream KV store
//
// # Basic Usage
//
// Register an agent:
//
//	reg := registry.NewMemoryRegistry()
//	err := registry.RegisterAgent(reg, "writer-1", "Copywriter", []registry.Capability{
//	    {
//	        Name:        "copywrite",
//	        Type:        registry.TypeCopywriting,
//	        Description: "Write short marketing copy",
//	    },
//	})
//
// Resolve a capability to the agent that provides it:
//
//	agentID, err := reg.FindAgentForCapability("copywrite")
//	if err == registry.ErrNotFound {
//	    // no agent declares "copywrite"; absence is a normal outcome
//	}
//
// Filter agents by capability type:
//
//	reviewers, _ := reg.FindByType(registry.TypeReview)
//
// # Name Resolution
//
// Nothing stops two agents from declaring the same capability name.
// FindAgentForCapability resolves the ambiguity deterministically: the
// agent that registered first wins, and keeps winning even if it later
// re-registers with a changed capability set. Callers that need a
// different policy should use FindByType and pick among the results
// themselves.
//
// # Concurrency
//
// Both implementations guard all operations with a single lock (or the
// KV store's own consistency), so they are safe for concurrent callers.
// Discover returns a copy of the state at call time, not a live view.
package registry
