package registry

import (
	"sync"
)

// MemoryRegistry is an in-memory implementation of Registry.
// Suitable for testing and single-process deployments. A single RWMutex
// guards all operations, so concurrent registration and discovery are
// safe without external locking.
type MemoryRegistry struct {
	mu     sync.RWMutex
	agents map[string]AgentCapabilities
	order  []string // agent IDs in first-registration order
	closed bool
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		agents: make(map[string]AgentCapabilities),
	}
}

// Register adds or replaces the declaration for info.AgentID.
func (r *MemoryRegistry) Register(info AgentCapabilities) error {
	if err := ValidateAgentCapabilities(info); err != nil {
		return err
	}
	if info.Version == "" {
		info.Version = DefaultVersion
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if _, exists := r.agents[info.AgentID]; !exists {
		r.order = append(r.order, info.AgentID)
	}
	r.agents[info.AgentID] = info.Clone()

	return nil
}

// Discover returns a snapshot of every registered declaration.
func (r *MemoryRegistry) Discover() (map[string]AgentCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrClosed
	}

	result := make(map[string]AgentCapabilities, len(r.agents))
	for id, info := range r.agents {
		result[id] = info.Clone()
	}
	return result, nil
}

// Get retrieves the declaration for a specific agent.
func (r *MemoryRegistry) Get(agentID string) (*AgentCapabilities, error) {
	if agentID == "" {
		return nil, ErrInvalidID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrClosed
	}

	info, exists := r.agents[agentID]
	if !exists {
		return nil, ErrNotFound
	}

	clone := info.Clone()
	return &clone, nil
}

// FindByType returns agents declaring at least one capability of type t,
// in registration order, each at most once.
func (r *MemoryRegistry) FindByType(t Type) ([]AgentCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrClosed
	}

	var result []AgentCapabilities
	for _, id := range r.order {
		info := r.agents[id]
		if len(info.ByType(t)) > 0 {
			result = append(result, info.Clone())
		}
	}
	return result, nil
}

// FindAgentForCapability returns the first-registered agent declaring
// the named capability.
func (r *MemoryRegistry) FindAgentForCapability(name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return "", ErrClosed
	}

	for _, id := range r.order {
		info := r.agents[id]
		if info.Get(name) != nil {
			return id, nil
		}
	}
	return "", ErrNotFound
}

// Close shuts down the registry.
func (r *MemoryRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}
