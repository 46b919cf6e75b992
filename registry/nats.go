package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSRegistry implements Registry using a NATS JetStream KV store.
// Suitable for deployments where agents on several nodes share one
// capability registry. First-registered-wins name resolution is kept
// across nodes by recording the original registration time in each
// stored entry.
type NATSRegistry struct {
	conn   *nats.Conn
	kv     jetstream.KeyValue
	config NATSRegistryConfig

	mu     sync.RWMutex
	closed bool
}

// NATSRegistryConfig configures the NATS registry.
type NATSRegistryConfig struct {
	// BucketName is the KV bucket name. Default: "ucp-capabilities"
	BucketName string

	// Replicas for the KV store (1-5). Default: 1
	Replicas int
}

// natsRecord is the stored form of a declaration. RegisteredAt is the
// time of the agent's first registration and survives re-registration.
type natsRecord struct {
	AgentCapabilities
	RegisteredAt time.Time `json:"registered_at"`
}

// NewNATSRegistry creates a NATS registry from an existing connection.
func NewNATSRegistry(conn *nats.Conn, cfg NATSRegistryConfig) (*NATSRegistry, error) {
	if conn == nil {
		return nil, fmt.Errorf("nil connection")
	}

	if cfg.BucketName == "" {
		cfg.BucketName = "ucp-capabilities"
	}
	if cfg.Replicas < 1 {
		cfg.Replicas = 1
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("create jetstream context: %w", err)
	}

	ctx := context.Background()
	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:   cfg.BucketName,
		Replicas: cfg.Replicas,
	})
	if err != nil {
		return nil, fmt.Errorf("create kv bucket: %w", err)
	}

	return &NATSRegistry{
		conn:   conn,
		kv:     kv,
		config: cfg,
	}, nil
}

// Register adds or replaces the declaration for info.AgentID.
func (r *NATSRegistry) Register(info AgentCapabilities) error {
	if err := ValidateAgentCapabilities(info); err != nil {
		return err
	}
	if info.Version == "" {
		info.Version = DefaultVersion
	}

	if err := r.checkOpen(); err != nil {
		return err
	}

	ctx := context.Background()

	rec := natsRecord{
		AgentCapabilities: info,
		RegisteredAt:      time.Now().UTC(),
	}

	// Preserve the original registration time on re-registration so
	// first-wins name resolution stays stable.
	if entry, err := r.kv.Get(ctx, info.AgentID); err == nil {
		var prev natsRecord
		if json.Unmarshal(entry.Value(), &prev) == nil && !prev.RegisteredAt.IsZero() {
			rec.RegisteredAt = prev.RegisteredAt
		}
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal declaration: %w", err)
	}

	if _, err := r.kv.Put(ctx, info.AgentID, data); err != nil {
		return fmt.Errorf("put to kv: %w", err)
	}

	return nil
}

// Discover returns a snapshot of every registered declaration.
func (r *NATSRegistry) Discover() (map[string]AgentCapabilities, error) {
	records, err := r.records()
	if err != nil {
		return nil, err
	}

	result := make(map[string]AgentCapabilities, len(records))
	for _, rec := range records {
		result[rec.AgentID] = rec.AgentCapabilities
	}
	return result, nil
}

// Get retrieves the declaration for a specific agent.
func (r *NATSRegistry) Get(agentID string) (*AgentCapabilities, error) {
	if agentID == "" {
		return nil, ErrInvalidID
	}
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	entry, err := r.kv.Get(ctx, agentID)
	if err != nil {
		if err == jetstream.ErrKeyNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get from kv: %w", err)
	}

	var rec natsRecord
	if err := json.Unmarshal(entry.Value(), &rec); err != nil {
		return nil, fmt.Errorf("unmarshal declaration: %w", err)
	}

	return &rec.AgentCapabilities, nil
}

// FindByType returns agents declaring at least one capability of type t,
// ordered by original registration time, each at most once.
func (r *NATSRegistry) FindByType(t Type) ([]AgentCapabilities, error) {
	records, err := r.records()
	if err != nil {
		return nil, err
	}

	var matched []natsRecord
	for _, rec := range records {
		if len(rec.ByType(t)) > 0 {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].RegisteredAt.Before(matched[j].RegisteredAt)
	})

	result := make([]AgentCapabilities, 0, len(matched))
	for _, rec := range matched {
		result = append(result, rec.AgentCapabilities)
	}
	return result, nil
}

// FindAgentForCapability returns the agent with the earliest original
// registration time among those declaring the named capability.
func (r *NATSRegistry) FindAgentForCapability(name string) (string, error) {
	records, err := r.records()
	if err != nil {
		return "", err
	}

	var best *natsRecord
	for i := range records {
		rec := &records[i]
		if rec.Get(name) == nil {
			continue
		}
		if best == nil || rec.RegisteredAt.Before(best.RegisteredAt) {
			best = rec
		}
	}

	if best == nil {
		return "", ErrNotFound
	}
	return best.AgentID, nil
}

// Close shuts down the registry client. The underlying connection is
// owned by the caller and is not closed.
func (r *NATSRegistry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	return nil
}

// checkOpen returns ErrClosed after Close.
func (r *NATSRegistry) checkOpen() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return ErrClosed
	}
	return nil
}

// records reads every stored declaration from the KV bucket.
func (r *NATSRegistry) records() ([]natsRecord, error) {
	if err := r.checkOpen(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	keys, err := r.kv.Keys(ctx)
	if err != nil {
		if err == jetstream.ErrNoKeysFound {
			return nil, nil
		}
		return nil, fmt.Errorf("list keys: %w", err)
	}

	var records []natsRecord
	for _, key := range keys {
		entry, err := r.kv.Get(ctx, key)
		if err != nil {
			continue // key might have been deleted
		}

		var rec natsRecord
		if err := json.Unmarshal(entry.Value(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
