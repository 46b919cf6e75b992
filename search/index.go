// Package search provides full-text lookup over registered capabilities.
//
// Exact-name resolution belongs to the registry. This package answers
// the fuzzier question "which agent can do something like X" by indexing
// capability names and descriptions with Bleve and ranking matches by
// relevance. The index is memory-only and rebuilt from registry
// snapshots; the registry stays the source of truth.
package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/ucplabs/ucp/registry"
)

// Match is one capability hit with its owning agent and relevance score.
type Match struct {
	AgentID        string        `json:"agent_id"`
	AgentName      string        `json:"agent_name"`
	CapabilityName string        `json:"capability_name"`
	Type           registry.Type `json:"capability_type"`
	Description    string        `json:"description,omitempty"`
	Score          float64       `json:"score"`
}

// capabilityDocument is the indexed form of one capability.
type capabilityDocument struct {
	AgentID     string `json:"agent_id"`
	AgentName   string `json:"agent_name"`
	Name        string `json:"name"`
	Type        string `json:"capability_type"`
	Description string `json:"description"`
}

// Index is a memory-only full-text index over capability declarations.
type Index struct {
	mu    sync.Mutex
	index bleve.Index
}

// NewIndex creates an empty capability index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create bleve index: %w", err)
	}
	return &Index{index: idx}, nil
}

// buildIndexMapping creates the Bleve index mapping.
func buildIndexMapping() mapping.IndexMapping {
	capMapping := bleve.NewDocumentMapping()

	// Analyzed for full-text search
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = standard.Name

	// Not analyzed, exact match
	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	capMapping.AddFieldMappingsAt("name", textFieldMapping)
	capMapping.AddFieldMappingsAt("description", textFieldMapping)
	capMapping.AddFieldMappingsAt("agent_id", keywordFieldMapping)
	capMapping.AddFieldMappingsAt("agent_name", keywordFieldMapping)
	capMapping.AddFieldMappingsAt("capability_type", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = capMapping
	indexMapping.DefaultAnalyzer = standard.Name
	return indexMapping
}

// Rebuild replaces the index contents with a registry snapshot.
func (x *Index) Rebuild(reg registry.Registry) error {
	agents, err := reg.Discover()
	if err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	// Memory-only indexes are cheap; a fresh one is simpler than
	// tracking deletions.
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create bleve index: %w", err)
	}

	batch := fresh.NewBatch()
	for agentID, info := range agents {
		for _, c := range info.Capabilities {
			doc := capabilityDocument{
				AgentID:     agentID,
				AgentName:   info.AgentName,
				Name:        c.Name,
				Type:        string(c.Type),
				Description: c.Description,
			}
			docID := agentID + "/" + c.Name
			if err := batch.Index(docID, doc); err != nil {
				return fmt.Errorf("index capability %s: %w", docID, err)
			}
		}
	}
	if err := fresh.Batch(batch); err != nil {
		return fmt.Errorf("index batch: %w", err)
	}

	old := x.index
	x.index = fresh
	return old.Close()
}

// Search returns up to limit capabilities matching the query text,
// best first. An empty result is a normal outcome, not an error.
func (x *Index) Search(queryText string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 10
	}

	x.mu.Lock()
	idx := x.index
	x.mu.Unlock()

	query := bleve.NewMatchQuery(queryText)
	searchReq := bleve.NewSearchRequest(query)
	searchReq.Size = limit
	searchReq.Fields = []string{"*"}

	searchResult, err := idx.Search(searchReq)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var matches []Match
	for _, hit := range searchResult.Hits {
		m := Match{Score: hit.Score}
		if v, ok := hit.Fields["agent_id"].(string); ok {
			m.AgentID = v
		}
		if v, ok := hit.Fields["agent_name"].(string); ok {
			m.AgentName = v
		}
		if v, ok := hit.Fields["name"].(string); ok {
			m.CapabilityName = v
		}
		if v, ok := hit.Fields["capability_type"].(string); ok {
			m.Type = registry.Type(v)
		}
		if v, ok := hit.Fields["description"].(string); ok {
			m.Description = v
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// Close releases the underlying index.
func (x *Index) Close() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.index.Close()
}
