package search

import (
	"testing"

	"github.com/ucplabs/ucp/registry"
)

func buildTestRegistry(t *testing.T) *registry.MemoryRegistry {
	t.Helper()

	reg := registry.NewMemoryRegistry()
	t.Cleanup(func() { reg.Close() })

	err := registry.RegisterAgent(reg, "writer-1", "Copywriter", []registry.Capability{
		{
			Name:        "copywrite",
			Type:        registry.TypeCopywriting,
			Description: "Write a single punchy marketing sentence",
		},
	})
	if err != nil {
		t.Fatalf("RegisterAgent: %v", err)
	}

	err = registry.RegisterAgent(reg, "reviewer-1", "Reviewer", []registry.Capability{
		{
			Name:        "review_content",
			Type:        registry.TypeReview,
			Description: "Give brief feedback on marketing copy",
		},
		{
			Name:        "get_weather",
			Type:        registry.TypeWeather,
			Description: "Report current weather conditions for a city",
		},
	})
	if err != nil {
		t.Fatalf("RegisterAgent: %v", err)
	}

	return reg
}

func TestIndexSearch(t *testing.T) {
	reg := buildTestRegistry(t)

	idx, err := NewIndex()
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	defer idx.Close()

	if err := idx.Rebuild(reg); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	matches, err := idx.Search("weather conditions", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match for weather query")
	}
	if matches[0].CapabilityName != "get_weather" {
		t.Errorf("top match = %q, want get_weather", matches[0].CapabilityName)
	}
	if matches[0].AgentID != "reviewer-1" {
		t.Errorf("top match agent = %q, want reviewer-1", matches[0].AgentID)
	}
	if matches[0].Score <= 0 {
		t.Errorf("score = %v, want > 0", matches[0].Score)
	}

	matches, err = idx.Search("marketing", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) < 2 {
		t.Fatalf("expected both marketing-related capabilities, got %d", len(matches))
	}
}

func TestIndexSearchNoMatch(t *testing.T) {
	reg := buildTestRegistry(t)

	idx, err := NewIndex()
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	defer idx.Close()

	if err := idx.Rebuild(reg); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	matches, err := idx.Search("blockchain arbitrage", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no matches, got %v", matches)
	}
}

func TestIndexRebuildReplaces(t *testing.T) {
	reg := buildTestRegistry(t)

	idx, err := NewIndex()
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}
	defer idx.Close()

	if err := idx.Rebuild(reg); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	// Replace the reviewer's declaration; the old weather capability
	// must disappear after the next rebuild.
	err = registry.RegisterAgent(reg, "reviewer-1", "Reviewer", []registry.Capability{
		{
			Name:        "review_content",
			Type:        registry.TypeReview,
			Description: "Give brief feedback on marketing copy",
		},
	})
	if err != nil {
		t.Fatalf("RegisterAgent: %v", err)
	}
	if err := idx.Rebuild(reg); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	matches, err := idx.Search("weather", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("stale capability still indexed after rebuild: %v", matches)
	}
}
