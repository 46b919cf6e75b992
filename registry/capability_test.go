package registry

import (
	"reflect"
	"strings"
	"testing"
)

func TestTypeValid(t *testing.T) {
	for _, typ := range []Type{
		TypeWeather, TypeFilesystem, TypeCopywriting,
		TypeReview, TypeAnalysis, TypeOrchestration,
	} {
		if !typ.Valid() {
			t.Errorf("%q should be valid", typ)
		}
	}

	if Type("quantum").Valid() {
		t.Error("unknown type should not be valid")
	}
	if Type("").Valid() {
		t.Error("empty type should not be valid")
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"weather", TypeWeather, false},
		{"REVIEW", TypeReview, false},
		{"  copywriting ", TypeCopywriting, false},
		{"bogus", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseType(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseType(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCapabilityValidate(t *testing.T) {
	c := Capability{Name: "get_weather", Type: TypeWeather}
	if err := c.Validate(); err != nil {
		t.Errorf("valid capability rejected: %v", err)
	}

	c = Capability{Type: TypeWeather}
	if err := c.Validate(); err == nil {
		t.Error("expected error for missing name")
	}

	c = Capability{Name: "x", Type: "nope"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestAgentCapabilitiesHelpers(t *testing.T) {
	a := AgentCapabilities{AgentName: "Writer", AgentID: "writer-1"}
	a.Add(Capability{Name: "copywrite", Type: TypeCopywriting})
	a.Add(Capability{Name: "headline", Type: TypeCopywriting})
	a.Add(Capability{Name: "critique", Type: TypeReview})

	if got := a.Get("headline"); got == nil || got.Type != TypeCopywriting {
		t.Errorf("Get(headline) = %v", got)
	}
	if a.Get("nonexistent") != nil {
		t.Error("Get for unknown name should return nil")
	}

	copy := a.ByType(TypeCopywriting)
	if len(copy) != 2 || copy[0].Name != "copywrite" || copy[1].Name != "headline" {
		t.Errorf("ByType(copywriting) = %v", copy)
	}
	if got := a.ByType(TypeWeather); got != nil {
		t.Errorf("ByType(weather) = %v, want empty", got)
	}
}

func TestAgentCapabilitiesRoundTrip(t *testing.T) {
	a := AgentCapabilities{
		AgentName: "Assistant",
		AgentID:   "assistant-1",
		Version:   "1.0",
		Capabilities: []Capability{
			{
				Name:        "review_content",
				Type:        TypeReview,
				Description: "Review the previous assistant message",
				Parameters: map[string]string{
					"content": "string: text to review",
					"style":   "string: review style",
				},
				RequiredPermissions: []string{"read", "network"},
			},
			{
				Name: "list_files",
				Type: TypeFilesystem,
			},
		},
	}

	data, err := a.Marshal()
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}

	// Field names follow the wire contract.
	for _, want := range []string{
		`"agent_name"`, `"agent_id"`, `"capability_type"`,
		`"parameters"`, `"required_permissions"`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("serialized form missing %s:\n%s", want, data)
		}
	}

	got, err := UnmarshalAgentCapabilities(data)
	if err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}

	if !reflect.DeepEqual(*got, a) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", *got, a)
	}
}

func TestAgentCapabilitiesCloneIsolation(t *testing.T) {
	a := AgentCapabilities{
		AgentID:   "a1",
		AgentName: "Agent",
		Capabilities: []Capability{
			{
				Name:                "cap",
				Type:                TypeAnalysis,
				Parameters:          map[string]string{"k": "v"},
				RequiredPermissions: []string{"read"},
			},
		},
	}

	clone := a.Clone()
	clone.Capabilities[0].Name = "changed"
	clone.Capabilities[0].Parameters["k"] = "changed"
	clone.Capabilities[0].RequiredPermissions[0] = "changed"

	if a.Capabilities[0].Name != "cap" {
		t.Error("clone shares capability slice with original")
	}
	if a.Capabilities[0].Parameters["k"] != "v" {
		t.Error("clone shares parameters map with original")
	}
	if a.Capabilities[0].RequiredPermissions[0] != "read" {
		t.Error("clone shares permissions slice with original")
	}
}

func TestAgentCapabilitiesString(t *testing.T) {
	a := AgentCapabilities{
		AgentName: "Writer",
		AgentID:   "writer-1",
		Version:   "1.0",
		Capabilities: []Capability{
			{
				Name:                "copywrite",
				Type:                TypeCopywriting,
				Description:         "Write marketing copy",
				RequiredPermissions: []string{"llm"},
			},
		},
	}

	s := a.String()
	for _, want := range []string{
		"Writer", "writer-1", "copywrite", "copywriting",
		"Write marketing copy", "Requires: llm",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("String() missing %q:\n%s", want, s)
		}
	}

	empty := AgentCapabilities{AgentName: "Empty", AgentID: "empty-1"}
	if !strings.Contains(empty.String(), "No capabilities declared") {
		t.Errorf("empty declaration rendering: %q", empty.String())
	}
}

func TestValidateAgentCapabilities(t *testing.T) {
	ok := AgentCapabilities{
		AgentID: "a1",
		Capabilities: []Capability{
			{Name: "one", Type: TypeAnalysis},
			{Name: "two", Type: TypeAnalysis},
		},
	}
	if err := ValidateAgentCapabilities(ok); err != nil {
		t.Errorf("valid declaration rejected: %v", err)
	}

	if err := ValidateAgentCapabilities(AgentCapabilities{}); err != ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}

	dup := AgentCapabilities{
		AgentID: "a1",
		Capabilities: []Capability{
			{Name: "same", Type: TypeAnalysis},
			{Name: "same", Type: TypeReview},
		},
	}
	if err := ValidateAgentCapabilities(dup); err == nil {
		t.Error("expected error for duplicate capability name")
	}

	bad := AgentCapabilities{
		AgentID:      "a1",
		Capabilities: []Capability{{Name: "x", Type: "bogus"}},
	}
	if err := ValidateAgentCapabilities(bad); err == nil {
		t.Error("expected error for invalid capability")
	}
}
