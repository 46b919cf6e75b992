package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/ucplabs/ucp/llm"
	"github.com/ucplabs/ucp/registry"
)

// Copywriter is an LLM-backed agent that produces marketing copy.
type Copywriter struct {
	id           string
	name         string
	instructions string
	provider     llm.Provider
	maxTokens    int
	capabilities []registry.Capability
}

// CopywriterConfig configures a Copywriter.
type CopywriterConfig struct {
	// ID defaults to a generated "writer-*" identifier.
	ID string

	// Name defaults to "Copywriter".
	Name string

	// Instructions is the system prompt. A concise default is applied
	// when empty.
	Instructions string

	// Provider performs the chat completions. Required.
	Provider llm.Provider

	// MaxTokens caps each completion. Zero uses the provider default.
	MaxTokens int

	// Capabilities overrides the default declaration.
	Capabilities []registry.Capability
}

// DefaultCopywriterInstructions is the default system prompt.
const DefaultCopywriterInstructions = "You are a concise copywriter. " +
	"Provide a single, punchy marketing sentence based on the prompt."

// NewCopywriter creates an LLM-backed copywriter agent.
func NewCopywriter(cfg CopywriterConfig) (*Copywriter, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("provider is required")
	}
	if cfg.ID == "" {
		cfg.ID = newID("writer")
	}
	if cfg.Name == "" {
		cfg.Name = "Copywriter"
	}
	if cfg.Instructions == "" {
		cfg.Instructions = DefaultCopywriterInstructions
	}
	caps := cfg.Capabilities
	if caps == nil {
		caps = []registry.Capability{
			{
				Name:        "copywrite",
				Type:        registry.TypeCopywriting,
				Description: "Write a single punchy marketing sentence for a prompt",
				Parameters: map[string]string{
					"prompt": "string: what to write about",
				},
			},
		}
	}

	return &Copywriter{
		id:           cfg.ID,
		name:         cfg.Name,
		instructions: cfg.Instructions,
		provider:     cfg.Provider,
		maxTokens:    cfg.MaxTokens,
		capabilities: caps,
	}, nil
}

// ID implements Agent.
func (c *Copywriter) ID() string { return c.id }

// Name implements Agent.
func (c *Copywriter) Name() string { return c.name }

// Capabilities implements Agent.
func (c *Copywriter) Capabilities() []registry.Capability { return c.capabilities }

// Run implements Agent: one chat completion with the instructions as
// system prompt.
func (c *Copywriter) Run(ctx context.Context, input string) (string, error) {
	resp, err := c.provider.Chat(ctx, llm.ChatRequest{
		Messages: []llm.Message{
			{Role: "system", Content: c.instructions},
			{Role: "user", Content: input},
		},
		MaxTokens: c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("copywriter %s: %w", c.id, err)
	}

	return strings.TrimSpace(resp.Content), nil
}
