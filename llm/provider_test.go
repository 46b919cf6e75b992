package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestProviderConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ProviderConfig
		wantErr bool
	}{
		{
			name: "valid",
			cfg: ProviderConfig{
				Provider: "anthropic", Model: "claude-sonnet-4-20250514",
				APIKey: "sk-test", MaxTokens: 1024,
			},
			wantErr: false,
		},
		{
			name:    "missing provider",
			cfg:     ProviderConfig{Model: "m", APIKey: "k", MaxTokens: 10},
			wantErr: true,
		},
		{
			name:    "missing model",
			cfg:     ProviderConfig{Provider: "openai", APIKey: "k", MaxTokens: 10},
			wantErr: true,
		},
		{
			name:    "missing api key",
			cfg:     ProviderConfig{Provider: "openai", Model: "m", MaxTokens: 10},
			wantErr: true,
		},
		{
			name:    "missing max tokens",
			cfg:     ProviderConfig{Provider: "openai", Model: "m", APIKey: "k"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInferProviderFromModel(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"claude-sonnet-4-20250514", "anthropic"},
		{"gpt-4o", "openai"},
		{"o3-mini", "openai"},
		{"gemini-2.0-flash", "google"},
		{"llama-3.3-70b", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := InferProviderFromModel(tt.model); got != tt.want {
			t.Errorf("InferProviderFromModel(%q) = %q, want %q", tt.model, got, tt.want)
		}
	}
}

func TestNewProviderRouting(t *testing.T) {
	// Provider inferred from model name.
	p, err := NewProvider(ProviderConfig{
		Model: "claude-sonnet-4-20250514", APIKey: "sk-test", MaxTokens: 1024,
	})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	if _, ok := p.(*AnthropicProvider); !ok {
		t.Errorf("expected *AnthropicProvider, got %T", p)
	}

	p, err = NewProvider(ProviderConfig{
		Provider: "openai", Model: "gpt-4o", APIKey: "sk-test", MaxTokens: 1024,
	})
	if err != nil {
		t.Fatalf("NewProvider error: %v", err)
	}
	if _, ok := p.(*OpenAIProvider); !ok {
		t.Errorf("expected *OpenAIProvider, got %T", p)
	}

	if _, err := NewProvider(ProviderConfig{
		Provider: "carrier-pigeon", Model: "m", APIKey: "k", MaxTokens: 10,
	}); err == nil {
		t.Error("expected error for unknown provider")
	}

	if _, err := NewProvider(ProviderConfig{
		Model: "mystery-model", APIKey: "k", MaxTokens: 10,
	}); err == nil {
		t.Error("expected error for uninferrable model")
	}
}

func TestEffectiveRetryDefaults(t *testing.T) {
	maxRetries, initBackoff, maxBackoff := effectiveRetry(RetryConfig{})
	if maxRetries != defaultMaxRetries {
		t.Errorf("maxRetries = %d, want %d", maxRetries, defaultMaxRetries)
	}
	if initBackoff != defaultInitBackoff {
		t.Errorf("initBackoff = %v, want %v", initBackoff, defaultInitBackoff)
	}
	if maxBackoff != defaultMaxBackoff {
		t.Errorf("maxBackoff = %v, want %v", maxBackoff, defaultMaxBackoff)
	}

	maxRetries, initBackoff, maxBackoff = effectiveRetry(RetryConfig{
		MaxRetries: 2, InitBackoff: 5 * time.Millisecond, MaxBackoff: time.Second,
	})
	if maxRetries != 2 || initBackoff != 5*time.Millisecond || maxBackoff != time.Second {
		t.Errorf("explicit retry config not honored: %d %v %v", maxRetries, initBackoff, maxBackoff)
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		errMsg string
		want   bool
	}{
		{"429 too many requests", true},
		{"rate limit exceeded", true},
		{"503 service unavailable", true},
		{"internal server error", true},
		{"overloaded", true},
		{"401 unauthorized", false},
		{"invalid request", false},
	}

	for _, tt := range tests {
		got := isRetryableError(errors.New(tt.errMsg))
		if got != tt.want {
			t.Errorf("isRetryableError(%q) = %v, want %v", tt.errMsg, got, tt.want)
		}
	}

	if isRetryableError(nil) {
		t.Error("nil error should not be retryable")
	}
}

func TestIsBillingError(t *testing.T) {
	if !isBillingError(errors.New("402 payment required")) {
		t.Error("payment error should be billing")
	}
	if !isBillingError(errors.New("quota exceeded for project")) {
		t.Error("quota error should be billing")
	}
	if isBillingError(errors.New("rate limit")) {
		t.Error("rate limit is not billing")
	}
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider()
	p.SetResponse("A punchy tagline.")
	p.SetTokenCounts(12, 7)

	resp, err := p.Chat(context.Background(), ChatRequest{
		Messages: []Message{
			{Role: "system", Content: "You are a copywriter."},
			{Role: "user", Content: "Write a tagline."},
		},
	})
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if resp.Content != "A punchy tagline." {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.InputTokens != 12 || resp.OutputTokens != 7 {
		t.Errorf("tokens = %d/%d", resp.InputTokens, resp.OutputTokens)
	}
	if p.CallCount() != 1 {
		t.Errorf("CallCount = %d", p.CallCount())
	}
	if got := p.LastRequest(); len(got.Messages) != 2 {
		t.Errorf("LastRequest has %d messages", len(got.Messages))
	}

	p.SetError(errors.New("boom"))
	if _, err := p.Chat(context.Background(), ChatRequest{}); err == nil {
		t.Error("expected error from mock")
	}
}

func TestNewProviderConstructorsValidate(t *testing.T) {
	if _, err := NewAnthropicProvider(AnthropicConfig{Model: "m", MaxTokens: 10}); err == nil {
		t.Error("anthropic: expected error for missing api key")
	}
	if _, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", MaxTokens: 10}); err == nil {
		t.Error("openai: expected error for missing model")
	}
	if _, err := NewGoogleProvider(GoogleConfig{APIKey: "k", Model: "m"}); err == nil {
		t.Error("google: expected error for missing max tokens")
	}
}
