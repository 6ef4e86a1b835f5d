package llm

import (
	"context"
	"os"
	"strings"
	"time"
)

// Backend is one completion provider. Complete issues a single request
// against the given model and maps any native SDK error into the package
// error taxonomy before returning it.
type Backend interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
	Provider() string
}

// Config declares the retry/fallback chain: a primary model retried with
// backoff, ordered same-provider fallback models tried once each, then one
// attempt on the alternate provider.
type Config struct {
	PrimaryModel   string
	FallbackModels []string
	AlternateModel string

	// MaxRetries bounds attempts on the primary model (default 4).
	MaxRetries int
	// BaseBackoff is doubled each retry: base * 2^attempt (default 1s).
	BaseBackoff time.Duration
}

// Client executes completion requests with bounded retries on transient
// capacity failures. It owns all retry and fallback policy; callers never
// retry on top of it.
type Client struct {
	primary   Backend
	alternate Backend
	cfg       Config

	sleep func(ctx context.Context, d time.Duration) error
}

func NewClient(primary, alternate Backend, cfg Config) *Client {
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 4
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = time.Second
	}
	return &Client{
		primary:   primary,
		alternate: alternate,
		cfg:       cfg,
		sleep:     sleepCtx,
	}
}

// Model returns the primary model name, for report metadata.
func (c *Client) Model() string { return c.cfg.PrimaryModel }

// Complete runs one prompt through the chain. Transient failures retry the
// primary model with exponential backoff, then each fallback model once,
// then the alternate provider once. A permanent error propagates
// immediately from any stage. Total exhaustion returns ErrExhausted.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		out, err := c.primary.Complete(ctx, c.cfg.PrimaryModel, prompt)
		if err == nil {
			return out, nil
		}
		if !IsTransient(err) {
			return "", err
		}
		if attempt < c.cfg.MaxRetries-1 {
			if err := c.sleep(ctx, c.cfg.BaseBackoff*(1<<attempt)); err != nil {
				return "", err
			}
		}
	}

	for _, model := range c.cfg.FallbackModels {
		out, err := c.primary.Complete(ctx, model, prompt)
		if err == nil {
			return out, nil
		}
		if !IsTransient(err) {
			return "", err
		}
	}

	if c.alternate != nil && c.cfg.AlternateModel != "" {
		out, err := c.alternate.Complete(ctx, c.cfg.AlternateModel, prompt)
		if err == nil {
			return out, nil
		}
		if !IsTransient(err) {
			return "", err
		}
	}

	return "", ErrExhausted
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewClientFromEnv builds a Client from LLM_* environment variables.
// LLM_PROVIDER selects the primary provider (openai, the default, or
// anthropic); the other provider becomes the alternate when its key is
// present. Missing credentials or an unknown provider fail here, at
// startup, never per call.
func NewClientFromEnv() (*Client, error) {
	provider := strings.ToLower(envDefault("LLM_PROVIDER", "openai"))

	openaiKey := os.Getenv("OPENAI_API_KEY")
	anthropicKey := os.Getenv("ANTHROPIC_API_KEY")

	switch provider {
	case "openai":
		if openaiKey == "" {
			return nil, &ConfigError{Reason: "OPENAI_API_KEY is not set"}
		}
		cfg := Config{
			PrimaryModel:   envDefault("LLM_MODEL", "gpt-4o-mini"),
			FallbackModels: splitModels(envDefault("LLM_FALLBACK_MODELS", "gpt-4.1-mini,gpt-4o")),
		}
		var alternate Backend
		if anthropicKey != "" {
			alternate = NewAnthropicBackend(anthropicKey)
			cfg.AlternateModel = envDefault("LLM_ALTERNATE_MODEL", defaultAnthropicModel)
		}
		return NewClient(NewOpenAIBackend(openaiKey), alternate, cfg), nil

	case "anthropic":
		if anthropicKey == "" {
			return nil, &ConfigError{Reason: "ANTHROPIC_API_KEY is not set"}
		}
		cfg := Config{
			PrimaryModel:   envDefault("LLM_MODEL", defaultAnthropicModel),
			FallbackModels: splitModels(os.Getenv("LLM_FALLBACK_MODELS")),
		}
		var alternate Backend
		if openaiKey != "" {
			alternate = NewOpenAIBackend(openaiKey)
			cfg.AlternateModel = envDefault("LLM_ALTERNATE_MODEL", "gpt-4o-mini")
		}
		return NewClient(NewAnthropicBackend(anthropicKey), alternate, cfg), nil

	default:
		return nil, &ConfigError{Reason: "unknown LLM_PROVIDER: " + provider}
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitModels(csv string) []string {
	var models []string
	for _, m := range strings.Split(csv, ",") {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	return models
}
