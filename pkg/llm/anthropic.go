package llm

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const defaultAnthropicModel = string(anthropic.ModelClaude3_5HaikuLatest)

type AnthropicBackend struct {
	client *anthropic.Client
}

func NewAnthropicBackend(apiKey string) *AnthropicBackend {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicBackend{client: &client}
}

func (b *AnthropicBackend) Provider() string { return "anthropic" }

func (b *AnthropicBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", b.mapError(model, err)
	}

	if len(resp.Content) == 0 {
		return "", &BackendError{
			Kind:     Permanent,
			Provider: b.Provider(),
			Model:    model,
			Err:      errors.New("no response from anthropic"),
		}
	}
	return resp.Content[0].Text, nil
}

// mapError translates SDK errors into the package taxonomy. 429 is rate
// limiting and 529 is Anthropic's overloaded status; both are transient.
func (b *AnthropicBackend) mapError(model string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	kind := Permanent
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 529:
			kind = Transient
		}
	}
	return &BackendError{Kind: kind, Provider: b.Provider(), Model: model, Err: err}
}
