package llm

import (
	"context"
	"errors"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIBackend struct {
	client *openai.Client
}

func NewOpenAIBackend(apiKey string) *OpenAIBackend {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIBackend{client: &client}
}

func (b *OpenAIBackend) Provider() string { return "openai" }

func (b *OpenAIBackend) Complete(ctx context.Context, model, prompt string) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", b.mapError(model, err)
	}

	if len(resp.Choices) == 0 {
		return "", &BackendError{
			Kind:     Permanent,
			Provider: b.Provider(),
			Model:    model,
			Err:      errors.New("no response from openai"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

// mapError translates SDK errors into the package taxonomy. 429 and 503
// are capacity failures worth retrying; everything else is permanent.
func (b *OpenAIBackend) mapError(model string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	kind := Permanent
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case 429, 503:
			kind = Transient
		}
	}
	return &BackendError{Kind: kind, Provider: b.Provider(), Model: model, Err: err}
}
