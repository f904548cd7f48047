package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider talks to any OpenAI-compatible chat-completion endpoint.
type OpenAIProvider struct {
	name   string
	model  string
	client *openai.Client
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	return NewOpenAICompatibleProvider("openai", "", apiKey, model)
}

// NewOpenAICompatibleProvider targets baseURL instead of api.openai.com.
// An empty baseURL keeps the OpenAI default.
func NewOpenAICompatibleProvider(name, baseURL, apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIProvider{
		name:   name,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

func (o *OpenAIProvider) Name() string {
	return o.name
}

func (o *OpenAIProvider) Ping(ctx context.Context) error {
	if _, err := o.client.ListModels(ctx); err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return fmt.Errorf("invalid API key")
		}
		return fmt.Errorf("cannot connect to %s API: %w", o.name, err)
	}
	return nil
}

func (o *OpenAIProvider) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	model := req.Model
	if model == "" {
		model = o.model
	}

	apiReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: float32(req.Temperature),
	}

	resp, err := o.client.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, fmt.Errorf("%s error (status %d): %s", o.name, apiErr.HTTPStatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%s request failed: %w", o.name, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from %s", o.name)
	}

	respModel := resp.Model
	if respModel == "" {
		respModel = model
	}

	return &CompletionResponse{
		Content:      resp.Choices[0].Message.Content,
		Model:        respModel,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}

func toOpenAIMessages(msgs []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(msgs))
	for i, m := range msgs {
		result[i] = openai.ChatCompletionMessage{Role: m.Role, Content: m.Content}
	}
	return result
}
