// Package ai sends single-turn chat completions to an OpenAI-compatible API.
package ai

import (
	"context"
	"fmt"

	"github.com/j0lvera/ratebot/internal/upstream"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const provider = "OpenAI"

// defaultTemperature matches the chat completions API default.
const defaultTemperature = 1.0

// Completion is the assistant reply and the model that produced it.
type Completion struct {
	Content string
	// Model is what the provider reports, which can differ from the
	// requested name when the provider resolves aliases.
	Model string
}

// Completer sends one user message to the model.
type Completer interface {
	Complete(ctx context.Context, model, prompt string) (Completion, error)
}

// Client implements Completer using the OpenAI-compatible API.
type Client struct {
	llm llms.Model
}

// NewClient creates a client. Requests carry the API key as a bearer token
// and projectID, when set, in the OpenAI-Project header.
func NewClient(doer upstream.Doer, apiKey, baseURL, projectID, model string) (*Client, error) {
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
		openai.WithHTTPClient(&projectDoer{next: doer, projectID: projectID}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return &Client{llm: llm}, nil
}

// Complete sends prompt as the only message. No history or system prompt is
// added; each message is a fresh exchange.
func (c *Client) Complete(ctx context.Context, model, prompt string) (Completion, error) {
	ex := &exchange{}
	msgs := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	// Temperature is always serialized, so the provider default is sent explicitly.
	resp, err := c.llm.GenerateContent(withExchange(ctx, ex), msgs,
		llms.WithModel(model),
		llms.WithTemperature(defaultTemperature),
	)
	if err != nil {
		if ex.status == 0 {
			return Completion{}, upstream.TransportError(provider, err)
		}
		msg := ex.message
		if msg == "" {
			msg = err.Error()
		}
		return Completion{}, upstream.ProtocolError(provider, ex.status, msg)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, upstream.ProtocolError(provider, ex.status, "no choices returned from model")
	}

	return Completion{
		Content: resp.Choices[0].Content,
		Model:   ex.model,
	}, nil
}
