// Package oracle wraps the external LLM ranking service behind a narrow
// interface. The oracle is treated as an unreliable, latency-bound text
// source: one timeout-bounded attempt, no retries, and the caller owns
// the fallback when it fails or returns garbage.
package oracle

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// Ranker ranks candidates described in a textual prompt and returns the
// model's free-text reply for the caller to parse.
type Ranker interface {
	Rank(ctx context.Context, prompt string) (string, error)
}

// OpenAIRanker is the production Ranker backed by the OpenAI chat API.
type OpenAIRanker struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIRanker(apiKey, model string, timeout time.Duration) *OpenAIRanker {
	return &OpenAIRanker{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

func (r *OpenAIRanker) Rank(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("oracle request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("oracle returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
