package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const systemPrompt = `You are a crypto safety educator. Answer questions about
token risk concepts (rug pulls, honeypots, LP locks, holder concentration,
volume manipulation) accurately and concisely. Never give financial advice or
price predictions.`

// Explainer implements the ai.Explainer interface using OpenAI.
type Explainer struct {
	client *openai.Client
	model  string
}

// NewExplainer creates a new OpenAI explainer instance.
func NewExplainer(apiKey string, model string) *Explainer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Explainer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Explain implements the Explainer interface.
func (e *Explainer) Explain(ctx context.Context, question string) (string, error) {
	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
