package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
)

const maxOutputTokens int64 = 1024

// OpenAIClient calls OpenAI's Responses API to produce summaries.
type OpenAIClient struct {
	client openai.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

// Summarize sends the prompt upstream once and classifies the outcome. A
// response carrying zero candidate outputs means the safety filter blocked
// the content; everything else that goes wrong is wrapped for server-side
// logging.
func (c *OpenAIClient) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:           openai.ChatModelGPT5Mini2025_08_07,
		MaxOutputTokens: openai.Int(maxOutputTokens),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}

	if resp.Status == "incomplete" && resp.IncompleteDetails.Reason == "content_filter" {
		return "", ErrContentBlocked
	}

	summary := strings.TrimSpace(resp.OutputText())
	if summary == "" {
		// No candidate output at all: the provider dropped the
		// response rather than failing the call.
		return "", ErrContentBlocked
	}
	return summary, nil
}
