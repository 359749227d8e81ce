package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client runs one extraction prompt against a model. Extraction code
// depends on this interface only, so tests substitute a fake.
type Client interface {
	// GenerateJSON sends prompt to the model for task and returns the JSON
	// value found in the reply.
	GenerateJSON(ctx context.Context, task Task, prompt string) (string, error)
	// Model names the model used for task.
	Model(task Task) string
	Close() error
}

// GeminiClient implements Client on the Gemini API.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewClient creates a Gemini client. A nil config means DefaultConfig.
func NewClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, config: config}, nil
}

// GenerateJSON asks for an application/json reply and strips any fence or
// prose around the value.
func (c *GeminiClient) GenerateJSON(ctx context.Context, task Task, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.config.Model(task))
	model.SetTemperature(c.config.Temperature)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate %s extraction: %w", task, err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", fmt.Errorf("%s extraction: %w", task, err)
	}
	return CleanJSONBlock(text), nil
}

// Model returns the model name for task.
func (c *GeminiClient) Model(task Task) string {
	return c.config.Model(task)
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate. A reply cut off
// at the token limit is an error since its JSON cannot be complete.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		return "", fmt.Errorf("response truncated at the token limit")
	}
	if candidate.Content == nil {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return sb.String(), nil
}
