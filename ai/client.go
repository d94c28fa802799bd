package ai

import (
	"context"
	"fmt"
	"log"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// Client is the LLM collaborator contract: one prompt in, raw text out.
// The decision engines treat the response as untrusted free text.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMConfig holds configuration for LLM interactions
type LLMConfig struct {
	Model       string
	MaxTokens   int
	Temperature float32
}

// DefaultLLMConfig returns standard LLM configuration
func DefaultLLMConfig() LLMConfig {
	return LLMConfig{
		Model:       openai.GPT4oMini,
		MaxTokens:   2048,
		Temperature: 0.7,
	}
}

// OpenAI is the go-openai backed Client implementation.
type OpenAI struct {
	client *openai.Client
	config LLMConfig
}

// NewOpenAI creates a client from the OPENAI_API_KEY environment variable.
func NewOpenAI(config LLMConfig) *OpenAI {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set, LLM calls will fail")
		return &OpenAI{config: config}
	}
	return &OpenAI{client: openai.NewClient(apiKey), config: config}
}

// Complete sends a single-turn prompt and returns the raw response text.
func (o *OpenAI) Complete(ctx context.Context, prompt string) (string, error) {
	if o.client == nil {
		return "", fmt.Errorf("OpenAI client not initialized")
	}

	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.config.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
			MaxTokens:   o.config.MaxTokens,
			Temperature: o.config.Temperature,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
