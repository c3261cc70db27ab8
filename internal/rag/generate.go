// ABOUTME: OpenAI chat generator for grounded answer generation
// ABOUTME: Answers strictly from retrieved context; optional collaborator of the engine
package rag

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const answerSystemPrompt = "You are a helpful assistant that answers questions based on provided context."

const answerPromptTemplate = `You are a helpful AI assistant. Answer the question based ONLY on the provided context.
If the context doesn't contain relevant information, say "I don't have enough information to answer this question."

Context:
%s

Question: %s

Answer:`

// OpenAIGenerator answers queries with a chat completion grounded in
// the retrieved context.
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIGenerator builds a generator. Model defaults to gpt-4o-mini.
func NewOpenAIGenerator(apiKey, model string) (*OpenAIGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: 60 * time.Second,
	}, nil
}

// Generate produces an answer from the query and assembled context.
func (g *OpenAIGenerator) Generate(ctx context.Context, query, contextText string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: answerSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(answerPromptTemplate, contextText, query),
			},
		},
		Temperature: 0.3,
		MaxTokens:   500,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
