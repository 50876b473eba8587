package utils

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// EmbeddingClient turns free text into a vector for similarity search.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) (pgvector.Vector, error)
	Model() string
}

type OpenAIEmbeddingClient struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIEmbeddingClient(apiKey, model string) EmbeddingClient {
	m := openai.SmallEmbedding3
	if model != "" {
		m = openai.EmbeddingModel(model)
	}
	return &OpenAIEmbeddingClient{
		client: openai.NewClient(apiKey),
		model:  m,
	}
}

func (c *OpenAIEmbeddingClient) Model() string { return string(c.model) }

func (c *OpenAIEmbeddingClient) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: c.model,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, errors.New("openai embedding: empty response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

type GeminiEmbeddingClient struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbeddingClient(ctx context.Context, apiKey, model string) (*GeminiEmbeddingClient, error) {
	if model == "" {
		model = "text-embedding-004"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiEmbeddingClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiEmbeddingClient) Model() string { return c.model }

func (c *GeminiEmbeddingClient) Embed(ctx context.Context, text string) (pgvector.Vector, error) {
	res, err := c.client.EmbeddingModel(c.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("gemini embedding: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return pgvector.Vector{}, errors.New("gemini embedding: empty response")
	}
	return pgvector.NewVector(res.Embedding.Values), nil
}

func (c *GeminiEmbeddingClient) Close() error {
	return c.client.Close()
}
