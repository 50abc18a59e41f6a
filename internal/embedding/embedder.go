// Package embedding abstracts the external embedding provider: text in,
// fixed-length vector out. Providers may fail; callers decide how to
// degrade.
package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Config holds embedding provider configuration.
type Config struct {
	Model     string // default "text-embedding-3-small"
	APIKey    string
	BaseURL   string // OpenAI-compatible endpoint; override for Mistral etc.
	CacheSize int    // LRU cache size, default 10000
}

// Embedder generates text embeddings.
type Embedder interface {
	// Embed generates the embedding for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

type httpEmbedder struct {
	config     Config
	httpClient *http.Client
	cache      *lru.Cache[string, []float32]
}

// New creates an embedder backed by an OpenAI-compatible embeddings API.
// Responses are cached by input text. There is no retry: a failed call
// surfaces immediately and the caller degrades.
func New(config Config) (Embedder, error) {
	if config.Model == "" {
		config.Model = "text-embedding-3-small"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.CacheSize == 0 {
		config.CacheSize = 10000
	}

	cache, err := lru.New[string, []float32](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create cache: %w", err)
	}

	return &httpEmbedder{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cache: cache,
	}, nil
}

func (e *httpEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if cached, ok := e.cache.Get(text); ok {
		return cached, nil
	}

	vector, err := e.callAPI(ctx, text)
	if err != nil {
		return nil, err
	}

	e.cache.Add(text, vector)
	return vector, nil
}

func (e *httpEmbedder) callAPI(ctx context.Context, text string) ([]float32, error) {
	reqBody := map[string]any{
		"model": e.config.Model,
		"input": text,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.config.BaseURL+"/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.config.APIKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(apiResp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	return apiResp.Data[0].Embedding, nil
}
