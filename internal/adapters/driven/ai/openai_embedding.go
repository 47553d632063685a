package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/counsel-core/internal/core/ports/driven"
)

// Ensure OpenAIEmbedding implements EmbeddingService
var _ driven.EmbeddingService = (*OpenAIEmbedding)(nil)

const (
	defaultEmbeddingModel = "text-embedding-3-small"
	openAIEmbeddingURL    = "https://api.openai.com/v1"

	// maxEmbedInputs bounds how many texts go into one API request.
	// OpenAI accepts up to 2048 inputs per call, but smaller requests
	// keep a mid-ingestion retry cheap when a batch fails.
	maxEmbedInputs = 128
)

// Vector widths of the OpenAI embedding models. Knowledge chunks and
// queries must embed into the same width or cosine similarity between
// them is meaningless, so unknown models fall back to 1536 rather
// than failing construction.
var openAIModelDimensions = map[string]int{
	"text-embedding-3-small": 1536,
	"text-embedding-3-large": 3072,
	"text-embedding-ada-002": 1536,
}

// OpenAIEmbedding embeds knowledge chunks and queries through OpenAI's
// embedding API. The same instance serves both ingestion (batched) and
// retrieval (single query), so stored and query vectors always come
// from the same model at the same width.
type OpenAIEmbedding struct {
	apiKey     string
	model      string
	baseURL    string
	dimensions int
	maxInputs  int
	client     *http.Client
}

// NewOpenAIEmbedding creates an embedding service backed by OpenAI.
// An empty model selects text-embedding-3-small; an empty baseURL
// selects the public API endpoint.
func NewOpenAIEmbedding(apiKey, model, baseURL string) (driven.EmbeddingService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	if model == "" {
		model = defaultEmbeddingModel
	}
	if baseURL == "" {
		baseURL = openAIEmbeddingURL
	}

	dims, ok := openAIModelDimensions[model]
	if !ok {
		dims = 1536
	}

	return &OpenAIEmbedding{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		dimensions: dims,
		maxInputs:  maxEmbedInputs,
		client:     &http.Client{Timeout: 60 * time.Second},
	}, nil
}

type embeddingRequest struct {
	Input          []string `json:"input"`
	Model          string   `json:"model"`
	Dimensions     int      `json:"dimensions,omitempty"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
}

type embeddingVector struct {
	Index     int       `json:"index"`
	Embedding []float32 `json:"embedding"`
}

type openAIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

type embeddingResponse struct {
	Data  []embeddingVector `json:"data"`
	Model string            `json:"model"`
	Error *openAIError      `json:"error,omitempty"`
}

// Embed returns one vector per input text, in input order. Inputs are
// split across API calls when they exceed the per-request bound.
func (e *OpenAIEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.maxInputs {
		end := start + e.maxInputs
		if end > len(texts) {
			end = len(texts)
		}
		vectors, err := e.embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}
	return out, nil
}

// EmbedQuery embeds a single question for retrieval
func (e *OpenAIEmbedding) EmbedQuery(ctx context.Context, query string) ([]float32, error) {
	vectors, err := e.embed(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// embed issues one API call and reorders the results to match the
// input. The API may return data out of order; each entry carries the
// index of the input it belongs to.
func (e *OpenAIEmbedding) embed(ctx context.Context, texts []string) ([][]float32, error) {
	req := embeddingRequest{
		Input:          texts,
		Model:          e.model,
		EncodingFormat: "float",
	}
	// The v3 models accept an explicit width; pinning it keeps stored
	// chunk vectors and query vectors comparable across model updates.
	// ada-002 rejects the parameter.
	if strings.HasPrefix(e.model, "text-embedding-3") {
		req.Dimensions = e.dimensions
	}

	resp, err := e.post(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("OpenAI returned %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	vectors := make([][]float32, len(texts))
	for _, item := range resp.Data {
		if item.Index < 0 || item.Index >= len(vectors) {
			return nil, fmt.Errorf("OpenAI returned embedding index %d for %d texts", item.Index, len(texts))
		}
		vectors[item.Index] = item.Embedding
	}
	return vectors, nil
}

// post sends the request and decodes the response, surfacing the API's
// error envelope when one is present
func (e *OpenAIEmbedding) post(ctx context.Context, reqBody embeddingRequest) (*embeddingResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal embedding request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create embedding request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+e.apiKey)

	httpResp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call OpenAI embeddings: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read embedding response: %w", err)
	}

	var resp embeddingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode embedding response (status %d): %w", httpResp.StatusCode, err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("OpenAI embeddings API: %s (type=%s, code=%s)",
			resp.Error.Message, resp.Error.Type, resp.Error.Code)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAI embeddings API returned status %d", httpResp.StatusCode)
	}
	return &resp, nil
}

// Dimensions returns the vector width this service produces
func (e *OpenAIEmbedding) Dimensions() int {
	return e.dimensions
}

// Model returns the embedding model name
func (e *OpenAIEmbedding) Model() string {
	return e.model
}

// HealthCheck embeds a fixed short text to verify the API is reachable
// with the configured key and model
func (e *OpenAIEmbedding) HealthCheck(ctx context.Context) error {
	if _, err := e.EmbedQuery(ctx, "ping"); err != nil {
		return fmt.Errorf("OpenAI embedding health check: %w", err)
	}
	return nil
}

// Close releases idle connections
func (e *OpenAIEmbedding) Close() error {
	e.client.CloseIdleConnections()
	return nil
}
