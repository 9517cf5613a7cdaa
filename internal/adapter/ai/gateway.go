// Package ai implements port.AIProvider against an OpenAI-compatible gateway.
package ai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/iepirkumi/tenderlens/internal/domain"
	"github.com/iepirkumi/tenderlens/internal/port"
)

const (
	embedTimeout = 30 * time.Second
	chatTimeout  = 2 * time.Minute
)

// GatewayConfig holds the configuration for the AI gateway.
type GatewayConfig struct {
	BaseURL       string // e.g. https://api.openai.com
	Token         string // Bearer token (empty = no auth)
	ChatModel     string
	EmbedModel    string
	Dimensions    int // requested embedding dimension
	EmbedMaxChars int // head-truncation budget for embedding input
}

// GatewayProvider talks to an OpenAI-compatible REST API for embeddings and
// chat completions (streamed and non-streamed).
type GatewayProvider struct {
	cfg        GatewayConfig
	httpClient *http.Client
}

// NewGatewayProvider creates a new gateway-backed AI provider.
func NewGatewayProvider(cfg GatewayConfig) *GatewayProvider {
	return &GatewayProvider{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Embed generates a vector embedding for the given text. Input beyond the
// configured character budget is head-truncated before submission.
func (g *GatewayProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := g.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
// The result is index-aligned with the input.
func (g *GatewayProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	input := make([]string, len(texts))
	for i, t := range texts {
		input[i] = g.truncate(t)
	}

	payload := map[string]interface{}{
		"model":      g.cfg.EmbedModel,
		"input":      input,
		"dimensions": g.cfg.Dimensions,
	}

	ctx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	body, err := g.post(ctx, "/v1/embeddings", payload, port.ErrEmbeddingFailed)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", port.ErrEmbeddingFailed, err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: expected %d embeddings, got %d", port.ErrEmbeddingFailed, len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("%w: embedding index %d out of range", port.ErrEmbeddingFailed, d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// Chat sends a full conversation and returns the complete response.
func (g *GatewayProvider) Chat(ctx context.Context, messages []domain.Turn) (string, error) {
	payload := map[string]interface{}{
		"model":    g.cfg.ChatModel,
		"messages": messages,
	}

	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	body, err := g.post(ctx, "/v1/chat/completions", payload, port.ErrGenerationFailed)
	if err != nil {
		return "", err
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", port.ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", port.ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}

// ChatStream sends a full conversation and streams the response
// token-by-token. Service-level errors (rate limit, quota) surface from this
// call before any token is delivered; a consumer cancelling ctx releases the
// underlying connection.
func (g *GatewayProvider) ChatStream(ctx context.Context, messages []domain.Turn) (<-chan string, error) {
	payload := map[string]interface{}{
		"model":    g.cfg.ChatModel,
		"messages": messages,
		"stream":   true,
	}

	req, err := g.newRequest(ctx, "/v1/chat/completions", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrGenerationFailed, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", port.ErrGenerationFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return nil, statusError(resp.StatusCode, body, port.ErrGenerationFailed)
	}

	ch := make(chan string, 64)
	go func() {
		defer close(ch)
		defer resp.Body.Close()

		scanner := bufio.NewScanner(resp.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, ":") {
				continue
			}
			data, ok := strings.CutPrefix(line, "data: ")
			if !ok {
				continue
			}
			if data == "[DONE]" {
				return
			}

			var chunk struct {
				Choices []struct {
					Delta struct {
						Content string `json:"content"`
					} `json:"delta"`
				} `json:"choices"`
			}
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				continue
			}
			if len(chunk.Choices) == 0 || chunk.Choices[0].Delta.Content == "" {
				continue
			}
			select {
			case ch <- chunk.Choices[0].Delta.Content:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func (g *GatewayProvider) truncate(text string) string {
	cut := g.cfg.EmbedMaxChars
	if cut <= 0 || len(text) <= cut {
		return text
	}
	// Back off to a rune boundary so the tail never holds a split rune.
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

func (g *GatewayProvider) newRequest(ctx context.Context, path string, payload interface{}) (*http.Request, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if g.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+g.cfg.Token)
	}
	return req, nil
}

// post issues a non-streamed POST and maps non-success statuses onto kind.
func (g *GatewayProvider) post(ctx context.Context, path string, payload interface{}, kind error) ([]byte, error) {
	req, err := g.newRequest(ctx, path, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, statusError(resp.StatusCode, body, kind)
	}
	return io.ReadAll(resp.Body)
}

// statusError maps rate-limit and quota responses onto their distinct error
// kinds; anything else keeps the caller-supplied kind.
func statusError(status int, body []byte, kind error) error {
	switch status {
	case http.StatusTooManyRequests:
		kind = port.ErrRateLimited
	case http.StatusPaymentRequired:
		kind = port.ErrQuotaExhausted
	}
	return fmt.Errorf("%w: gateway returned %d: %s", kind, status, bytes.TrimSpace(body))
}
