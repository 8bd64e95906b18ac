// Package anthropic provides a quote refiner backed by the Anthropic API.
package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clockprose/clockprose-cli/internal/core/domain"
	"github.com/clockprose/clockprose-cli/internal/core/ports/driven"
)

// Ensure Refiner implements the interface.
var _ driven.Refiner = (*Refiner)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.anthropic.com"
	DefaultModel   = "claude-3-haiku-20240307"
	DefaultTimeout = 60 * time.Second

	// anthropicVersion is the required API version header.
	anthropicVersion = "2023-06-01"

	// contextLimit caps how much surrounding text is sent with a quote.
	contextLimit = 500
)

// Config holds configuration for the Anthropic refiner.
type Config struct {
	// APIKey is the Anthropic API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.anthropic.com).
	BaseURL string

	// Model is the model to use (default: claude-3-haiku-20240307).
	Model string

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Refiner adjusts quote boundaries and filters weak extractions by
// asking the model to rewrite the three spans and judge the result.
type Refiner struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// messagesRequest is the Anthropic /v1/messages request format.
type messagesRequest struct {
	Model     string            `json:"model"`
	Messages  []messagesMessage `json:"messages"`
	MaxTokens int               `json:"max_tokens"`
}

// messagesMessage is the Anthropic message format.
type messagesMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// messagesResponse is the Anthropic /v1/messages response format.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// refinement is the JSON shape the model is asked to return.
type refinement struct {
	QuoteFirst    string `json:"quote_first"`
	QuoteTimeCase string `json:"quote_time_case"`
	QuoteLast     string `json:"quote_last"`
	IsGoodQuote   bool   `json:"is_good_quote"`
	Reason        string `json:"reason"`
}

// NewRefiner creates a new Anthropic-backed refiner.
func NewRefiner(cfg Config) (*Refiner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Refiner{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// Refine asks the model to tighten the quote's boundaries. It returns
// domain.ErrNotGoodQuote when the model judges the extraction not worth
// keeping; any transport or parse failure surfaces as an ordinary error
// so callers can fall back to the original quote.
func (r *Refiner) Refine(ctx context.Context, quote domain.Quote, fullContext string) (*domain.Quote, error) {
	text, err := r.sendMessage(ctx, buildPrompt(quote, fullContext))
	if err != nil {
		return nil, err
	}

	var result refinement
	if err := json.Unmarshal([]byte(extractJSON(text)), &result); err != nil {
		return nil, fmt.Errorf("decode refinement: %w", err)
	}

	if !result.IsGoodQuote {
		return nil, domain.ErrNotGoodQuote
	}

	refined := domain.NewQuote(result.QuoteFirst, result.QuoteTimeCase, result.QuoteLast,
		quote.Title, quote.Author)
	return &refined, nil
}

// ModelName returns the name of the model being used.
func (r *Refiner) ModelName() string {
	return r.model
}

// buildPrompt renders the refinement instructions for one quote.
func buildPrompt(quote domain.Quote, fullContext string) string {
	var b strings.Builder
	b.WriteString(`Given this extracted quote from a literary work, improve it by:
1. Adjusting boundaries to make it a complete, meaningful sentence or passage
2. Ensuring the time reference is naturally included
3. Keeping it concise but impactful

Current extraction:
`)
	fmt.Fprintf(&b, "- Before time: %q\n", quote.QuoteFirst)
	fmt.Fprintf(&b, "- Time text: %q\n", quote.QuoteTimeCase)
	fmt.Fprintf(&b, "- After time: %q\n", quote.QuoteLast)
	fmt.Fprintf(&b, "- Source: %s by %s\n", quote.Title, quote.Author)

	if fullContext != "" {
		if len(fullContext) > contextLimit {
			fullContext = fullContext[:contextLimit]
		}
		fmt.Fprintf(&b, "\nAdditional context: %s\n", fullContext)
	}

	b.WriteString(`
Return a JSON object with these exact fields:
{
  "quote_first": "text before the time",
  "quote_time_case": "the time as it appears",
  "quote_last": "text after the time",
  "is_good_quote": true/false,
  "reason": "why this is or isn't a good quote"
}

Only return the JSON, nothing else.`)
	return b.String()
}

// sendMessage posts one user message and returns the concatenated text blocks.
func (r *Refiner) sendMessage(ctx context.Context, prompt string) (string, error) {
	reqBody := messagesRequest{
		Model:     r.model,
		Messages:  []messagesMessage{{Role: "user", Content: prompt}},
		MaxTokens: 500,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.baseURL+"/v1/messages",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", r.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var msgResp messagesResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if msgResp.Error != nil {
		return "", fmt.Errorf("anthropic error: %s", msgResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("anthropic error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(msgResp.Content) == 0 {
		return "", fmt.Errorf("anthropic: no response content returned")
	}

	var result strings.Builder
	for _, block := range msgResp.Content {
		if block.Type == "text" {
			result.WriteString(block.Text)
		}
	}

	return result.String(), nil
}

// extractJSON trims any prose around the first JSON object in the reply.
// Models occasionally wrap the object in code fences despite instructions.
func extractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return text
	}
	return text[start : end+1]
}
