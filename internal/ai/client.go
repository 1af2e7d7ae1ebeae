// Package ai talks to the Gemini generateContent API for laundry item
// detection and trip itineraries.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/sajathahamed/Unilifmobile/pkg/httpclient"
)

const serviceName = "gemini"

var (
	// ErrQuotaExceeded means the provider refused the call because the free
	// quota is used up. Callers keep it distinct from other failures.
	ErrQuotaExceeded = errors.New("ai quota exceeded")

	// ErrUnavailable wraps every other failure: transport, upstream errors,
	// empty or unparseable answers.
	ErrUnavailable = errors.New("ai unavailable")
)

type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Doer sends HTTP requests. *httpclient.CircuitBreakerClient implements it.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// Client is a Gemini client.
type Client struct {
	cfg    Config
	http   Doer
	logger *slog.Logger
}

// NewClient creates a Gemini client that sends requests through doer.
func NewClient(cfg Config, doer Doer, logger *slog.Logger) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: doer, logger: logger}
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// generate sends one prompt and returns the text of the first candidate.
func (c *Client) generate(ctx context.Context, parts ...part) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: api key not configured", ErrUnavailable)
	}

	body, err := json.Marshal(generateRequest{Contents: []content{{Parts: parts}}})
	if err != nil {
		return "", fmt.Errorf("%w: marshal request: %w", ErrUnavailable, err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, url.PathEscape(c.cfg.Model), url.QueryEscape(c.cfg.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := httpclient.ParseResponseError(resp, serviceName)
		var upErr *httpclient.UpstreamError
		if errors.As(err, &upErr) && upErr.TooManyRequests() {
			c.logger.WarnContext(ctx, "gemini quota exhausted",
				slog.Int("status", upErr.StatusCode),
				slog.String("reason", upErr.Reason),
			)
			return "", fmt.Errorf("%w: %w", ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}

	var text strings.Builder
	if len(out.Candidates) > 0 {
		for _, p := range out.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", fmt.Errorf("%w: empty response", ErrUnavailable)
	}
	return text.String(), nil
}
