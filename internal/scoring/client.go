// Package scoring talks to the remote scoring endpoint. Every failure is
// normalized into one of four typed errors so callers can show a stable
// message; nothing here is on the local analysis path.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/abhisek/dsamentor/internal/scoremodel"
)

// DefaultTimeout bounds a single predict call.
const DefaultTimeout = 30 * time.Second

// PredictPath is the single endpoint every function is posted to.
const PredictPath = "/api/predict"

// PredictRequest is the wire body of a predict call.
type PredictRequest struct {
	Data    []any `json:"data"`
	FnIndex *int  `json:"fn_index,omitempty"`
}

// PredictResponse wraps the prediction in a one-element data array.
type PredictResponse struct {
	Data []json.RawMessage `json:"data"`
}

// Client posts feature vectors to the scoring endpoint.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the endpoint rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Difficulty requests a difficulty prediction.
func (c *Client) Difficulty(ctx context.Context, in scoremodel.DifficultyInput) (*scoremodel.DifficultyPrediction, error) {
	var out scoremodel.DifficultyPrediction
	if err := c.predict(ctx, scoremodel.FnDifficulty, in.Vector(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Timeline requests a timeline prediction.
func (c *Client) Timeline(ctx context.Context, in scoremodel.TimelineInput) (*scoremodel.TimelinePrediction, error) {
	var out scoremodel.TimelinePrediction
	if err := c.predict(ctx, scoremodel.FnTimeline, in.Vector(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Mistake requests a mistake classification.
func (c *Client) Mistake(ctx context.Context, in scoremodel.MistakeInput) (*scoremodel.MistakePrediction, error) {
	var out scoremodel.MistakePrediction
	if err := c.predict(ctx, scoremodel.FnMistake, in.Vector(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) predict(ctx context.Context, fn int, data []any, out any) error {
	body, err := json.Marshal(PredictRequest{Data: data, FnIndex: &fn})
	if err != nil {
		return &ErrUnexpected{Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PredictPath, bytes.NewReader(body))
	if err != nil {
		return &ErrUnexpected{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("scoring request failed", "fn_index", fn, "error", err)
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}
	c.logger.Debug("scoring response", "fn_index", fn, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ErrServer{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var wrapped PredictResponse
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return &ErrUnexpected{Err: fmt.Errorf("decode response: %w", err)}
	}
	if len(wrapped.Data) == 0 {
		return &ErrUnexpected{Err: errors.New("empty data in response")}
	}
	if err := json.Unmarshal(wrapped.Data[0], out); err != nil {
		return &ErrUnexpected{Err: fmt.Errorf("decode prediction: %w", err)}
	}
	return nil
}

func classifyTransport(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ErrTimeout{Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &ErrUnexpected{Err: err}
	}
	return &ErrNoResponse{Err: err}
}
