package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Client talks to the rules engine over HTTP/JSON
type Client struct {
	httpClient *http.Client
	config     *Config
	logger     zerolog.Logger

	mu      sync.RWMutex
	session string
}

// NewClient creates a client; a nil httpClient is built from the config
func NewClient(httpClient *http.Client, cfg *Config, logger zerolog.Logger) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if httpClient == nil {
		httpClient = cfg.HTTPClient()
	}
	return &Client{
		httpClient: httpClient,
		config:     cfg,
		logger:     logger.With().Str("component", "network").Logger(),
	}
}

// BindSession sets the correlation id sent with every request
func (c *Client) BindSession(id string) {
	c.mu.Lock()
	c.session = id
	c.mu.Unlock()
}

// Session returns the bound correlation id
func (c *Client) Session() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Snapshot fetches the authoritative game state
func (c *Client) Snapshot(ctx context.Context) (*Snapshot, error) {
	var snap Snapshot
	if err := c.do(ctx, http.MethodGet, "/state", nil, &snap); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &snap, nil
}

// Reset starts a new game on the engine
func (c *Client) Reset(ctx context.Context) error {
	var ack ackResponse
	if err := c.do(ctx, http.MethodPost, "/new", nil, &ack); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if ack.Error != "" {
		return fmt.Errorf("reset: %w: %s", ErrUpstream, ack.Error)
	}
	return nil
}

// Roll asks the engine to roll and move the token
func (c *Client) Roll(ctx context.Context) (*TurnResult, error) {
	var res TurnResult
	if err := c.do(ctx, http.MethodPost, "/roll", nil, &res); err != nil {
		return nil, fmt.Errorf("roll: %w", err)
	}
	return &res, nil
}

// Prefetch hints the engine to prepare a question for pos; the response is discarded
func (c *Client) Prefetch(ctx context.Context, pos int) error {
	if c.config.PrefetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.PrefetchTimeout)
		defer cancel()
	}
	if err := c.do(ctx, http.MethodPost, "/prefetch", prefetchRequest{Pos: pos}, nil); err != nil {
		return fmt.Errorf("prefetch: %w", err)
	}
	return nil
}

// Resolve settles the landing tile and reports any pending question
func (c *Client) Resolve(ctx context.Context) (*ResolveResult, error) {
	var res ResolveResult
	if err := c.do(ctx, http.MethodPost, "/resolve", nil, &res); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	return &res, nil
}

// Submit sends an answer for grading
func (c *Client) Submit(ctx context.Context, text string) (*SubmitResult, error) {
	var res SubmitResult
	if err := c.do(ctx, http.MethodPost, "/submit_answer", answerRequest{Text: text}, &res); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.config.RequestTimeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
			defer cancel()
		}
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(payload)
	} else if method == http.MethodPost {
		body = strings.NewReader("{}")
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}
	if sid := c.Session(); sid != "" && c.config.SessionHeader != "" {
		req.Header.Set(c.config.SessionHeader, sid)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Int("bytes", len(respBody)).
		Msg("engine call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
