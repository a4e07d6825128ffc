package network

import (
	"net/http"
	"time"
)

// Config holds the collaborator connection settings
type Config struct {
	// BaseURL of the rules engine, without trailing slash
	BaseURL string

	// Timing
	RequestTimeout  time.Duration
	PrefetchTimeout time.Duration

	// SessionHeader carries the per-game correlation id
	SessionHeader string
	UserAgent     string

	// Transport tuning
	MaxIdleConns    int
	IdleConnTimeout time.Duration
}

// DefaultConfig returns local-engine defaults
func DefaultConfig() *Config {
	return &Config{
		BaseURL:         "http://127.0.0.1:8000",
		RequestTimeout:  30 * time.Second,
		PrefetchTimeout: 60 * time.Second,
		SessionHeader:   "X-Game-Session",
		UserAgent:       "offerboard",
		MaxIdleConns:    4,
		IdleConnTimeout: 90 * time.Second,
	}
}

// HTTPClient builds the http.Client described by the config
// Request deadlines come from per-call contexts, not from the client
func (c *Config) HTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        c.MaxIdleConns,
			MaxIdleConnsPerHost: c.MaxIdleConns,
			IdleConnTimeout:     c.IdleConnTimeout,
		},
	}
}
