package backend

import (
	"net/http"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:3001/api"
	DefaultTimeout = 10 * time.Second
)

// Config holds the configuration of the CRUD backend client.
type Config struct {
	// BaseURL is the fixed base path; resources live at /todos and /notes below it.
	BaseURL string
	// Timeout bounds every single backend call.
	Timeout time.Duration
	// HTTPClient may be injected by tests. Its own Timeout is ignored.
	HTTPClient *http.Client
}

// CompletedConfig is the validated and completed configuration.
type CompletedConfig struct {
	*Config
}

// Complete fills defaults.
func (c *Config) Complete() CompletedConfig {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{}
	}
	return CompletedConfig{c}
}

// New creates the gateway client.
func (c CompletedConfig) New() *Client {
	return &Client{
		baseURL:    c.BaseURL,
		timeout:    c.Timeout,
		httpClient: c.HTTPClient,
	}
}
