// Package client talks to the todo-agent HTTP API.
package client

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kanosa0101/TODO-List/pkg/utils/json"
)

// ChatMessage is a single message of the conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type streamEvent struct {
	Content string `json:"content"`
	Error   string `json:"error"`
	Done    bool   `json:"done"`
}

type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// ErrStreamCut is returned when the stream ends without a done or error event.
var ErrStreamCut = errors.New("stream ended before the answer was complete")

// AgentClient is the HTTP client of the todo-agent chat API.
type AgentClient struct {
	BaseURL     string
	Token       string
	Temperature float32
	HTTPClient  *http.Client
}

// NewAgentClient creates a new client.
func NewAgentClient(baseURL, token string, httpClient *http.Client) *AgentClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AgentClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: httpClient,
	}
}

// StreamCallback is called for each content event.
type StreamCallback func(delta string)

// ChatStream posts the conversation to /api/chat/stream, calling cb for each
// content event. It returns the full reply once the done event arrives.
func (c *AgentClient) ChatStream(ctx context.Context, messages []ChatMessage, cb StreamCallback) (string, error) {
	body, err := json.Marshal(chatRequest{Messages: messages, Temperature: c.Temperature})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/chat/stream", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readError(resp)
	}

	var full strings.Builder
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

		var ev streamEvent
		if err := json.UnmarshalString(data, &ev); err != nil {
			continue
		}
		switch {
		case ev.Error != "":
			return full.String(), errors.New(ev.Error)
		case ev.Done:
			return full.String(), nil
		case ev.Content != "":
			full.WriteString(ev.Content)
			if cb != nil {
				cb(ev.Content)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return full.String(), fmt.Errorf("read stream: %w", err)
	}
	return full.String(), ErrStreamCut
}

// ToolSpec is one entry of GET /api/tools.
type ToolSpec struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// ListTools fetches the agent's tool catalog.
func (c *AgentClient) ListTools(ctx context.Context) ([]ToolSpec, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/api/tools", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readError(resp)
	}

	var out struct {
		Tools []ToolSpec `json:"tools"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode tools: %w", err)
	}
	return out.Tools, nil
}

func readError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		if body.Detail != "" {
			return fmt.Errorf("server returned %d: %s (%s)", resp.StatusCode, body.Error, body.Detail)
		}
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body.Error)
	}
	return fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
}
