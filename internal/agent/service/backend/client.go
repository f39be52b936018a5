package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kanosa0101/TODO-List/internal/agent/domain/entity"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
)

const moduleName = "backend"

// Client is the stateless gateway to the todos/notes backend. It is safe for
// concurrent use; every call carries its own credential.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// BaseURL returns the configured base path.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call performs one request and decodes a 2xx JSON body into a generic value.
// A nil body means no payload is sent.
func (c *Client) call(ctx context.Context, op, credential, method, path string, query url.Values, body interface{}) (interface{}, *Error) {
	respBody, e := c.do(ctx, op, credential, method, path, query, body)
	if e != nil {
		return nil, e
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return nil, nil
	}

	var out interface{}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &Error{Kind: KindProtocol, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return out, nil
}

// do performs one request and returns the raw body of a 2xx response.
func (c *Client) do(ctx context.Context, op, credential, method, path string, query url.Values, body interface{}) ([]byte, *Error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindProtocol, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, &Error{Kind: KindProtocol, Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.WarnX(moduleName, "[Backend] %s %s failed after %s: %v", method, path, time.Since(start), err)
		return nil, c.classifyTransport(op, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransport(op, err)
	}
	logger.InfoX(moduleName, "[Backend] %s %s -> %d (%s)", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyStatus(op, resp.StatusCode, respBody)
	}
	return respBody, nil
}

func fail(e *Error) *entity.ToolResult {
	return entity.Fail("%s", e.Error())
}

// listResult turns a decoded list body into a result with count.
func listResult(op string, data interface{}) *entity.ToolResult {
	switch v := data.(type) {
	case []interface{}:
		return entity.SucceedList(v)
	case nil:
		return entity.SucceedList([]interface{}{})
	default:
		return fail(&Error{Kind: KindProtocol, Op: op, Err: fmt.Errorf("expected a JSON array, got %T", data)})
	}
}

func todoPath(id int64) string { return fmt.Sprintf("/todos/%d", id) }
func notePath(id int64) string { return fmt.Sprintf("/notes/%d", id) }
