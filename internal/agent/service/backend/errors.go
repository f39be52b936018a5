package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kanosa0101/TODO-List/pkg/utils/json"
)

// Kind classifies a failed backend call.
type Kind int

const (
	KindUnreachable Kind = iota + 1
	KindTimeout
	KindHTTP
	KindProtocol
)

// maxDetailRunes caps how much of a non-JSON error body is quoted back.
const maxDetailRunes = 100

// Error is a classified backend failure. It never leaves the gateway as an
// error value; Error() becomes the ToolResult error text.
type Error struct {
	Kind    Kind
	Op      string
	BaseURL string
	Timeout time.Duration
	Status  int
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindUnreachable:
		return fmt.Sprintf("cannot reach the todo backend at %s, make sure the service is running", e.BaseURL)
	case KindTimeout:
		return fmt.Sprintf("%s request timed out after %s, the backend took too long to respond", e.Op, e.Timeout)
	case KindHTTP:
		if e.Detail == "" {
			return fmt.Sprintf("HTTP error %d", e.Status)
		}
		return fmt.Sprintf("HTTP error %d: %s", e.Status, e.Detail)
	default:
		return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// classifyTransport maps an error returned by http.Client.Do.
func (c *Client) classifyTransport(op string, err error) *Error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Op: op, Timeout: c.timeout, Err: err}
	}
	return &Error{Kind: KindUnreachable, Op: op, BaseURL: c.baseURL, Err: err}
}

// classifyStatus builds the error for a non-2xx response.
func classifyStatus(op string, status int, body []byte) *Error {
	return &Error{Kind: KindHTTP, Op: op, Status: status, Detail: errorDetail(body)}
}

// errorDetail prefers the "error" field of a JSON body and falls back to the
// head of the raw body.
func errorDetail(body []byte) string {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg, ok := payload["error"].(string); ok && msg != "" {
			return msg
		}
	}

	raw := strings.TrimSpace(string(body))
	if utf8.RuneCountInString(raw) <= maxDetailRunes {
		return raw
	}
	return string([]rune(raw)[:maxDetailRunes])
}
