package middleware

import (
	"bytes"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	genericapiserver "github.com/kanosa0101/TODO-List/internal/pkg/server"
	"github.com/kanosa0101/TODO-List/pkg/logger"
	"github.com/kanosa0101/TODO-List/pkg/utils/json"
)

const (
	// XRequestIDKey is the header and context key of the request id.
	XRequestIDKey  = "X-Request-ID"
	// RequestLogName selects RequestLog in server.middlewares.
	RequestLogName = "requestlog"

	maxLoggedBody = 500
	moduleName    = "http"
)

var (
	redactedHeaders = []string{"Authorization", "Cookie", "Api-Key"}
	sensitiveKeys   = map[string]struct{}{
		"password": {}, "token": {}, "access_token": {}, "refresh_token": {},
		"api_key": {}, "apikey": {}, "secret": {},
	}
)

func init() {
	genericapiserver.RegisterMiddleware(RequestLogName, RequestLog())
}

// RequestLog assigns a request id and logs every request with its outcome.
// Credentials are redacted and JSON bodies truncated. It never aborts.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		rid := c.GetHeader(XRequestIDKey)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(XRequestIDKey, rid)
		c.Header(XRequestIDKey, rid)

		body := peekBody(c)
		logger.InfoX(moduleName, "[HTTP] --> %s %s rid=%s remote=%s headers=%v body=%s",
			c.Request.Method, c.Request.URL.Path, rid, c.ClientIP(), redactHeaders(c), body)

		c.Next()

		logger.InfoX(moduleName, "[HTTP] <-- %s %s rid=%s status=%d latency=%s",
			c.Request.Method, c.Request.URL.Path, rid, c.Writer.Status(), time.Since(start).Round(time.Millisecond))
	}
}

func redactHeaders(c *gin.Context) map[string]string {
	out := make(map[string]string, len(c.Request.Header))
	for k, v := range c.Request.Header {
		out[k] = strings.Join(v, ",")
	}
	for _, h := range redactedHeaders {
		if _, ok := out[h]; ok {
			out[h] = "***"
		}
	}
	return out
}

// peekBody reads a JSON request body for logging and restores it for the
// handler.
func peekBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return "-"
	}
	raw, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	if err != nil || len(raw) == 0 {
		return "-"
	}
	return truncate(redactBody(raw), maxLoggedBody)
}

func redactBody(raw []byte) string {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	redactValue(v)
	out, err := json.Marshal(v)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func redactValue(v interface{}) {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			if isSensitive(k) {
				t[k] = "***"
				continue
			}
			redactValue(child)
		}
	case []interface{}:
		for _, child := range t {
			redactValue(child)
		}
	}
}

func isSensitive(key string) bool {
	_, ok := sensitiveKeys[strings.ToLower(key)]
	return ok
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "...(truncated)"
}
