package helper

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient returns the client handed to every provider SDK. The timeout
// bounds connecting, the TLS handshake and waiting for response headers only:
// a streamed body may take as long as the model keeps producing tokens, so the
// client carries no overall Timeout. Zero disables the limits.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if timeout > 0 {
		transport.DialContext = (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext
		transport.TLSHandshakeTimeout = timeout
		transport.ResponseHeaderTimeout = timeout
	}
	return &http.Client{Transport: transport}
}
