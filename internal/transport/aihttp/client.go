// Package aihttp builds the outbound HTTP client shared by model provider adapters.
package aihttp

import (
	"net"
	"net/http"
	"time"
)

// DefaultConnectTimeout bounds TCP connect and TLS handshake to a provider.
const DefaultConnectTimeout = 10 * time.Second

// NewClient returns an HTTP client whose dial and TLS handshake are bounded by
// connectTimeout. The overall call deadline comes from the request context.
func NewClient(connectTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   connectTimeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = connectTimeout
	transport.ResponseHeaderTimeout = 0
	return &http.Client{Transport: transport}
}

// Snippet trims a provider response body for logs and error details.
func Snippet(body []byte) string {
	const maxLen = 512
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
