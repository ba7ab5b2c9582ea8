// Package transport provides the shared HTTP client used for every upstream request.
// All requests carry the browser-like header bundle the site's data API expects.
package transport

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout is the default timeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	// DefaultMaxIdleConns is the default maximum number of idle connections
	DefaultMaxIdleConns = 100

	// DefaultMaxIdleConnsPerHost is the default maximum number of idle connections per host.
	// Every request goes to the same origin, so this bounds connection reuse.
	DefaultMaxIdleConnsPerHost = 32

	// DefaultIdleConnTimeout is the default idle connection timeout
	DefaultIdleConnTimeout = 90 * time.Second

	// DefaultResponseHeaderTimeout is the default response header timeout
	DefaultResponseHeaderTimeout = 30 * time.Second

	// DefaultTLSHandshakeTimeout is the default TLS handshake timeout
	DefaultTLSHandshakeTimeout = 10 * time.Second
)

// ClientConfig configures an HTTP client.
type ClientConfig struct {
	// Timeout specifies a time limit for requests made by this Client.
	// A Timeout of zero means DefaultTimeout.
	Timeout time.Duration

	// MaxIdleConns controls the maximum number of idle (keep-alive) connections
	// across all hosts.
	MaxIdleConns int

	// MaxIdleConnsPerHost controls the maximum idle connections to keep per-host.
	MaxIdleConnsPerHost int

	// IdleConnTimeout is the maximum amount of time an idle (keep-alive)
	// connection will remain idle before closing itself.
	IdleConnTimeout time.Duration

	// ResponseHeaderTimeout is the time to wait for a server's response headers.
	ResponseHeaderTimeout time.Duration

	// TLSHandshakeTimeout specifies the maximum amount of time waiting for a TLS handshake.
	TLSHandshakeTimeout time.Duration

	// Headers are set on every outgoing request that does not already carry them.
	// Nil means DefaultHeaders for Referer.
	Headers http.Header

	// Referer is used when Headers is nil.
	Referer string

	// Base is the underlying round tripper. Nil builds a pooled *http.Transport.
	Base http.RoundTripper
}

// NewClient creates a new HTTP client with standardized configuration.
// If cfg is nil, default values are used.
func NewClient(cfg *ClientConfig) *http.Client {
	if cfg == nil {
		cfg = &ClientConfig{}
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	base := cfg.Base
	if base == nil {
		base = newPooledTransport(cfg)
	}

	headers := cfg.Headers
	if headers == nil {
		headers = DefaultHeaders(cfg.Referer)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: NewHeaderTransport(base, headers),
	}
}

func newPooledTransport(cfg *ClientConfig) *http.Transport {
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		MaxIdleConns:          orDefault(cfg.MaxIdleConns, DefaultMaxIdleConns),
		MaxIdleConnsPerHost:   orDefault(cfg.MaxIdleConnsPerHost, DefaultMaxIdleConnsPerHost),
		IdleConnTimeout:       orDefault(cfg.IdleConnTimeout, DefaultIdleConnTimeout),
		ResponseHeaderTimeout: orDefault(cfg.ResponseHeaderTimeout, DefaultResponseHeaderTimeout),
		TLSHandshakeTimeout:   orDefault(cfg.TLSHandshakeTimeout, DefaultTLSHandshakeTimeout),
		ForceAttemptHTTP2:     true,
	}
}

func orDefault[T int | time.Duration](v, def T) T {
	if v == 0 {
		return def
	}
	return v
}
