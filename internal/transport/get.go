package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vuthanhdatt/baomoi/internal/domain"
)

// DefaultMaxBodyBytes limits the size of fetched response bodies.
const DefaultMaxBodyBytes = 10 * 1024 * 1024 // 10 MB

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get issues a GET for rawURL and returns the response when the status is 200.
// Any other status is reported as *domain.UpstreamError and the body is closed.
// The caller must close the returned body.
func Get(ctx context.Context, doer Doer, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http fetch %s: %w", rawURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, DefaultMaxBodyBytes))
		_ = resp.Body.Close()
		return nil, &domain.UpstreamError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	return resp, nil
}

// GetBody fetches rawURL and reads at most maxBytes of the body.
// A maxBytes of zero or less means DefaultMaxBodyBytes.
func GetBody(ctx context.Context, doer Doer, rawURL string, maxBytes int64) ([]byte, error) {
	resp, err := Get(ctx, doer, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(LimitBody(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return body, nil
}

// LimitBody caps r at maxBytes, or DefaultMaxBodyBytes when maxBytes <= 0.
func LimitBody(r io.Reader, maxBytes int64) io.Reader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return io.LimitReader(r, maxBytes)
}
