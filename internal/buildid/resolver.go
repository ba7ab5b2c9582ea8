// Package buildid resolves the deployment token the site embeds in its root page.
package buildid

import (
	"context"
	"fmt"
	"regexp"

	"github.com/vuthanhdatt/baomoi/internal/domain"
	"github.com/vuthanhdatt/baomoi/internal/logger"
	"github.com/vuthanhdatt/baomoi/internal/transport"
)

var buildIDPattern = regexp.MustCompile(`"buildId"\s*:\s*"([^"]+)"`)

// Resolver fetches the site root and extracts its build id.
type Resolver struct {
	client       transport.Doer
	baseURL      string
	maxBodyBytes int64
	log          logger.Logger
}

// NewResolver creates a resolver for baseURL. A maxBodyBytes of zero uses the transport default.
func NewResolver(client transport.Doer, baseURL string, maxBodyBytes int64, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.NewNop()
	}
	return &Resolver{
		client:       client,
		baseURL:      baseURL,
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// Resolve issues one GET to the site root. A non-200 status is domain.ErrUpstreamUnavailable,
// a page without the token is domain.ErrProtocolDrift. There are no retries.
func (r *Resolver) Resolve(ctx context.Context) (domain.BuildID, error) {
	body, err := transport.GetBody(ctx, r.client, r.baseURL, r.maxBodyBytes)
	if err != nil {
		return "", fmt.Errorf("fetch site root: %w", err)
	}

	id, ok := Parse(body)
	if !ok {
		return "", &domain.DriftError{What: "buildId", URL: r.baseURL}
	}

	r.log.Debug("Resolved build id", logger.String("build_id", string(id)))

	return id, nil
}

// Parse returns the first build id found in page.
func Parse(page []byte) (domain.BuildID, bool) {
	m := buildIDPattern.FindSubmatch(page)
	if m == nil {
		return "", false
	}
	return domain.BuildID(m[1]), true
}
