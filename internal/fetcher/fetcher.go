// Package fetcher downloads post pages under a shared rate limit and saves
// the extracted documents as text files.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/vuthanhdatt/baomoi/internal/domain"
	"github.com/vuthanhdatt/baomoi/internal/filename"
	"github.com/vuthanhdatt/baomoi/internal/logger"
	"github.com/vuthanhdatt/baomoi/internal/metrics"
	"github.com/vuthanhdatt/baomoi/internal/output"
	"github.com/vuthanhdatt/baomoi/internal/transport"
)

// ErrRobotsDisallowed is returned for URLs blocked by robots.txt.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

var errEmptyHost = errors.New("empty host")

// Limiter admits one request per successful Wait.
type Limiter interface {
	Wait(ctx context.Context) (time.Duration, error)
}

// DocumentExtractor turns a post page into a document.
type DocumentExtractor interface {
	Extract(html io.Reader) (*domain.Document, error)
}

// RobotsAllower checks robots.txt compliance. Implementations that fetch
// robots.txt take their own limiter permit for it.
type RobotsAllower interface {
	IsAllowed(ctx context.Context, rawURL string) (bool, error)
}

// Config configures a Fetcher.
type Config struct {
	// MaxBodyBytes caps each page body. Zero uses the transport default.
	MaxBodyBytes int64
	// MaxFilenameLength caps artifact names in runes. Zero uses the sanitizer default.
	MaxFilenameLength int
}

// Fetcher fetches, extracts and saves post pages.
type Fetcher struct {
	client       transport.Doer
	limiter      Limiter
	extractor    DocumentExtractor
	robots       RobotsAllower
	metrics      *metrics.Metrics
	log          logger.Logger
	maxBodyBytes int64
	maxNameLen   int
}

// NewFetcher creates a fetcher. A nil robots disables the robots.txt gate.
func NewFetcher(
	client transport.Doer,
	limiter Limiter,
	extractor DocumentExtractor,
	robots RobotsAllower,
	m *metrics.Metrics,
	log logger.Logger,
	cfg Config,
) *Fetcher {
	if m == nil {
		m = metrics.NewMetrics()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Fetcher{
		client:       client,
		limiter:      limiter,
		extractor:    extractor,
		robots:       robots,
		metrics:      m,
		log:          log,
		maxBodyBytes: cfg.MaxBodyBytes,
		maxNameLen:   cfg.MaxFilenameLength,
	}
}

// FetchAll runs FetchAndSave for every URL concurrently and waits for all of them.
// Results are in input order. A failed task does not affect its siblings.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string, outputDir string) []domain.FetchResult {
	results := make([]domain.FetchResult, len(urls))

	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = f.FetchAndSave(ctx, u, outputDir)
		}()
	}
	wg.Wait()

	return results
}

// FetchAndSave waits for a rate limiter permit, fetches rawURL, extracts the
// document and writes its content to outputDir/<sanitized title>.txt.
// A non-200 status is domain.ErrUpstreamUnavailable for this URL only.
func (f *Fetcher) FetchAndSave(ctx context.Context, rawURL, outputDir string) domain.FetchResult {
	result := domain.FetchResult{URL: rawURL}

	doc, path, err := f.fetchAndSave(ctx, rawURL, outputDir)
	if err != nil {
		result.Err = err
		f.metrics.UpdateFetch(false)
		f.log.Warn("Fetch failed", logger.String("url", rawURL), logger.Error(err))
		return result
	}

	result.Document = doc
	result.Path = path
	f.metrics.UpdateFetch(true)
	f.log.Debug("Saved post", logger.String("url", rawURL), logger.String("path", path))

	return result
}

func (f *Fetcher) fetchAndSave(ctx context.Context, rawURL, outputDir string) (*domain.Document, string, error) {
	if f.robots != nil {
		allowed, err := f.robots.IsAllowed(ctx, rawURL)
		if err != nil {
			return nil, "", fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, "", ErrRobotsDisallowed
		}
	}

	waited, err := f.limiter.Wait(ctx)
	f.metrics.AddLimiterWait(waited)
	if err != nil {
		return nil, "", fmt.Errorf("wait for rate limiter: %w", err)
	}

	f.log.Info("Fetching", logger.String("url", rawURL))

	resp, err := transport.Get(ctx, f.client, rawURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	doc, err := f.extractor.Extract(transport.LimitBody(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, "", fmt.Errorf("extract %s: %w", rawURL, err)
	}

	path, err := output.NewWriter(outputDir).Write(filename.SanitizeMax(doc.Title, f.maxNameLen), doc.Content)
	if err != nil {
		return nil, "", err
	}

	return doc, path, nil
}
