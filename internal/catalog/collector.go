package catalog

import (
	"context"
	"strings"

	"github.com/vuthanhdatt/baomoi/internal/domain"
	"github.com/vuthanhdatt/baomoi/internal/logger"
	"github.com/vuthanhdatt/baomoi/internal/metrics"
)

// Collection bounds used when CollectorConfig leaves them unset.
const (
	DefaultMaxPages      = 500
	DefaultMaxEmptyPages = 3
)

// PageFetcher fetches one listing page.
type PageFetcher interface {
	FetchPage(ctx context.Context, page int, buildID domain.BuildID, category domain.Category) ([]domain.CatalogItem, error)
}

// CollectorConfig configures URL collection.
type CollectorConfig struct {
	// BaseURL is prefixed to every relative post path.
	BaseURL string
	// MaxPages is the last page number requested.
	MaxPages int
	// MaxEmptyPages ends collection after this many consecutive pages without a new URL.
	MaxEmptyPages int
}

// Collector walks listing pages until it holds the target number of unique post URLs.
type Collector struct {
	pages         PageFetcher
	baseURL       string
	maxPages      int
	maxEmptyPages int
	metrics       *metrics.Metrics
	log           logger.Logger
}

// NewCollector creates a collector. A nil metrics or log is replaced with a private instance.
func NewCollector(pages PageFetcher, cfg CollectorConfig, m *metrics.Metrics, log logger.Logger) *Collector {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = DefaultMaxPages
	}
	if cfg.MaxEmptyPages <= 0 {
		cfg.MaxEmptyPages = DefaultMaxEmptyPages
	}
	if m == nil {
		m = metrics.NewMetrics()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Collector{
		pages:         pages,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		maxPages:      cfg.MaxPages,
		maxEmptyPages: cfg.MaxEmptyPages,
		metrics:       m,
		log:           log,
	}
}

// Collect returns up to target unique absolute post URLs, starting at page 1.
// It returns fewer when pagination is exhausted: MaxEmptyPages consecutive pages
// without a new URL, or MaxPages reached. A page error aborts collection.
func (c *Collector) Collect(
	ctx context.Context,
	target int,
	buildID domain.BuildID,
	category domain.Category,
) (domain.URLSet, error) {
	urls := domain.NewURLSet()
	if target <= 0 {
		return urls, nil
	}

	emptyStreak := 0
	for page := 1; urls.Len() < target; page++ {
		if page > c.maxPages {
			c.log.Warn("Page limit reached before target",
				logger.Int("max_pages", c.maxPages),
				logger.Int("collected", urls.Len()),
				logger.Int("target", target),
			)
			break
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.log.Info("Fetching page", logger.Int("page", page))

		items, err := c.pages.FetchPage(ctx, page, buildID, category)
		if err != nil {
			return nil, err
		}
		c.metrics.IncrementPagesFetched()

		if added := c.addItems(urls, items, target); added > 0 {
			emptyStreak = 0
			continue
		}

		emptyStreak++
		if emptyStreak >= c.maxEmptyPages {
			c.log.Info("Catalogue exhausted",
				logger.Int("last_page", page),
				logger.Int("collected", urls.Len()),
				logger.Int("target", target),
			)
			break
		}
	}

	return urls, nil
}

// addItems inserts the items' absolute URLs until the set reaches target and
// returns how many were new. Items without a URL are skipped.
func (c *Collector) addItems(urls domain.URLSet, items []domain.CatalogItem, target int) int {
	added := 0
	for _, item := range items {
		rel, ok := item.RelativeURL()
		if !ok {
			c.metrics.IncrementItemsSkipped()
			c.log.Debug("Skipping item without url",
				logger.String("type", item.Type),
				logger.String("id", item.ID),
			)
			continue
		}

		if !urls.Add(c.baseURL + rel) {
			c.metrics.IncrementDuplicateURLs()
			continue
		}

		added++
		c.metrics.IncrementURLsDiscovered()
		if urls.Len() >= target {
			break
		}
	}
	return added
}
