package harvest

import (
	"github.com/vuthanhdatt/baomoi/internal/buildid"
	"github.com/vuthanhdatt/baomoi/internal/catalog"
	"github.com/vuthanhdatt/baomoi/internal/config"
	"github.com/vuthanhdatt/baomoi/internal/extractor"
	"github.com/vuthanhdatt/baomoi/internal/fetcher"
	"github.com/vuthanhdatt/baomoi/internal/logger"
	"github.com/vuthanhdatt/baomoi/internal/metrics"
	"github.com/vuthanhdatt/baomoi/internal/transport"
)

// NewFromConfig builds an orchestrator with the production stages.
// Each call creates its own HTTP client, rate limiter and metrics, so
// concurrent runs never share throughput budget.
func NewFromConfig(cfg *config.Config, log logger.Logger) *Orchestrator {
	if log == nil {
		log = logger.NewNop()
	}

	client := transport.NewClient(&transport.ClientConfig{
		Timeout: cfg.HTTP.RequestTimeout,
		Referer: cfg.Site.BaseURL,
	})
	m := metrics.NewMetrics()

	resolver := buildid.NewResolver(client, cfg.Site.BaseURL, cfg.HTTP.MaxBodyBytes, log)

	paginator := catalog.NewPaginator(client, cfg.Site.BaseURL, cfg.HTTP.MaxBodyBytes, log)
	collector := catalog.NewCollector(paginator, catalog.CollectorConfig{
		BaseURL:       cfg.Site.BaseURL,
		MaxPages:      cfg.Harvest.MaxPages,
		MaxEmptyPages: cfg.Harvest.MaxEmptyPages,
	}, m, log)

	limiter := fetcher.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Per, log)
	log.Debug("Rate limiter ready",
		logger.Int("requests", limiter.Requests()),
		logger.Duration("per", limiter.Per()),
		logger.Duration("interval", limiter.Interval()),
	)

	var robots fetcher.RobotsAllower
	if cfg.Harvest.RespectRobotsTxt {
		robots = fetcher.NewRobotsChecker(client, limiter, transport.UserAgent, 0)
	}
	fetch := fetcher.NewFetcher(client, limiter, extractor.New(), robots, m, log, fetcher.Config{
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})

	return NewOrchestrator(resolver, collector, fetch, m, log)
}
