// Package harvest runs one harvest: resolve the build id, collect post URLs,
// then fetch and save every post concurrently.
package harvest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vuthanhdatt/baomoi/internal/domain"
	"github.com/vuthanhdatt/baomoi/internal/logger"
	"github.com/vuthanhdatt/baomoi/internal/metrics"
	"github.com/vuthanhdatt/baomoi/internal/output"
)

//go:generate mockgen -destination=../../testutils/mocks/harvest/harvest.go -package=harvest github.com/vuthanhdatt/baomoi/internal/harvest BuildIDResolver,URLCollector,BatchFetcher

// BuildIDResolver resolves the site's current build id.
type BuildIDResolver interface {
	Resolve(ctx context.Context) (domain.BuildID, error)
}

// URLCollector gathers unique post URLs from the catalogue.
type URLCollector interface {
	Collect(ctx context.Context, target int, buildID domain.BuildID, category domain.Category) (domain.URLSet, error)
}

// BatchFetcher fetches and saves a batch of posts.
type BatchFetcher interface {
	FetchAll(ctx context.Context, urls []string, outputDir string) []domain.FetchResult
}

// Request describes one harvest run.
type Request struct {
	Category  domain.Category
	PostCount int
	OutputDir string
}

// Failure is a post that could not be saved.
type Failure struct {
	URL string
	Err error
}

// Report summarizes a run.
type Report struct {
	RunID      string
	Category   domain.Category
	OutputDir  string
	BuildID    domain.BuildID
	Discovered int
	Written    int
	Failed     int
	Failures   []Failure
	Duration   time.Duration
	Metrics    metrics.Snapshot
}

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	resolver  BuildIDResolver
	collector URLCollector
	fetcher   BatchFetcher
	metrics   *metrics.Metrics
	log       logger.Logger
}

// NewOrchestrator creates an orchestrator. A nil metrics or log is replaced with a private instance.
func NewOrchestrator(
	resolver BuildIDResolver,
	collector URLCollector,
	fetcher BatchFetcher,
	m *metrics.Metrics,
	log logger.Logger,
) *Orchestrator {
	if m == nil {
		m = metrics.NewMetrics()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Orchestrator{
		resolver:  resolver,
		collector: collector,
		fetcher:   fetcher,
		metrics:   m,
		log:       log,
	}
}

// Run executes a harvest. The category is validated and the output directory
// created before any network call. Build id and catalogue errors abort the run.
// Post failures do not; when any post fails the report is still returned,
// together with an error wrapping domain.ErrPartialFailure.
func (o *Orchestrator) Run(ctx context.Context, req Request) (*Report, error) {
	if err := req.Category.Validate(); err != nil {
		return nil, err
	}
	if req.PostCount < 0 {
		return nil, fmt.Errorf("post count must be non-negative, got %d", req.PostCount)
	}
	if err := output.EnsureDir(req.OutputDir); err != nil {
		return nil, err
	}

	start := time.Now()
	report := &Report{
		RunID:     uuid.New().String(),
		Category:  req.Category,
		OutputDir: req.OutputDir,
	}
	log := o.log.With(
		logger.String("run_id", report.RunID),
		logger.String("category", req.Category.DirName()),
	)

	log.Info("Starting harvest",
		logger.Int("post_count", req.PostCount),
		logger.String("output_dir", req.OutputDir),
	)

	buildID, err := o.resolver.Resolve(ctx)
	if err != nil {
		log.Error("Failed to resolve build id", logger.Error(err))
		return nil, fmt.Errorf("resolve build id: %w", err)
	}
	report.BuildID = buildID

	urlSet, err := o.collector.Collect(ctx, req.PostCount, buildID, req.Category)
	if err != nil {
		log.Error("Failed to collect post urls", logger.Error(err))
		return nil, fmt.Errorf("collect post urls: %w", err)
	}

	urls := urlSet.Freeze()
	report.Discovered = len(urls)
	log.Info("Collected post urls", logger.Int("count", len(urls)))

	results := o.fetcher.FetchAll(ctx, urls, req.OutputDir)

	errs := tally(report, results)
	report.Duration = time.Since(start)
	report.Metrics = o.metrics.Snapshot()

	log.Info("Harvest finished",
		logger.Int("written", report.Written),
		logger.Int("failed", report.Failed),
		logger.Duration("duration", report.Duration),
	)

	if report.Failed > 0 {
		return report, fmt.Errorf("%w: %d of %d posts failed: %w",
			domain.ErrPartialFailure, report.Failed, report.Discovered, errors.Join(errs...))
	}

	return report, nil
}

// tally counts results into report and returns the per-URL errors.
func tally(report *Report, results []domain.FetchResult) []error {
	var errs []error
	for _, r := range results {
		if r.OK() {
			report.Written++
			continue
		}
		report.Failed++
		report.Failures = append(report.Failures, Failure{URL: r.URL, Err: r.Err})
		errs = append(errs, fmt.Errorf("%s: %w", r.URL, r.Err))
	}
	return errs
}
