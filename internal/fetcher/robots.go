package fetcher

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"github.com/vuthanhdatt/baomoi/internal/transport"
)

// Default cache TTL for robots.txt entries.
const defaultRobotsCacheTTL = 24 * time.Hour

// robotsTxtPath is the well-known path for robots.txt files.
const robotsTxtPath = "/robots.txt"

// maxRobotsBodyBytes limits the size of robots.txt responses we will read.
const maxRobotsBodyBytes = 512 * 1024 // 512 KB

// RobotsChecker checks and caches robots.txt rules per host.
// With a limiter, robots.txt requests take a permit and a host's crawl-delay
// widens the limiter's spacing.
type RobotsChecker struct {
	client    transport.Doer
	limiter   *RateLimiter
	userAgent string
	cacheTTL  time.Duration

	mu    sync.RWMutex
	cache map[string]*robotsCacheEntry // keyed by host

	// fetchMu serializes cache misses so concurrent tasks fetch robots.txt once.
	fetchMu sync.Mutex
}

// robotsCacheEntry stores the parsed robots.txt data for a host.
type robotsCacheEntry struct {
	data      *robotstxt.RobotsData
	fetchedAt time.Time
	allowAll  bool // robots.txt missing, unreadable or not 2xx
}

// NewRobotsChecker creates a new RobotsChecker. limiter may be nil.
func NewRobotsChecker(client transport.Doer, limiter *RateLimiter, userAgent string, cacheTTL time.Duration) *RobotsChecker {
	if cacheTTL == 0 {
		cacheTTL = defaultRobotsCacheTTL
	}
	if userAgent == "" {
		userAgent = transport.UserAgent
	}

	return &RobotsChecker{
		client:    client,
		limiter:   limiter,
		userAgent: userAgent,
		cache:     make(map[string]*robotsCacheEntry),
		cacheTTL:  cacheTTL,
	}
}

// IsAllowed checks if rawURL is allowed by its host's robots.txt.
// A missing or failing robots.txt allows everything.
func (r *RobotsChecker) IsAllowed(ctx context.Context, rawURL string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, err
	}

	host := strings.ToLower(parsed.Host)
	if host == "" {
		return false, &url.Error{Op: "robots", URL: rawURL, Err: errEmptyHost}
	}

	entry := r.entry(ctx, host, parsed.Scheme)
	if entry.allowAll {
		return true, nil
	}

	return entry.data.TestAgent(parsed.Path, r.userAgent), nil
}

func (r *RobotsChecker) entry(ctx context.Context, host, scheme string) *robotsCacheEntry {
	if entry, ok := r.cached(host); ok {
		return entry
	}

	r.fetchMu.Lock()
	defer r.fetchMu.Unlock()

	if entry, ok := r.cached(host); ok {
		return entry
	}

	entry := r.fetch(ctx, host, scheme)

	r.mu.Lock()
	r.cache[host] = entry
	r.mu.Unlock()

	return entry
}

func (r *RobotsChecker) cached(host string) (*robotsCacheEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.cache[host]
	if !ok || time.Since(entry.fetchedAt) > r.cacheTTL {
		return nil, false
	}
	return entry, true
}

// fetch downloads and parses robots.txt. Failures degrade to allow-all.
func (r *RobotsChecker) fetch(ctx context.Context, host, scheme string) *robotsCacheEntry {
	if scheme == "" {
		scheme = "https"
	}
	allowAll := &robotsCacheEntry{fetchedAt: time.Now(), allowAll: true}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, scheme+"://"+host+robotsTxtPath, http.NoBody)
	if err != nil {
		return allowAll
	}
	req.Header.Set("User-Agent", r.userAgent)

	if r.limiter != nil {
		if _, err := r.limiter.Wait(ctx); err != nil {
			return allowAll
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return allowAll
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return allowAll
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBodyBytes))
	if err != nil {
		return allowAll
	}

	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return allowAll
	}

	if delay := r.crawlDelay(data); delay > 0 && r.limiter != nil {
		r.limiter.SetMinInterval(delay)
	}

	return &robotsCacheEntry{data: data, fetchedAt: time.Now()}
}

// crawlDelay returns the crawl-delay of the group matching our user agent.
func (r *RobotsChecker) crawlDelay(data *robotstxt.RobotsData) time.Duration {
	group := data.FindGroup(r.userAgent)
	if group == nil {
		return 0
	}
	return group.CrawlDelay
}
