// Package metrics provides run counters for a harvest.
package metrics

import (
	"sync"
	"time"
)

// Metrics holds the counters of one harvest run. It is safe for concurrent use.
type Metrics struct {
	// PagesFetched is the number of catalogue pages fetched.
	PagesFetched int64
	// URLsDiscovered is the number of unique post URLs collected.
	URLsDiscovered int64
	// DuplicateURLs is the number of catalogue URLs already in the set.
	DuplicateURLs int64
	// ItemsSkipped is the number of catalogue items without a URL, such as ad slots.
	ItemsSkipped int64
	// DocumentsWritten is the number of article files written.
	DocumentsWritten int64
	// FetchFailures is the number of articles that could not be saved.
	FetchFailures int64
	// LimiterWait is the total time fetches spent waiting for a rate limiter permit.
	LimiterWait time.Duration
	// StartTime is when the metrics collection began.
	StartTime time.Time
	// mu protects concurrent access to metrics.
	mu sync.Mutex
}

// Snapshot is a point-in-time copy of Metrics.
type Snapshot struct {
	PagesFetched     int64
	URLsDiscovered   int64
	DuplicateURLs    int64
	ItemsSkipped     int64
	DocumentsWritten int64
	FetchFailures    int64
	LimiterWait      time.Duration
	Elapsed          time.Duration
}

// NewMetrics creates a new Metrics instance starting now.
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// IncrementPagesFetched records a fetched catalogue page.
func (m *Metrics) IncrementPagesFetched() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PagesFetched++
}

// IncrementURLsDiscovered records a newly collected URL.
func (m *Metrics) IncrementURLsDiscovered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.URLsDiscovered++
}

// IncrementDuplicateURLs records a URL that was already collected.
func (m *Metrics) IncrementDuplicateURLs() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicateURLs++
}

// IncrementItemsSkipped records a catalogue item without a URL.
func (m *Metrics) IncrementItemsSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsSkipped++
}

// UpdateFetch records the outcome of one article fetch.
func (m *Metrics) UpdateFetch(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if success {
		m.DocumentsWritten++
	} else {
		m.FetchFailures++
	}
}

// AddLimiterWait adds d to the accumulated limiter wait time.
func (m *Metrics) AddLimiterWait(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LimiterWait += d
}

// Snapshot returns a copy of the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		PagesFetched:     m.PagesFetched,
		URLsDiscovered:   m.URLsDiscovered,
		DuplicateURLs:    m.DuplicateURLs,
		ItemsSkipped:     m.ItemsSkipped,
		DocumentsWritten: m.DocumentsWritten,
		FetchFailures:    m.FetchFailures,
		LimiterWait:      m.LimiterWait,
		Elapsed:          time.Since(m.StartTime),
	}
}
