package catalog_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuthanhdatt/baomoi/internal/catalog"
	"github.com/vuthanhdatt/baomoi/internal/domain"
	"github.com/vuthanhdatt/baomoi/internal/metrics"
)

// fakePages serves canned pages. Pages past the end are empty.
type fakePages struct {
	pages     [][]domain.CatalogItem
	errOnPage int
	calls     []int
}

func (f *fakePages) FetchPage(
	_ context.Context,
	page int,
	_ domain.BuildID,
	_ domain.Category,
) ([]domain.CatalogItem, error) {
	f.calls = append(f.calls, page)
	if page == f.errOnPage {
		return nil, &domain.UpstreamError{URL: fmt.Sprintf("page-%d", page), StatusCode: 500}
	}
	if page > len(f.pages) {
		return nil, nil
	}
	return f.pages[page-1], nil
}

func item(url string) domain.CatalogItem {
	return domain.CatalogItem{URL: &url}
}

func ad() domain.CatalogItem {
	return domain.CatalogItem{Type: "adBanner", ID: "BaoMoi_MastheadInline_2"}
}

func newCollector(pages catalog.PageFetcher, m *metrics.Metrics) *catalog.Collector {
	return catalog.NewCollector(pages, catalog.CollectorConfig{
		BaseURL:       "https://baomoi.com",
		MaxPages:      10,
		MaxEmptyPages: 2,
	}, m, nil)
}

func TestCollect_StopsAtTarget(t *testing.T) {
	t.Parallel()

	pages := &fakePages{pages: [][]domain.CatalogItem{
		{item("/a"), item("/b"), item("/c")},
		{item("/d"), item("/e")},
		{item("/f")},
	}}

	urls, err := newCollector(pages, nil).Collect(context.Background(), 4, "abc123", domain.World)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://baomoi.com/a",
		"https://baomoi.com/b",
		"https://baomoi.com/c",
		"https://baomoi.com/d",
	}, urls.Freeze())
	assert.Equal(t, []int{1, 2}, pages.calls)
}

func TestCollect_DeduplicatesAndSkipsAds(t *testing.T) {
	t.Parallel()

	m := metrics.NewMetrics()
	pages := &fakePages{pages: [][]domain.CatalogItem{
		{item("/a"), ad(), item("/a"), item("")},
		{item("/b"), item("/a")},
	}}

	urls, err := newCollector(pages, m).Collect(context.Background(), 2, "abc123", domain.Homepage)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://baomoi.com/a", "https://baomoi.com/b"}, urls.Freeze())

	s := m.Snapshot()
	assert.Equal(t, int64(2), s.ItemsSkipped)
	assert.Equal(t, int64(1), s.DuplicateURLs)
	assert.Equal(t, int64(2), s.URLsDiscovered)
	assert.Equal(t, int64(2), s.PagesFetched)
}

func TestCollect_ExhaustedReturnsFewer(t *testing.T) {
	t.Parallel()

	pages := &fakePages{pages: [][]domain.CatalogItem{
		{item("/a"), item("/b")},
		{item("/a")},
	}}

	urls, err := newCollector(pages, nil).Collect(context.Background(), 50, "abc123", domain.Homepage)
	require.NoError(t, err)

	assert.Equal(t, 2, urls.Len())
	// Page 2 repeats a known URL and page 3 is empty: two pages without progress.
	assert.Equal(t, []int{1, 2, 3}, pages.calls)
}

func TestCollect_MaxPages(t *testing.T) {
	t.Parallel()

	many := make([][]domain.CatalogItem, 20)
	for i := range many {
		many[i] = []domain.CatalogItem{item(fmt.Sprintf("/p%d", i))}
	}
	pages := &fakePages{pages: many}

	urls, err := newCollector(pages, nil).Collect(context.Background(), 100, "abc123", domain.Homepage)
	require.NoError(t, err)

	assert.Equal(t, 10, urls.Len())
	assert.Len(t, pages.calls, 10)
}

func TestCollect_ZeroTarget(t *testing.T) {
	t.Parallel()

	pages := &fakePages{}
	urls, err := newCollector(pages, nil).Collect(context.Background(), 0, "abc123", domain.Homepage)
	require.NoError(t, err)

	assert.Equal(t, 0, urls.Len())
	assert.Empty(t, pages.calls)
}

func TestCollect_PageErrorIsFatal(t *testing.T) {
	t.Parallel()

	pages := &fakePages{
		pages:     [][]domain.CatalogItem{{item("/a")}, {item("/b")}},
		errOnPage: 2,
	}

	urls, err := newCollector(pages, nil).Collect(context.Background(), 5, "abc123", domain.Homepage)
	require.Error(t, err)
	assert.Nil(t, urls)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
}

func TestCollect_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pages := &fakePages{pages: [][]domain.CatalogItem{{item("/a")}}}
	_, err := newCollector(pages, nil).Collect(ctx, 5, "abc123", domain.Homepage)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pages.calls)
}
