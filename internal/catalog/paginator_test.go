package catalog_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuthanhdatt/baomoi/internal/catalog"
	"github.com/vuthanhdatt/baomoi/internal/domain"
	"github.com/vuthanhdatt/baomoi/internal/transport"
)

const pageJSON = `{"pageProps":{"resp":{"data":{"content":{"sections":[
  {"items":[{"id":1,"type":"article","title":"One","url":"/a/1.epi"},
            {"zoneId":"BaoMoi_MastheadInline_2","id":"BaoMoi_MastheadInline_2","type":"adBanner"}]},
  {"title":"no items here"},
  {"items":[{"id":"3","url":"/a/3.epi"}]}
]}}}}}`

func newPageServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()

	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.RequestURI()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &requested
}

func TestPaginator_PageURL(t *testing.T) {
	t.Parallel()

	p := catalog.NewPaginator(nil, "https://baomoi.com/", 0, nil)

	assert.Equal(t,
		"https://baomoi.com/_next/data/abc123/category/the-gioi/2.json?slug=the-gioi&page=2",
		p.PageURL(2, "abc123", domain.World))
	assert.Equal(t,
		"https://baomoi.com/_next/data/abc123/home/1.json?page=1",
		p.PageURL(1, "abc123", domain.Homepage))
}

func TestPaginator_FetchPage(t *testing.T) {
	t.Parallel()

	srv, requested := newPageServer(t, http.StatusOK, pageJSON)
	p := catalog.NewPaginator(transport.NewClient(nil), srv.URL, 0, nil)

	items, err := p.FetchPage(context.Background(), 1, "abc123", domain.World)
	require.NoError(t, err)

	assert.Equal(t, "/_next/data/abc123/category/the-gioi/1.json?slug=the-gioi&page=1", *requested)
	require.Len(t, items, 3)

	first, ok := items[0].RelativeURL()
	assert.True(t, ok)
	assert.Equal(t, "/a/1.epi", first)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "One", items[0].Title)

	_, ok = items[1].RelativeURL()
	assert.False(t, ok, "ad slot has no url")
	assert.Equal(t, "adBanner", items[1].Type)

	third, ok := items[2].RelativeURL()
	assert.True(t, ok)
	assert.Equal(t, "/a/3.epi", third)
}

func TestPaginator_FetchPage_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: "", wantErr: domain.ErrUpstreamUnavailable},
		{name: "not found", status: http.StatusNotFound, body: "", wantErr: domain.ErrUpstreamUnavailable},
		{name: "invalid json", status: http.StatusOK, body: "<html>", wantErr: domain.ErrProtocolDrift},
		{name: "missing pageProps", status: http.StatusOK, body: `{"notFound":true}`, wantErr: domain.ErrProtocolDrift},
		{name: "missing sections", status: http.StatusOK, body: `{"pageProps":{"resp":{"data":{"content":{}}}}}`, wantErr: domain.ErrProtocolDrift},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv, _ := newPageServer(t, tt.status, tt.body)
			p := catalog.NewPaginator(transport.NewClient(nil), srv.URL, 0, nil)

			items, err := p.FetchPage(context.Background(), 1, "abc123", domain.Homepage)
			require.Error(t, err)
			assert.Nil(t, items)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestPaginator_FetchPage_EmptySections(t *testing.T) {
	t.Parallel()

	srv, _ := newPageServer(t, http.StatusOK, `{"pageProps":{"resp":{"data":{"content":{"sections":[]}}}}}`)
	p := catalog.NewPaginator(transport.NewClient(nil), srv.URL, 0, nil)

	items, err := p.FetchPage(context.Background(), 9, "abc123", domain.Homepage)
	require.NoError(t, err)
	assert.Empty(t, items)
}
