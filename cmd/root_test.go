package cmd_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuthanhdatt/baomoi/cmd"
	"github.com/vuthanhdatt/baomoi/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := cmd.NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

// isolateEnv keeps local .env files and config paths out of the test.
func isolateEnv(t *testing.T) {
	t.Helper()

	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("LOG_LEVEL", "error")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "baomoi version dev\n", out)
}

func TestCategories(t *testing.T) {
	out, err := execute(t, "categories")
	require.NoError(t, err)

	for _, entry := range domain.Categories() {
		assert.Contains(t, out, entry.Category.Slug())
	}
	assert.Contains(t, out, "homepage")
}

func TestHarvest_InvalidCategoryMakesNoRequest(t *testing.T) {
	isolateEnv(t)

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()
	t.Setenv("HARVEST_BASE_URL", srv.URL)

	_, err := execute(t, "harvest", "-c", "sports-news", "--output", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCategory))
	assert.Contains(t, err.Error(), "the-gioi")
	assert.Zero(t, hits.Load())
}

func TestHarvest_DownloadsPosts(t *testing.T) {
	isolateEnv(t)

	mux := http.NewServeMux()
	mux.HandleFunc("/{$}", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<script>{"buildId":"abc123"}</script>`))
	})
	mux.HandleFunc("/_next/data/abc123/category/xa-hoi/1.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"pageProps":{"resp":{"data":{"content":{"sections":[{"items":[
			{"url":"/a/1.epi"},{"type":"adBanner"},{"url":"/a/2.epi"},{"url":"/a/3.epi"}]}]}}}}}`))
	})
	mux.HandleFunc("/a/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(r.PathValue("id"), ".epi")
		_, _ = w.Write([]byte(`<div class="content-wrapper"><h1>Tin ` + id + `</h1><h3>d</h3><p class="text">b</p></div>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()
	t.Setenv("HARVEST_BASE_URL", srv.URL)

	root := t.TempDir()
	out, err := execute(t, "harvest", "-p", "2", "-c", "xa-hoi", "--output", root)
	require.NoError(t, err)

	dir := filepath.Join(root, "xa-hoi")
	assert.Contains(t, out, "Downloaded 2 posts to "+dir)
	assert.Contains(t, out, "abc123")
	assert.FileExists(t, filepath.Join(dir, "tin_1.txt"))
	assert.FileExists(t, filepath.Join(dir, "tin_2.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "tin_3.txt"))
}

func TestHarvest_RootFailureExitsWithError(t *testing.T) {
	isolateEnv(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	t.Setenv("HARVEST_BASE_URL", srv.URL)

	out, err := execute(t, "harvest", "-p", "1", "--output", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUpstreamUnavailable))
	assert.NotContains(t, out, "Downloaded")
}
