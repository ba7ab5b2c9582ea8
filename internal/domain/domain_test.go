package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vuthanhdatt/baomoi/internal/domain"
)

func TestParseCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    domain.Category
		wantErr bool
	}{
		{name: "empty is homepage", raw: "", want: domain.Homepage},
		{name: "slug", raw: "the-gioi", want: domain.World},
		{name: "key", raw: "technology", want: domain.Technology},
		{name: "case and space", raw: "  XA-HOI ", want: domain.Society},
		{name: "science is distinct from technology", raw: "khoa-hoc", want: domain.Science},
		{name: "unknown", raw: "sports-news", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := domain.ParseCategory(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrInvalidCategory))
				assert.Contains(t, err.Error(), "nha-dat")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_DirName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "homepage", domain.Homepage.DirName())
	assert.Equal(t, "the-gioi", domain.World.DirName())
	assert.NoError(t, domain.RealEstate.Validate())
	assert.Error(t, domain.Category("nope").Validate())
	assert.Len(t, domain.Categories(), 13)
}

func TestCatalogItem_RelativeURL(t *testing.T) {
	t.Parallel()

	empty := ""
	path := "/a/1.epi"

	_, ok := domain.CatalogItem{Type: "adBanner"}.RelativeURL()
	assert.False(t, ok)

	_, ok = domain.CatalogItem{URL: &empty}.RelativeURL()
	assert.False(t, ok)

	got, ok := domain.CatalogItem{URL: &path}.RelativeURL()
	assert.True(t, ok)
	assert.Equal(t, path, got)
}

func TestURLSet(t *testing.T) {
	t.Parallel()

	s := domain.NewURLSet()
	assert.True(t, s.Add("https://baomoi.com/b"))
	assert.True(t, s.Add("https://baomoi.com/a"))
	assert.False(t, s.Add("https://baomoi.com/a"))
	assert.True(t, s.Add("https://baomoi.com/a/"), "no normalization")

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{
		"https://baomoi.com/a",
		"https://baomoi.com/a/",
		"https://baomoi.com/b",
	}, s.Freeze())
}

func TestErrors(t *testing.T) {
	t.Parallel()

	up := &domain.UpstreamError{URL: "https://baomoi.com", StatusCode: 503}
	assert.True(t, errors.Is(up, domain.ErrUpstreamUnavailable))
	assert.Contains(t, up.Error(), "503")

	drift := &domain.DriftError{What: "buildId", URL: "https://baomoi.com"}
	assert.True(t, errors.Is(drift, domain.ErrProtocolDrift))
	assert.Contains(t, drift.Error(), "buildId")
}
