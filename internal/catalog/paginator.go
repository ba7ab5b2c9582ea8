// Package catalog discovers post URLs from the site's paginated listing data API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/vuthanhdatt/baomoi/internal/domain"
	"github.com/vuthanhdatt/baomoi/internal/logger"
	"github.com/vuthanhdatt/baomoi/internal/transport"
)

// pageEnvelope mirrors pageProps.resp.data.content.sections[].items[].
// Every level is optional upstream.
type pageEnvelope struct {
	PageProps *pageProps `json:"pageProps"`
}

type pageProps struct {
	Resp *pageResp `json:"resp"`
}

type pageResp struct {
	Data *pageData `json:"data"`
}

type pageData struct {
	Content *pageContent `json:"content"`
}

type pageContent struct {
	Sections []pageSection `json:"sections"`
}

type pageSection struct {
	Items []map[string]json.RawMessage `json:"items"`
}

// sections returns the section list and whether the envelope reached it.
func (e *pageEnvelope) sections() ([]pageSection, bool) {
	if e.PageProps == nil || e.PageProps.Resp == nil || e.PageProps.Resp.Data == nil ||
		e.PageProps.Resp.Data.Content == nil || e.PageProps.Resp.Data.Content.Sections == nil {
		return nil, false
	}
	return e.PageProps.Resp.Data.Content.Sections, true
}

// Paginator fetches listing pages from the internal data API.
type Paginator struct {
	client       transport.Doer
	baseURL      string
	maxBodyBytes int64
	log          logger.Logger
}

// NewPaginator creates a paginator for baseURL.
func NewPaginator(client transport.Doer, baseURL string, maxBodyBytes int64, log logger.Logger) *Paginator {
	if log == nil {
		log = logger.NewNop()
	}
	return &Paginator{
		client:       client,
		baseURL:      strings.TrimRight(baseURL, "/"),
		maxBodyBytes: maxBodyBytes,
		log:          log,
	}
}

// PageURL builds the data route for page. The homepage feed is used when category is zero.
func (p *Paginator) PageURL(page int, buildID domain.BuildID, category domain.Category) string {
	pageStr := strconv.Itoa(page)
	build := url.PathEscape(string(buildID))

	if category.IsHomepage() {
		return fmt.Sprintf("%s/_next/data/%s/home/%s.json?page=%s", p.baseURL, build, pageStr, pageStr)
	}

	slug := category.Slug()
	return fmt.Sprintf("%s/_next/data/%s/category/%s/%s.json?slug=%s&page=%s",
		p.baseURL, build, slug, pageStr, url.QueryEscape(slug), pageStr)
}

// FetchPage returns every item of every section of the page, in document order.
// A non-200 status is domain.ErrUpstreamUnavailable. Invalid JSON or a missing
// sections list is domain.ErrProtocolDrift. Sections without items are skipped.
func (p *Paginator) FetchPage(
	ctx context.Context,
	page int,
	buildID domain.BuildID,
	category domain.Category,
) ([]domain.CatalogItem, error) {
	pageURL := p.PageURL(page, buildID, category)

	body, err := transport.GetBody(ctx, p.client, pageURL, p.maxBodyBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch catalogue page %d: %w", page, err)
	}

	var env pageEnvelope
	if decodeErr := json.Unmarshal(body, &env); decodeErr != nil {
		p.log.Debug("Catalogue page is not valid JSON",
			logger.String("url", pageURL),
			logger.Error(decodeErr),
		)
		return nil, &domain.DriftError{What: "catalogue JSON", URL: pageURL}
	}

	sections, ok := env.sections()
	if !ok {
		return nil, &domain.DriftError{What: "pageProps.resp.data.content.sections", URL: pageURL}
	}

	var items []domain.CatalogItem
	for _, section := range sections {
		for _, raw := range section.Items {
			items = append(items, toCatalogItem(raw))
		}
	}

	return items, nil
}

// toCatalogItem reads the known fields of a raw item. Fields of an unexpected JSON type are ignored.
func toCatalogItem(raw map[string]json.RawMessage) domain.CatalogItem {
	var item domain.CatalogItem

	if u, ok := stringField(raw, "url"); ok {
		item.URL = &u
	}
	item.Type, _ = stringField(raw, "type")
	item.Title, _ = stringField(raw, "title")

	if id, ok := stringField(raw, "id"); ok {
		item.ID = id
	} else if v, present := raw["id"]; present {
		var n json.Number
		if json.Unmarshal(v, &n) == nil {
			item.ID = n.String()
		}
	}

	return item
}

func stringField(raw map[string]json.RawMessage, key string) (string, bool) {
	v, ok := raw[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}
