// Package extractor turns a post page into a title and body document using goquery.
package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vuthanhdatt/baomoi/internal/domain"
)

// Selectors for the post page layout.
const (
	containerSelector   = "div.content-wrapper"
	titleSelector       = "h1"
	descriptionSelector = "h3"
	paragraphSelector   = "p.text"
	excludedParagraphs  = ".body-author, .media-caption"
)

// Extractor extracts article documents from post page HTML.
type Extractor struct{}

// New creates a new extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extract parses html and returns the post's title and content.
// Content is the description line followed by the body paragraphs, one per line.
// A page without the content container or a non-empty h1 is domain.ErrMalformedDocument.
func (e *Extractor) Extract(html io.Reader) (*domain.Document, error) {
	doc, err := goquery.NewDocumentFromReader(html)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	container := doc.Find(containerSelector).First()
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: content container missing", domain.ErrMalformedDocument)
	}

	title := strings.TrimSpace(container.Find(titleSelector).First().Text())
	// An empty heading fails the URL; it is never saved as untitled.txt.
	if title == "" {
		return nil, fmt.Errorf("%w: title missing", domain.ErrMalformedDocument)
	}

	description := strings.TrimSpace(container.Find(descriptionSelector).First().Text())

	return &domain.Document{
		Title:   title,
		Content: description + "\n" + bodyText(container),
	}, nil
}

// bodyText joins the text paragraphs, skipping author bylines and media captions.
func bodyText(container *goquery.Selection) string {
	paragraphs := container.Find(paragraphSelector).Not(excludedParagraphs)

	lines := make([]string, 0, paragraphs.Length())
	paragraphs.Each(func(_ int, p *goquery.Selection) {
		lines = append(lines, p.Text())
	})

	return strings.Join(lines, "\n")
}
