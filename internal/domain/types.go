// Package domain holds the types shared by the harvest pipeline.
package domain

import "sort"

// BuildID identifies the current deployment of the site. It addresses the internal data API.
type BuildID string

// CatalogItem is a raw listing entry. Advertisement slots have no URL.
type CatalogItem struct {
	ID    string  `json:"id,omitempty"`
	Type  string  `json:"type,omitempty"`
	Title string  `json:"title,omitempty"`
	URL   *string `json:"url,omitempty"`
}

// RelativeURL returns the item's path and whether it is usable.
func (i CatalogItem) RelativeURL() (string, bool) {
	if i.URL == nil || *i.URL == "" {
		return "", false
	}
	return *i.URL, true
}

// URLSet is the deduplicated set of absolute post URLs. Identity is exact string equality.
type URLSet map[string]struct{}

// NewURLSet creates an empty set.
func NewURLSet() URLSet {
	return make(URLSet)
}

// Add inserts u and reports whether it was new.
func (s URLSet) Add(u string) bool {
	if _, ok := s[u]; ok {
		return false
	}
	s[u] = struct{}{}
	return true
}

// Len returns the number of URLs.
func (s URLSet) Len() int {
	return len(s)
}

// Freeze returns the URLs as a sorted slice.
func (s URLSet) Freeze() []string {
	out := make([]string, 0, len(s))
	for u := range s {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// Document is the normalized article extracted from a post page.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// FetchResult is the outcome of one fetch task.
type FetchResult struct {
	URL      string
	Document *Document
	Path     string
	Err      error
}

// OK reports whether the artifact was written.
func (r FetchResult) OK() bool {
	return r.Err == nil
}
