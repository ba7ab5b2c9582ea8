package transport

import "net/http"

// UserAgent is the browser identity presented to the upstream site.
const UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/140.0.0.0 Safari/537.36 Edg/140.0.0.0"

// DefaultHeaders returns the fixed header bundle sent with every request.
// The x-nextjs-data header is required for the site's data routes to answer with JSON.
func DefaultHeaders(referer string) http.Header {
	h := http.Header{}
	h.Set("Accept", "*/*")
	h.Set("Accept-Language", "en-US,en;q=0.9,vi;q=0.8")
	h.Set("Dnt", "1")
	h.Set("Priority", "u=1, i")
	if referer != "" {
		h.Set("Referer", referer)
	}
	h.Set("Sec-Ch-Ua", `"Chromium";v="140", "Not=A?Brand";v="24", "Microsoft Edge";v="140"`)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"macOS"`)
	h.Set("Sec-Fetch-Dest", "empty")
	h.Set("Sec-Fetch-Mode", "cors")
	h.Set("Sec-Fetch-Site", "same-origin")
	h.Set("User-Agent", UserAgent)
	h.Set("X-Nextjs-Data", "1")
	return h
}

// HeaderTransport is an http.RoundTripper that adds a fixed header set to each request.
type HeaderTransport struct {
	base    http.RoundTripper
	headers http.Header
}

// NewHeaderTransport wraps base. A nil base uses http.DefaultTransport.
func NewHeaderTransport(base http.RoundTripper, headers http.Header) *HeaderTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &HeaderTransport{base: base, headers: headers.Clone()}
}

// RoundTrip implements http.RoundTripper. Headers already present on the request are kept.
func (t *HeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	for key, values := range t.headers {
		if out.Header.Get(key) != "" {
			continue
		}
		for _, v := range values {
			out.Header.Add(key, v)
		}
	}
	return t.base.RoundTrip(out)
}
