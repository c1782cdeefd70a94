// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"
)

// MaxRedirects is the number of redirects a client follows before giving up.
const MaxRedirects = 5

// DefaultUserAgent mimics a current desktop Chrome on Windows.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// ErrTooManyRedirects is returned (wrapped in a *url.Error) when a response
// chain exceeds MaxRedirects.
var ErrTooManyRedirects = errors.New("stopped after too many redirects")

// NewClient returns a client with a per-request timeout, a cookie jar scoped
// by the public suffix list, and a redirect limit of MaxRedirects. A zero
// timeout leaves the deadline to the request context.
func NewClient(timeout time.Duration) *http.Client {
	client := &http.Client{
		Timeout:       timeout,
		CheckRedirect: limitRedirects,
	}
	// cookiejar.New never returns a non-nil error.
	client.Jar, _ = cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	return client
}

func limitRedirects(req *http.Request, via []*http.Request) error {
	if len(via) > MaxRedirects {
		return fmt.Errorf("%w (%d)", ErrTooManyRedirects, MaxRedirects)
	}
	return nil
}

// Header profiles for SetBrowserHeaders.
const (
	// PageProfile is used when fetching a target page for extraction.
	PageProfile = iota
	// SearchProfile is used when fetching a search engine results page.
	SearchProfile
)

// SetBrowserHeaders sets the headers a desktop browser sends for a top-level
// navigation. Accept-Encoding is left to the transport so gzip responses are
// decoded transparently. An empty userAgent selects DefaultUserAgent.
func SetBrowserHeaders(req *http.Request, userAgent string, profile int) {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	switch profile {
	case SearchProfile:
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.5")
		req.Header.Set("Connection", "keep-alive")
		req.Header.Set("Upgrade-Insecure-Requests", "1")
	default:
		req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
		req.Header.Set("Accept-Language", "en-US,en;q=0.9")
		req.Header.Set("Cache-Control", "no-cache")
		req.Header.Set("Pragma", "no-cache")
	}
}
