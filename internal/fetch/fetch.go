// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch performs the single HTTP GET behind every scrape and
// classifies its failures into a closed set of kinds. Fetch never returns an
// error value; failures travel inside the Result.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/pdiddy/email-scout/internal/httputil"
)

// maxBodyBytes bounds how much of a page is read.
const maxBodyBytes = 10 << 20

// Result is the outcome of one fetch. Exactly one of Body or Err is
// meaningful: Err is nil on success.
type Result struct {
	URL        string
	StatusCode int
	Body       string
	Err        *Error
}

// OK reports whether the fetch succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Fetcher retrieves one page. The scrape pipeline depends on this interface
// so tests can substitute canned responses.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string, timeout time.Duration) Result
}

// HTTPFetcher is the network-backed Fetcher.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string
	Log       logrus.FieldLogger
}

// NewHTTPFetcher returns a fetcher using httputil.NewClient. Timeouts are
// applied per call through the request context.
func NewHTTPFetcher(userAgent string, log logrus.FieldLogger) *HTTPFetcher {
	return &HTTPFetcher{
		Client:    httputil.NewClient(0),
		UserAgent: userAgent,
		Log:       log,
	}
}

// Fetch issues a GET for rawURL with browser headers and the given timeout.
// rawURL must be an absolute http or https URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string, timeout time.Duration) Result {
	res := Result{URL: rawURL}

	if err := ValidateURL(rawURL); err != nil {
		res.Err = err
		return res
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		res.Err = &Error{Kind: KindInvalidURL, Detail: err.Error(), cause: err}
		return res
	}
	httputil.SetBrowserHeaders(req, f.UserAgent, httputil.PageProfile)

	resp, err := f.Client.Do(req)
	if err != nil {
		res.Err = Classify(err)
		f.logFailure(rawURL, res.Err)
		return res
	}
	defer resp.Body.Close()
	res.StatusCode = resp.StatusCode

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		res.Err = classifyStatus(resp.StatusCode)
		f.logFailure(rawURL, res.Err)
		return res
	}

	body, err := readBody(resp)
	if err != nil {
		res.Err = Classify(err)
		f.logFailure(rawURL, res.Err)
		return res
	}
	res.Body = body
	return res
}

// readBody reads up to maxBodyBytes, converting to UTF-8 according to the
// Content-Type header and any <meta charset> in the first bytes.
func readBody(resp *http.Response) (string, error) {
	limited := io.LimitReader(resp.Body, maxBodyBytes)
	r, err := charset.NewReader(limited, resp.Header.Get("Content-Type"))
	if err != nil {
		// Unknown encodings fall back to the raw bytes.
		r = limited
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(data), nil
}

func (f *HTTPFetcher) logFailure(rawURL string, err *Error) {
	if f.Log == nil {
		return
	}
	f.Log.WithFields(logrus.Fields{
		"url":  rawURL,
		"kind": err.Kind.String(),
	}).Infof("fetch failed: %s", err.Detail)
}

// ValidateURL reports a KindInvalidURL error unless rawURL parses as an
// absolute http or https URL with a host.
func ValidateURL(rawURL string) *Error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &Error{Kind: KindInvalidURL, Detail: err.Error(), cause: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &Error{Kind: KindInvalidURL, Detail: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
	if u.Host == "" {
		return &Error{Kind: KindInvalidURL, Detail: "missing host"}
	}
	return nil
}

// Classify maps a transport error to its Kind.
func Classify(err error) *Error {
	e := &Error{Kind: KindOther, Detail: err.Error(), cause: err}

	var dnsErr *net.DNSError
	var netErr net.Error
	switch {
	case errors.As(err, &dnsErr) && !dnsErr.IsTimeout:
		e.Kind = KindHostNotFound
	case errors.Is(err, syscall.ECONNREFUSED):
		e.Kind = KindConnectionRefused
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, os.ErrDeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		e.Kind = KindTimeout
	}
	return e
}

func classifyStatus(code int) *Error {
	detail := fmt.Sprintf("HTTP %d", code)
	switch code {
	case http.StatusForbidden:
		return &Error{Kind: KindForbidden, Detail: detail}
	case http.StatusNotFound:
		return &Error{Kind: KindNotFound, Detail: detail}
	default:
		return &Error{Kind: KindOther, Detail: detail}
	}
}
