// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html/charset"

	"github.com/pdiddy/email-scout/internal/httputil"
	"github.com/pdiddy/email-scout/internal/region"
	"github.com/pdiddy/email-scout/pkg/types"
)

// Results page endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	googleBase     = "https://www.google.com/search"
	bingBase       = "https://www.bing.com/search"
	duckDuckGoBase = "https://html.duckduckgo.com/html/"
)

// maxPerPage is the most results requested from one engine page.
const maxPerPage = 50

// Default per-request timeouts. DuckDuckGo's lighter HTML endpoint gets less.
const (
	DefaultTimeout           = 15 * time.Second
	DefaultDuckDuckGoTimeout = 10 * time.Second
)

// Transport carries what every web provider shares.
type Transport struct {
	Client     *http.Client
	UserAgent  string
	MaxRetries int
	Log        logrus.FieldLogger

	// Timeout bounds each results page request. Zero selects the provider default.
	Timeout time.Duration
}

// HTMLProvider fetches a search engine's HTML results page and reads hits
// out of it with Selectors.
type HTMLProvider struct {
	Transport
	Selectors Selectors

	name     string
	buildURL func(q Query) string
	clean    func(href string) string
	excluded func(u string) bool

	// fillSnippet substitutes a generic snippet when a hit has none.
	fillSnippet bool
}

// NewGoogle returns the Google provider. The region, when set, restricts
// results with cr=country{REGION}.
func NewGoogle(t Transport, sel Selectors) *HTMLProvider {
	return &HTMLProvider{
		Transport:   withTimeout(t, DefaultTimeout),
		Selectors:   sel,
		name:        "google",
		buildURL:    googleURL,
		clean:       cleanGoogleURL,
		excluded:    googleExcluded,
		fillSnippet: true,
	}
}

// NewBing returns the Bing provider. The region, when set, is passed as a
// lowercase cc= country code.
func NewBing(t Transport, sel Selectors) *HTMLProvider {
	return &HTMLProvider{
		Transport:   withTimeout(t, DefaultTimeout),
		Selectors:   sel,
		name:        "bing",
		buildURL:    bingURL,
		clean:       cleanBingURL,
		excluded:    bingExcluded,
		fillSnippet: true,
	}
}

// NewDuckDuckGo returns the DuckDuckGo HTML provider. The region, when set,
// becomes a site: filter on the region's market qualifier.
func NewDuckDuckGo(t Transport, sel Selectors) *HTMLProvider {
	return &HTMLProvider{
		Transport: withTimeout(t, DefaultDuckDuckGoTimeout),
		Selectors: sel,
		name:      "duckduckgo",
		buildURL:  duckDuckGoURL,
		clean:     cleanDuckDuckGoURL,
		excluded:  duckDuckGoExcluded,
	}
}

// NewWebChain builds the standard chain from one Transport and a selector set.
func NewWebChain(t Transport, set SelectorSet) *Chain {
	return NewChain(NewGoogle(t, set.Google), NewBing(t, set.Bing), NewDuckDuckGo(t, set.DuckDuckGo), t.Log)
}

func withTimeout(t Transport, def time.Duration) Transport {
	if t.Timeout <= 0 {
		t.Timeout = def
	}
	return t
}

func googleURL(q Query) string {
	v := url.Values{"q": {q.Keyword}, "num": {strconv.Itoa(min(q.Limit, maxPerPage))}}
	if !region.IsGlobal(q.Region) {
		v.Set("cr", "country"+strings.ToUpper(strings.TrimSpace(q.Region)))
	}
	return googleBase + "?" + v.Encode()
}

func bingURL(q Query) string {
	v := url.Values{"q": {q.Keyword}, "count": {strconv.Itoa(min(q.Limit, maxPerPage))}}
	if !region.IsGlobal(q.Region) {
		v.Set("cc", strings.ToLower(strings.TrimSpace(q.Region)))
	}
	return bingBase + "?" + v.Encode()
}

func duckDuckGoURL(q Query) string {
	query := q.Keyword
	if !region.IsGlobal(q.Region) {
		query += " site:" + region.MarketQualifierFor(q.Region)
	}
	return duckDuckGoBase + "?" + url.Values{"q": {query}}.Encode()
}

// Name returns the provider identifier.
func (p *HTMLProvider) Name() string { return p.name }

// FetchAndParse requests the results page for q and parses up to q.Limit hits.
func (p *HTMLProvider) FetchAndParse(ctx context.Context, q Query) ([]types.SearchHit, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.buildURL(q), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httputil.SetBrowserHeaders(req, p.UserAgent, httputil.SearchProfile)

	client := p.Client
	if client == nil {
		client = httputil.NewClient(0)
	}
	resp, err := httputil.DoWithRetry(ctx, client, req, p.MaxRetries, p.Log)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", p.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", p.name, resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding %s response: %w", p.name, err)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", p.name, err)
	}
	return p.parse(doc, q), nil
}

// parse reads hits from a results page. Cards without a title or a usable
// link are skipped, as are links back to the engine itself.
func (p *HTMLProvider) parse(doc *goquery.Document, q Query) []types.SearchHit {
	hits := []types.SearchHit{}
	sel := p.Selectors

	doc.Find(sel.Result).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		if q.Limit > 0 && len(hits) >= q.Limit {
			return false
		}

		titleEl := card.Find(sel.Title).First()
		title := strings.TrimSpace(titleEl.Text())
		linkEl := titleEl
		if sel.Link != "" {
			linkEl = card.Find(sel.Link).First()
		}
		href, _ := linkEl.Attr("href")
		if title == "" || strings.TrimSpace(href) == "" {
			return true
		}

		u := p.clean(strings.TrimSpace(href))
		domain, ok := hostOf(u)
		if !ok || p.excluded(u) {
			return true
		}

		snippet := ""
		if sel.Snippet != "" {
			snippet = strings.TrimSpace(card.Find(sel.Snippet).Text())
		}
		if snippet == "" && p.fillSnippet {
			snippet = "Search result for " + q.Keyword
		}

		hits = append(hits, types.SearchHit{Title: title, URL: u, Snippet: snippet, Domain: domain})
		return true
	})
	return hits
}
