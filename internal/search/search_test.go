// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pdiddy/email-scout/pkg/types"
)

// fakeProvider returns canned hits and records the quota it was asked for.
type fakeProvider struct {
	name   string
	hits   []types.SearchHit
	err    error
	panics bool
	calls  []Query
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) FetchAndParse(_ context.Context, q Query) ([]types.SearchHit, error) {
	f.calls = append(f.calls, q)
	if f.panics {
		panic("provider exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	hits := f.hits
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}
	return hits, nil
}

func makeHits(prefix string, n int) []types.SearchHit {
	hits := make([]types.SearchHit, n)
	for i := range hits {
		host := fmt.Sprintf("%s%d.example", prefix, i)
		hits[i] = types.SearchHit{Title: host, URL: "https://" + host + "/", Domain: host}
	}
	return hits
}

func TestSearchEmptyKeyword(t *testing.T) {
	c := NewChain(&fakeProvider{name: "a"}, &fakeProvider{name: "b"}, &fakeProvider{name: "c"}, nil)
	for _, kw := range []string{"", "   "} {
		_, err := c.Search(context.Background(), kw, "", 10)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Search(%q) error = %v, want ValidationError", kw, err)
		}
	}
}

func TestSearchDedupAcrossProviders(t *testing.T) {
	shared := types.SearchHit{Title: "Shared", URL: "https://shared.example/", Domain: "shared.example"}
	a := &fakeProvider{name: "a", hits: []types.SearchHit{shared}}
	b := &fakeProvider{name: "b", hits: []types.SearchHit{
		{Title: "Shared again", URL: "https://shared.example/", Domain: "shared.example"},
		{Title: "Other", URL: "https://other.example/", Domain: "other.example"},
	}}
	c := NewChain(a, b, &fakeProvider{name: "c"}, nil)

	rep, err := c.Search(context.Background(), "plumbing", "", 100)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	n := 0
	for _, h := range rep.Hits {
		if h.URL == shared.URL {
			n++
			if h.Title != "Shared" {
				t.Errorf("first-seen hit should win, got title %q", h.Title)
			}
		}
	}
	if n != 1 {
		t.Errorf("shared URL appears %d times, want 1", n)
	}
	if rep.Count != len(rep.Hits) {
		t.Errorf("Count = %d, len(Hits) = %d", rep.Count, len(rep.Hits))
	}
}

func TestSearchLimit(t *testing.T) {
	a := &fakeProvider{name: "a", hits: makeHits("a", 25)}
	b := &fakeProvider{name: "b", hits: makeHits("b", 25)}
	c := NewChain(a, b, &fakeProvider{name: "c", hits: makeHits("c", 25)}, nil)

	rep, err := c.Search(context.Background(), "bakery", "", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rep.Hits) != 5 || rep.Count != 5 {
		t.Fatalf("got %d hits (count %d), want 5", len(rep.Hits), rep.Count)
	}
}

func TestSearchStageThresholds(t *testing.T) {
	tests := []struct {
		name              string
		primary           int
		wantB, wantC      bool
		wantBQ, wantCQ    int
		wantSynthetic     bool
	}{
		// limit 100: B below 40, C below 20, synthetic below 10.
		{"primary plenty", 60, false, false, 0, 0, false},
		{"primary at B threshold", 40, false, false, 0, 0, false},
		{"primary short", 39, true, false, 30, 0, false},
		{"primary empty", 0, true, true, 30, 20, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &fakeProvider{name: "a", hits: makeHits("a", tt.primary)}
			b := &fakeProvider{name: "b"}
			c := &fakeProvider{name: "c"}
			chain := NewChain(a, b, c, nil)

			rep, err := chain.Search(context.Background(), "dental clinic", "UK", 100)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(a.calls) != 1 || a.calls[0].Limit != 60 {
				t.Errorf("primary calls = %+v, want one with quota 60", a.calls)
			}
			if got := len(b.calls) == 1; got != tt.wantB {
				t.Errorf("secondary ran = %v, want %v", got, tt.wantB)
			} else if got && b.calls[0].Limit != tt.wantBQ {
				t.Errorf("secondary quota = %d, want %d", b.calls[0].Limit, tt.wantBQ)
			}
			if got := len(c.calls) == 1; got != tt.wantC {
				t.Errorf("tertiary ran = %v, want %v", got, tt.wantC)
			} else if got && c.calls[0].Limit != tt.wantCQ {
				t.Errorf("tertiary quota = %d, want %d", c.calls[0].Limit, tt.wantCQ)
			}
			synthetic := false
			for _, h := range rep.Hits {
				if strings.HasSuffix(h.Domain, ".co.uk") {
					synthetic = true
				}
			}
			if synthetic != tt.wantSynthetic {
				t.Errorf("synthetic hits present = %v, want %v", synthetic, tt.wantSynthetic)
			}
		})
	}
}

func TestSearchSkipsZeroQuota(t *testing.T) {
	a := &fakeProvider{name: "a"}
	b := &fakeProvider{name: "b"}
	c := &fakeProvider{name: "c"}
	// limit 1: 0.6 and 0.3 and 0.2 all floor to zero.
	rep, err := NewChain(a, b, c, nil).Search(context.Background(), "roofing", "", 1)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(a.calls)+len(b.calls)+len(c.calls) != 0 {
		t.Errorf("providers with zero quota were called: %d %d %d", len(a.calls), len(b.calls), len(c.calls))
	}
	if len(rep.Hits) != 1 {
		t.Errorf("got %d hits, want 1 synthetic", len(rep.Hits))
	}
}

func TestSearchProviderErrorsAreSkipped(t *testing.T) {
	a := &fakeProvider{name: "a", err: errors.New("blocked")}
	b := &fakeProvider{name: "b", hits: makeHits("b", 30)}
	c := &fakeProvider{name: "c"}

	rep, err := NewChain(a, b, c, nil).Search(context.Background(), "florist", "", 100)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rep.Hits) != 30 {
		t.Errorf("got %d hits, want 30 from secondary", len(rep.Hits))
	}
	if len(c.calls) != 0 {
		t.Error("tertiary should not run with 30 hits of 100")
	}
}

func TestSearchAllProvidersEmptyFallsBack(t *testing.T) {
	tests := []struct {
		region string
		suffix string
	}{
		{"DE", ".de"},
		{"JP", ".co.jp"},
		{"", ".com"},
		{"GLOBAL", ".com"},
	}
	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			a := &fakeProvider{name: "a", err: errors.New("down")}
			b := &fakeProvider{name: "b"}
			c := &fakeProvider{name: "c", err: errors.New("down")}
			rep, err := NewChain(a, b, c, nil).Search(context.Background(), "solar panels", tt.region, 100)
			if err != nil {
				t.Fatalf("Search: %v", err)
			}
			if len(rep.Hits) == 0 {
				t.Fatal("want synthetic hits, got none")
			}
			for _, h := range rep.Hits {
				if !strings.HasSuffix(h.Domain, tt.suffix) {
					t.Errorf("domain %q does not end in %q", h.Domain, tt.suffix)
				}
			}
		})
	}
}

func TestSearchShortKeywordStillReturnsHits(t *testing.T) {
	c := NewChain(&fakeProvider{name: "a"}, &fakeProvider{name: "b"}, &fakeProvider{name: "c"}, nil)
	for _, kw := range []string{"ai", "咖啡"} {
		rep, err := c.Search(context.Background(), kw, "CN", 100)
		if err != nil {
			t.Fatalf("Search(%q): %v", kw, err)
		}
		if len(rep.Hits) == 0 {
			t.Errorf("Search(%q) returned no hits", kw)
		}
		for _, h := range rep.Hits {
			if !strings.HasSuffix(h.Domain, ".com.cn") {
				t.Errorf("domain %q does not end in .com.cn", h.Domain)
			}
		}
	}
}

func TestSearchPanicUsesFallback(t *testing.T) {
	a := &fakeProvider{name: "a", panics: true}
	rep, err := NewChain(a, &fakeProvider{name: "b"}, &fakeProvider{name: "c"}, nil).
		Search(context.Background(), "law firm", "AU", 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(rep.Hits) != 4 {
		t.Fatalf("got %d hits, want 4", len(rep.Hits))
	}
	if rep.Hits[0].Domain != "lawfirm.com.au" {
		t.Errorf("first fallback domain = %q, want lawfirm.com.au", rep.Hits[0].Domain)
	}
	if rep.Keyword != "law firm" || rep.Region != "AU" || rep.Count != 4 {
		t.Errorf("report header = %+v", rep)
	}
}

func TestSearchDefaultLimit(t *testing.T) {
	a := &fakeProvider{name: "a", hits: makeHits("a", 200)}
	rep, err := NewChain(a, &fakeProvider{name: "b"}, &fakeProvider{name: "c"}, nil).
		Search(context.Background(), "gyms", "", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if a.calls[0].Limit != 60 {
		t.Errorf("primary quota = %d, want 60 of the default 100", a.calls[0].Limit)
	}
	if len(rep.Hits) != 60 {
		t.Errorf("got %d hits, want 60", len(rep.Hits))
	}
}

func TestFormatTable(t *testing.T) {
	var b strings.Builder
	FormatTable(types.SearchReport{}, &b)
	if !strings.Contains(b.String(), "No websites found") {
		t.Errorf("empty report output = %q", b.String())
	}

	b.Reset()
	rep := types.SearchReport{Keyword: "cafe", Region: "FR", Hits: makeHits("cafe", 2), Count: 2}
	FormatTable(rep, &b)
	out := b.String()
	for _, want := range []string{"cafe0.example", "https://cafe1.example/", `2 websites for "cafe" in FR`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
