// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search finds candidate websites for a keyword by walking an
// ordered chain of providers. Each stage runs only while the hits gathered
// so far fall short of its threshold; hits are deduplicated by URL and the
// list is capped at the requested limit. When nothing real turns up the
// chain fills in deterministic synthetic hits so a non-empty keyword never
// yields an empty report.
package search

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/email-scout/internal/logging"
	"github.com/pdiddy/email-scout/pkg/types"
)

// DefaultLimit is used when the caller passes a non-positive limit.
const DefaultLimit = 100

// Provider turns a query into hits. Each web search engine and the
// synthetic generator implement it; the chain never branches on which one
// it holds.
type Provider interface {
	Name() string
	FetchAndParse(ctx context.Context, q Query) ([]types.SearchHit, error)
}

// Query is what a single provider is asked for. Limit is the provider's
// quota, not the overall limit.
type Query struct {
	Keyword string
	Region  string
	Limit   int
}

// ValidationError reports a rejected search request.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Stage is one step of the chain.
type Stage struct {
	Provider Provider

	// Share of the overall limit requested from the provider, floored. Zero
	// requests the full limit. A positive share that floors to zero skips
	// the stage.
	Share float64

	// RunBelow runs the stage only while hits < limit*RunBelow. Zero means
	// no fractional condition.
	RunBelow float64

	// RunBelowCount runs the stage only while hits < RunBelowCount. Zero
	// means no count condition.
	RunBelowCount int
}

func (s Stage) quota(limit int) int {
	if s.Share <= 0 {
		return limit
	}
	return int(math.Floor(float64(limit) * s.Share))
}

func (s Stage) wanted(have, limit int) bool {
	if s.RunBelow > 0 && float64(have) >= float64(limit)*s.RunBelow {
		return false
	}
	if s.RunBelowCount > 0 && have >= s.RunBelowCount {
		return false
	}
	return true
}

// Chain runs stages in order, one at a time.
type Chain struct {
	Stages []Stage
	Log    logrus.FieldLogger
}

// NewChain returns the standard chain: a primary, secondary and tertiary
// web provider followed by the synthetic generator.
func NewChain(primary, secondary, tertiary Provider, log logrus.FieldLogger) *Chain {
	return &Chain{
		Stages: []Stage{
			{Provider: primary, Share: 0.6},
			{Provider: secondary, Share: 0.3, RunBelow: 0.4},
			{Provider: tertiary, Share: 0.2, RunBelow: 0.2},
			{Provider: Synthetic{}, RunBelowCount: 10},
		},
		Log: log,
	}
}

// Search runs the chain for keyword. Only an empty keyword is an error;
// provider failures are logged and skipped, and an unexpected panic in the
// chain is answered with fallback hits.
func (c *Chain) Search(ctx context.Context, keyword, region string, limit int) (report types.SearchReport, err error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return types.SearchReport{}, &ValidationError{Msg: "a search keyword is required"}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	log := c.logger().WithField("keyword", keyword)

	defer func() {
		if r := recover(); r != nil {
			log.Errorf("search chain failed, using fallback results: %v", r)
			hits := Fallback(keyword, region, limit)
			report = types.SearchReport{Keyword: keyword, Region: region, Hits: hits, Count: len(hits)}
			err = nil
		}
	}()

	hits := c.run(ctx, log, keyword, region, limit)
	if len(hits) == 0 {
		log.Info("no hits from any provider, using fallback results")
		hits = Fallback(keyword, region, limit)
	}
	return types.SearchReport{Keyword: keyword, Region: region, Hits: hits, Count: len(hits)}, nil
}

func (c *Chain) run(ctx context.Context, log logrus.FieldLogger, keyword, region string, limit int) []types.SearchHit {
	m := newMerger(limit)
	for _, st := range c.Stages {
		if !st.wanted(m.len(), limit) {
			continue
		}
		quota := st.quota(limit)
		if quota <= 0 {
			continue
		}
		name := st.Provider.Name()
		got, err := st.Provider.FetchAndParse(ctx, Query{Keyword: keyword, Region: region, Limit: quota})
		if err != nil {
			log.WithField("provider", name).Warnf("search provider failed: %v", err)
			continue
		}
		added := m.add(got)
		log.WithField("provider", name).Debugf("provider returned %d hits, %d new", len(got), added)
	}
	return m.hits
}

func (c *Chain) logger() logrus.FieldLogger {
	if c.Log == nil {
		return logging.Discard()
	}
	return c.Log
}

// merger accumulates hits unique by URL up to a cap.
type merger struct {
	limit int
	seen  map[string]struct{}
	hits  []types.SearchHit
}

func newMerger(limit int) *merger {
	return &merger{limit: limit, seen: make(map[string]struct{}), hits: []types.SearchHit{}}
}

func (m *merger) len() int { return len(m.hits) }

func (m *merger) add(hits []types.SearchHit) int {
	added := 0
	for _, h := range hits {
		if len(m.hits) >= m.limit {
			break
		}
		if _, ok := m.seen[h.URL]; ok {
			continue
		}
		m.seen[h.URL] = struct{}{}
		m.hits = append(m.hits, h)
		added++
	}
	return added
}

// FormatTable writes hits as a human-readable table to w.
func FormatTable(r types.SearchReport, w io.Writer) {
	if len(r.Hits) == 0 {
		fmt.Fprintln(w, "No websites found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-30s  %-40s  %s\n", "#", "Domain", "Title", "URL")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for i, h := range r.Hits {
		fmt.Fprintf(w, "%-4d  %-30s  %-40s  %s\n", i+1, truncate(h.Domain, 30), truncate(h.Title, 40), h.URL)
	}

	fmt.Fprintf(w, "\n%d websites for %q", r.Count, r.Keyword)
	if r.Region != "" {
		fmt.Fprintf(w, " in %s", r.Region)
	}
	fmt.Fprintln(w)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
