// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/pdiddy/email-scout/internal/pacing"
	"github.com/pdiddy/email-scout/pkg/types"
)

// MaxBatchURLs is the largest batch accepted.
const MaxBatchURLs = 50

// cancelledMessage is reported for targets never dispatched because the
// caller cancelled the batch.
const cancelledMessage = "scrape cancelled before this URL was fetched"

// BatchOptions tunes one ScrapeBatch call.
type BatchOptions struct {
	// OnProgress, when set, is called after each target completes with the
	// number completed so far, the total, and the target URL. Calls are
	// serialized.
	OnProgress func(done, total int, url string)
}

// NormalizeURL trims raw and prefixes https:// unless it already starts with
// http:// or https://. It reports false for blank input.
func NormalizeURL(raw string) (string, bool) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", false
	}
	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		u = "https://" + u
	}
	return u, true
}

// NormalizeBatch applies NormalizeURL to each entry, dropping blanks and
// keeping the order of the rest.
func NormalizeBatch(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		if u, ok := NormalizeURL(r); ok {
			out = append(out, u)
		}
	}
	return out
}

// ValidateBatch rejects an empty batch or one larger than MaxBatchURLs. The
// count includes blank entries, as submitted.
func ValidateBatch(urls []string) error {
	if len(urls) == 0 {
		return &ValidationError{Msg: "provide at least one URL"}
	}
	if len(urls) > MaxBatchURLs {
		return &ValidationError{Msg: fmt.Sprintf("at most %d URLs may be scraped at once, got %d", MaxBatchURLs, len(urls))}
	}
	return nil
}

// ScrapeBatch scrapes every non-blank entry of urls and aggregates the results.
//
// Dispatches are spaced by the configured delay through a Pacer owned by this
// call, counted both from the previous dispatch and from the previous fetch's
// completion. The first target is not delayed and nothing waits after the last.
// With Concurrency 1 targets run strictly one after another. Results are in
// input order either way. If ctx is cancelled, targets not yet dispatched are
// reported as failed.
func (s *Scraper) ScrapeBatch(ctx context.Context, urls []string, opts BatchOptions) (types.BatchReport, error) {
	if err := ValidateBatch(urls); err != nil {
		return types.BatchReport{}, err
	}

	targets := NormalizeBatch(urls)
	pacer := pacing.New(s.cfg.Delay)
	results := make([]types.SingleResult, len(targets))

	var mu sync.Mutex
	done := 0
	report := func(i int) {
		if opts.OnProgress == nil {
			return
		}
		mu.Lock()
		done++
		opts.OnProgress(done, len(targets), targets[i])
		mu.Unlock()
	}

	s.log.WithField("targets", len(targets)).Info("batch scrape started")
	start := s.now()

	run := func(i int) {
		if err := pacer.WaitTurn(ctx); err != nil {
			results[i] = s.failed(targets[i], cancelledMessage)
		} else {
			results[i] = s.scrapeWith(ctx, targets[i], s.cfg.BatchTimeout)
			pacer.Done()
		}
		report(i)
	}

	workers := s.cfg.Concurrency
	if workers > len(targets) {
		workers = len(targets)
	}
	if workers <= 1 {
		for i := range targets {
			run(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					run(i)
				}
			}()
		}
		for i := range targets {
			jobs <- i
		}
		close(jobs)
		wg.Wait()
	}

	out := Aggregate(results)
	out.DurationMs = s.now().Sub(start).Milliseconds()
	out.Timestamp = types.Timestamp(s.now())

	s.log.WithField("success", out.SuccessCount).
		WithField("failure", out.FailureCount).
		WithField("emails", out.UniqueEmailCount).
		Infof("batch scrape finished in %dms", out.DurationMs)
	return out, nil
}

// Aggregate builds the counters and the email union for results. Duration
// and timestamp are left for the caller.
func Aggregate(results []types.SingleResult) types.BatchReport {
	out := types.BatchReport{
		Results:     results,
		TotalEmails: []string{},
	}
	if out.Results == nil {
		out.Results = []types.SingleResult{}
	}

	seen := make(map[string]struct{})
	for _, r := range results {
		if !r.Success {
			out.FailureCount++
			continue
		}
		out.SuccessCount++
		for _, e := range r.Emails {
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out.TotalEmails = append(out.TotalEmails, e)
		}
	}
	out.UniqueEmailCount = len(out.TotalEmails)
	return out
}
