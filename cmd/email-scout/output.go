// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/email-scout/internal/fetch"
	"github.com/pdiddy/email-scout/internal/history"
	"github.com/pdiddy/email-scout/internal/httputil"
	"github.com/pdiddy/email-scout/internal/scrape"
	"github.com/pdiddy/email-scout/internal/search"
	"github.com/pdiddy/email-scout/pkg/types"
)

func newScraper() *scrape.Scraper {
	cfg := scrapeConfig()
	return scrape.New(fetch.NewHTTPFetcher(cfg.UserAgent, log), cfg, log)
}

func newSearchChain() (*search.Chain, error) {
	cfg := searchConfig()
	set, err := search.LoadSelectors(cfg.SelectorsFile)
	if err != nil {
		return nil, err
	}
	t := search.Transport{
		Client:     httputil.NewClient(0),
		UserAgent:  cfg.UserAgent,
		MaxRetries: cfg.MaxRetries,
		Log:        log,
		Timeout:    cfg.Timeout,
	}
	return search.NewWebChain(t, set), nil
}

// record saves rec to history unless history is disabled. Failures are
// logged rather than returned so a good scrape is never reported as failed.
func record(ctx context.Context, rec history.Record, err error) {
	if viper.GetBool("history.disabled") {
		return
	}
	if err != nil {
		log.Warnf("history: %v", err)
		return
	}
	store, err := history.Open(historyConfig())
	if err != nil {
		log.Warnf("history: %v", err)
		return
	}
	defer store.Close()
	if _, err := store.Save(ctx, rec); err != nil {
		log.Warnf("history: %v", err)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printSingle(w io.Writer, r types.SingleResult) {
	if !r.Success {
		fmt.Fprintf(w, "%s: failed: %s\n", r.URL, r.Error)
		return
	}
	fmt.Fprintf(w, "%s: %d email(s)\n", r.URL, r.Count)
	for _, e := range r.Emails {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

func printBatch(w io.Writer, r types.BatchReport) {
	for _, res := range r.Results {
		printSingle(w, res)
	}
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintf(w, "%d succeeded, %d failed, %d unique email(s) in %dms\n",
		r.SuccessCount, r.FailureCount, r.UniqueEmailCount, r.DurationMs)
	for _, e := range r.TotalEmails {
		fmt.Fprintf(w, "  %s\n", e)
	}
}
