// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scrape turns URLs into email results. ScrapeOne runs the
// fetch-then-extract pipeline for one target and never fails; ScrapeBatch
// drives it over up to MaxBatchURLs targets with paced dispatch and
// aggregates the outcome into a BatchReport.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/email-scout/internal/extract"
	"github.com/pdiddy/email-scout/internal/fetch"
	"github.com/pdiddy/email-scout/internal/logging"
	"github.com/pdiddy/email-scout/internal/pacing"
	"github.com/pdiddy/email-scout/pkg/types"
)

const (
	DefaultTimeout      = 10 * time.Second
	DefaultBatchTimeout = 15 * time.Second
)

// ValidationError reports caller input rejected before any fetch happens.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Scraper holds the collaborators shared by single and batch scrapes. It
// keeps no per-invocation state, so one Scraper may serve concurrent callers.
type Scraper struct {
	fetcher   fetch.Fetcher
	extractor *extract.Extractor
	cfg       types.ScrapeConfig
	log       logrus.FieldLogger

	// now is swapped in tests.
	now func() time.Time
}

// New returns a Scraper. Zero durations in cfg select the defaults, so a zero
// Delay paces batches at pacing.DefaultInterval; a negative Delay turns pacing
// off. log may be nil.
func New(f fetch.Fetcher, cfg types.ScrapeConfig, log logrus.FieldLogger) *Scraper {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BatchTimeout <= 0 {
		cfg.BatchTimeout = DefaultBatchTimeout
	}
	if cfg.Delay == 0 {
		cfg.Delay = pacing.DefaultInterval
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Scraper{
		fetcher:   f,
		extractor: extract.New(log),
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

// Config returns the effective configuration after defaults.
func (s *Scraper) Config() types.ScrapeConfig { return s.cfg }

// Scrape validates rawURL and then runs ScrapeOne. Only a ValidationError is
// returned; fetch and extraction failures are reported in the result.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (types.SingleResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return types.SingleResult{}, &ValidationError{Msg: "a URL is required"}
	}
	if err := fetch.ValidateURL(rawURL); err != nil {
		return types.SingleResult{}, &ValidationError{Msg: fmt.Sprintf("invalid URL format: %s", err.Detail)}
	}
	return s.ScrapeOne(ctx, rawURL), nil
}

// ScrapeOne fetches rawURL and extracts its emails using the single-scrape timeout.
func (s *Scraper) ScrapeOne(ctx context.Context, rawURL string) types.SingleResult {
	return s.scrapeWith(ctx, rawURL, s.cfg.Timeout)
}

func (s *Scraper) scrapeWith(ctx context.Context, rawURL string, timeout time.Duration) types.SingleResult {
	log := s.log.WithField("url", rawURL)

	res := s.fetcher.Fetch(ctx, rawURL, timeout)
	if !res.OK() {
		log.WithField("kind", res.Err.Kind.String()).Infof("scrape failed: %v", res.Err)
		return s.failed(rawURL, res.Err.UserMessage())
	}

	emails, err := s.extractor.FromHTML(strings.NewReader(res.Body))
	if err != nil {
		log.Warnf("scrape failed: %v", err)
		return s.failed(rawURL, "could not parse page content")
	}

	log.WithField("count", len(emails)).Debug("scrape succeeded")
	return types.SingleResult{
		URL:       rawURL,
		Success:   true,
		Emails:    emails,
		Count:     len(emails),
		Timestamp: types.Timestamp(s.now()),
	}
}

func (s *Scraper) failed(rawURL, msg string) types.SingleResult {
	return types.SingleResult{
		URL:       rawURL,
		Success:   false,
		Emails:    []string{},
		Count:     0,
		Timestamp: types.Timestamp(s.now()),
		Error:     msg,
	}
}
