// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the records email-scout produces and the stage
// configurations that drive them. JSON field names on the result records are
// a wire contract with existing callers and must not change.
package types

import "time"

// TimestampLayout is the ISO-8601 layout used for every record timestamp
// (millisecond precision, UTC, trailing Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Timestamp formats t in TimestampLayout after converting it to UTC.
func Timestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// SingleResult is the outcome of scraping one URL. It is built once and not
// modified afterwards.
type SingleResult struct {
	URL       string   `json:"url" yaml:"url"`
	Success   bool     `json:"success" yaml:"success"`
	Emails    []string `json:"emails" yaml:"emails"`
	Count     int      `json:"count" yaml:"count"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`

	// Error is a short user-facing message, set only when Success is false.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// BatchReport aggregates the SingleResults of one batch run.
//
// SuccessCount+FailureCount equals len(Results) and UniqueEmailCount equals
// len(TotalEmails). TotalEmails keeps first-seen order across successful results.
type BatchReport struct {
	Results          []SingleResult `json:"results" yaml:"results"`
	TotalEmails      []string       `json:"totalEmails" yaml:"totalEmails"`
	UniqueEmailCount int            `json:"uniqueEmailCount" yaml:"uniqueEmailCount"`
	SuccessCount     int            `json:"successCount" yaml:"successCount"`
	FailureCount     int            `json:"failureCount" yaml:"failureCount"`
	DurationMs       int64          `json:"durationMs" yaml:"durationMs"`
	Timestamp        string         `json:"timestamp" yaml:"timestamp"`
}

// SearchHit is one website returned by a search provider. URL is absolute with
// an http or https scheme and is the dedup key within a search.
type SearchHit struct {
	Title   string `json:"title" yaml:"title"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet" yaml:"snippet"`

	// Domain is the hostname of URL.
	Domain string `json:"domain" yaml:"domain"`
}

// SearchReport is the deduplicated, limit-capped result of a keyword search.
type SearchReport struct {
	Keyword string      `json:"keyword" yaml:"keyword"`
	Region  string      `json:"region" yaml:"region"`
	Hits    []SearchHit `json:"hits" yaml:"hits"`
	Count   int         `json:"count" yaml:"count"`
}
