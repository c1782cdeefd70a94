// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import "fmt"

// Kind classifies why a fetch failed.
type Kind int

const (
	KindOther Kind = iota
	KindInvalidURL
	KindHostNotFound
	KindConnectionRefused
	KindForbidden
	KindNotFound
	KindTimeout
)

var kindNames = map[Kind]string{
	KindOther:             "other",
	KindInvalidURL:        "invalid_url",
	KindHostNotFound:      "host_not_found",
	KindConnectionRefused: "connection_refused",
	KindForbidden:         "forbidden",
	KindNotFound:          "not_found",
	KindTimeout:           "timeout",
}

// kindMessages is the user-facing text for each kind.
var kindMessages = map[Kind]string{
	KindOther:             "scrape failed, check the URL or try again later",
	KindInvalidURL:        "invalid URL format",
	KindHostNotFound:      "cannot reach this address, check that the URL is correct",
	KindConnectionRefused: "connection refused, the site may be unreachable",
	KindForbidden:         "access denied, the site may have anti-scraping protection",
	KindNotFound:          "page not found (404)",
	KindTimeout:           "request timed out, please try again later",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Message returns the short user-facing description of k.
func (k Kind) Message() string {
	if s, ok := kindMessages[k]; ok {
		return s
	}
	return kindMessages[KindOther]
}

// Error is a classified fetch failure.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.cause }

// UserMessage returns the text shown to end users. For KindOther the detail
// is appended so distinct failures stay distinguishable.
func (e *Error) UserMessage() string {
	if e.Kind == KindOther && e.Detail != "" {
		return fmt.Sprintf("%s (%s)", e.Kind.Message(), e.Detail)
	}
	return e.Kind.Message()
}
