// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds email addresses in a parsed HTML document.
//
// Four strategies run over the same document and feed one ordered set:
// visible body text, mailto links, data-cfemail protected elements, and
// data-cfemail payloads embedded in inline scripts. Candidates are lowercased,
// deduplicated, then passed through a deliberately permissive shape check.
package extract

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/email-scout/internal/cfemail"
	"github.com/pdiddy/email-scout/internal/logging"
)

var (
	// textEmail matches local@domain.tld tokens in running text.
	textEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// scriptPayload matches data-cfemail="..." inside script source, with or
	// without escaped quotes.
	scriptPayload = regexp.MustCompile(`data-cfemail=\\?"([^"\\]+)\\?"`)

	// validEmail is the final gate. It accepts anything shaped like x@y.z
	// without whitespace or a second "@"; it is not RFC 5322 validation.
	validEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

const (
	protectedSelector = "[data-cfemail]"
	protectedAttr     = "data-cfemail"
	mailtoSelector    = `a[href^="mailto:"]`
	mailtoPrefix      = "mailto:"
)

// Extractor applies every strategy to a document. The zero value is usable
// and logs nothing.
type Extractor struct {
	Log logrus.FieldLogger
}

// New returns an Extractor that logs skipped candidates to log at debug level.
func New(log logrus.FieldLogger) *Extractor {
	return &Extractor{Log: log}
}

// Valid reports whether s passes the final shape check.
func Valid(s string) bool {
	return validEmail.MatchString(s)
}

// FromHTML parses r as HTML and extracts addresses from it.
func (e *Extractor) FromHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return e.Extract(doc), nil
}

// Extract returns the deduplicated, lowercased addresses in doc in the order
// they were first found. It never returns nil.
func (e *Extractor) Extract(doc *goquery.Document) []string {
	set := newOrderedSet()

	for _, m := range textEmail.FindAllString(doc.Find("body").Text(), -1) {
		set.add(m)
	}

	doc.Find(mailtoSelector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		addr := strings.Replace(href, mailtoPrefix, "", 1)
		addr, _, _ = strings.Cut(addr, "?")
		set.add(strings.TrimSpace(addr))
	})

	doc.Find(protectedSelector).Each(func(_ int, s *goquery.Selection) {
		payload, _ := s.Attr(protectedAttr)
		e.addProtected(set, payload, "element")
	})

	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		src := s.Text()
		if !strings.Contains(src, protectedAttr) {
			return
		}
		for _, m := range scriptPayload.FindAllStringSubmatch(src, -1) {
			e.addProtected(set, m[1], "script")
		}
	})

	out := make([]string, 0, len(set.order))
	for _, addr := range set.order {
		if Valid(addr) {
			out = append(out, addr)
		}
	}
	return out
}

// addProtected decodes one payload and adds it when it contains an "@".
// A malformed payload is skipped so the remaining candidates still run.
func (e *Extractor) addProtected(set *orderedSet, payload, origin string) {
	if payload == "" {
		return
	}
	decoded, err := cfemail.Decode(payload)
	if err != nil {
		e.logger().WithField("origin", origin).Debugf("skipping protected email: %v", err)
		return
	}
	if !strings.Contains(decoded, "@") {
		return
	}
	set.add(decoded)
}

var discard = logging.Discard()

func (e *Extractor) logger() logrus.FieldLogger {
	if e.Log == nil {
		return discard
	}
	return e.Log
}

// orderedSet keeps insertion order and ignores repeats.
type orderedSet struct {
	seen  map[string]struct{}
	order []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	v = strings.ToLower(v)
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
}
