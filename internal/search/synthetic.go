// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/email-scout/internal/region"
	"github.com/pdiddy/email-scout/pkg/types"
)

// maxSynthetic caps the hits Synthetic produces per call.
const maxSynthetic = 10

var (
	nonAlnum       = regexp.MustCompile(`[^a-zA-Z0-9]`)
	nonAlnumHyphen = regexp.MustCompile(`[^a-zA-Z0-9-]`)
)

// fallbackPlaceholder stands in for a keyword with no ASCII letters or digits.
const fallbackPlaceholder = "site"

// Synthetic guesses plausible hostnames from the keyword tokens and the
// region's market qualifier. It makes no network calls.
type Synthetic struct{}

// Name returns the provider identifier.
func (Synthetic) Name() string { return "synthetic" }

// FetchAndParse returns up to three guesses for every keyword token longer
// than two characters, at most ten in all and never more than q.Limit.
func (Synthetic) FetchAndParse(_ context.Context, q Query) ([]types.SearchHit, error) {
	tld := region.MarketQualifierFor(q.Region)
	hits := []types.SearchHit{}

	for _, kw := range strings.Fields(strings.ToLower(q.Keyword)) {
		slug := nonAlnum.ReplaceAllString(kw, "")
		if len(slug) <= 2 {
			continue
		}
		name := capitalize(kw)
		hits = append(hits,
			syntheticHit(name+" Official Website", slug, tld, "Official website for "+kw),
			syntheticHit(name+" Company", slug+"company", tld, kw+" company website"),
			syntheticHit("Best "+name+" Services", "best"+slug, tld, "Best "+kw+" services and solutions"),
		)
	}

	n := maxSynthetic
	if q.Limit > 0 && q.Limit < n {
		n = q.Limit
	}
	if len(hits) > n {
		hits = hits[:n]
	}
	return hits, nil
}

var fallbackPatterns = []string{
	"%s", "%s-company", "%s-services", "%s-solutions", "best-%s",
	"%s-official", "%s-group", "%s-corp", "%s-inc", "%s-ltd",
}

// Fallback builds up to limit hits from fixed name variations of keyword.
// It is used when the chain fails outright or finds nothing at all.
func Fallback(keyword, regionCode string, limit int) []types.SearchHit {
	tld := region.MarketQualifierFor(regionCode)
	keyword = strings.TrimSpace(keyword)

	slug := strings.ToLower(nonAlnumHyphen.ReplaceAllString(keyword, ""))
	if strings.Trim(slug, "-") == "" {
		slug = fallbackPlaceholder
	}

	hits := []types.SearchHit{}
	for _, p := range fallbackPatterns {
		if limit > 0 && len(hits) >= limit {
			break
		}
		variation := fmt.Sprintf(p, keyword)
		title := strings.Join(titleWords(strings.ReplaceAll(variation, "-", " ")), " ") + " Website"
		hits = append(hits, syntheticHit(title, fmt.Sprintf(p, slug), tld, "Website related to "+keyword))
	}
	return hits
}

func syntheticHit(title, label, tld, snippet string) types.SearchHit {
	domain := label + "." + tld
	return types.SearchHit{
		Title:   title,
		URL:     "https://www." + domain,
		Snippet: snippet,
		Domain:  domain,
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func titleWords(s string) []string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return words
}
