// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/base64"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var ddgTarget = regexp.MustCompile(`uddg=([^&]+)`)

// absolute prefixes https:// unless raw already starts with "http". A
// scheme-relative "//host" gets "https:".
func absolute(raw string) string {
	switch {
	case strings.HasPrefix(raw, "http"):
		return raw
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	default:
		return "https://" + raw
	}
}

// hostOf returns the hostname of raw when it is an absolute http(s) URL.
func hostOf(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	host := u.Hostname()
	return host, host != ""
}

// cleanGoogleURL unwraps Google's /url?q= redirect.
func cleanGoogleURL(href string) string {
	if rest, ok := strings.CutPrefix(href, "/url?"); ok {
		if v, err := url.ParseQuery(rest); err == nil && v.Get("q") != "" {
			return absolute(v.Get("q"))
		}
	}
	return absolute(href)
}

// onDomain reports whether host is domain or one of its subdomains.
func onDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// googleExcluded drops links into any Google property, including country
// domains such as google.co.uk.
func googleExcluded(u string) bool {
	host, _ := hostOf(u)
	if onDomain(host, "google.com") {
		return true
	}
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	return err == nil && strings.HasPrefix(site, "google.")
}

// cleanBingURL unwraps Bing's /ck/a click tracker, whose u= parameter holds
// the target as "a1" followed by unpadded URL-safe base64.
func cleanBingURL(href string) string {
	u := absolute(href)
	parsed, err := url.Parse(u)
	if err != nil || !onDomain(parsed.Hostname(), "bing.com") || parsed.Path != "/ck/a" {
		return u
	}
	enc, ok := strings.CutPrefix(parsed.Query().Get("u"), "a1")
	if !ok {
		return u
	}
	target, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(enc, "="))
	if err != nil || len(target) == 0 {
		return u
	}
	return absolute(string(target))
}

func bingExcluded(u string) bool {
	host, _ := hostOf(u)
	return onDomain(host, "bing.com")
}

// cleanDuckDuckGoURL unwraps the uddg= target from DuckDuckGo's redirect links.
func cleanDuckDuckGoURL(href string) string {
	if strings.Contains(href, "duckduckgo.com") {
		if m := ddgTarget.FindStringSubmatch(href); m != nil {
			if target, err := url.QueryUnescape(m[1]); err == nil {
				return target
			}
		}
	}
	return absolute(href)
}

func duckDuckGoExcluded(u string) bool {
	host, _ := hostOf(u)
	return onDomain(host, "duckduckgo.com")
}
