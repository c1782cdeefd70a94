// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/email-scout/internal/cfemail"
)

func extractFrom(t *testing.T, html string) []string {
	t.Helper()
	var e Extractor
	got, err := e.FromHTML(strings.NewReader(html))
	require.NoError(t, err)
	return got
}

func TestExtractPlainText(t *testing.T) {
	got := extractFrom(t, `<html><body><p>Write to Sales@Example.com or support@example.org today.</p></body></html>`)
	assert.Equal(t, []string{"sales@example.com", "support@example.org"}, got)
}

func TestExtractMailto(t *testing.T) {
	got := extractFrom(t, `<body>
		<a href="mailto:Contact@Example.com?subject=hi">Contact us</a>
		<a href="mailto:">empty</a>
		<a href="https://example.com/mailto:nope@x.com">not mailto</a>
	</body>`)
	assert.Equal(t, []string{"contact@example.com"}, got)
}

func TestExtractProtectedElement(t *testing.T) {
	payload := cfemail.Encode("hidden@example.net", 0x5a)
	got := extractFrom(t, `<body><a href="/cdn-cgi/l/email-protection" class="__cf_email__" data-cfemail="`+payload+`">[email&#160;protected]</a></body>`)
	assert.Equal(t, []string{"hidden@example.net"}, got)
}

func TestExtractProtectedInScript(t *testing.T) {
	payload := cfemail.Encode("script@example.io", 0x13)
	html := `<head><script>document.write('<a class="__cf_email__" data-cfemail="` + payload + `">x</a>');</script></head><body></body>`
	got := extractFrom(t, html)
	assert.Equal(t, []string{"script@example.io"}, got)
}

func TestExtractProtectedInScriptEscapedQuotes(t *testing.T) {
	payload := cfemail.Encode("json@example.io", 0x21)
	html := `<body><script>var s = "<span data-cfemail=\"` + payload + `\"></span>";</script></body>`
	got := extractFrom(t, html)
	assert.Contains(t, got, "json@example.io")
}

func TestExtractDedupAcrossStrategies(t *testing.T) {
	payload := cfemail.Encode("user@example.com", 0x7f)
	html := `<body>
		<p>Email USER@example.com for details.</p>
		<a href="mailto:user@example.com">mail</a>
		<a class="__cf_email__" data-cfemail="` + payload + `">[email protected]</a>
	</body>`
	got := extractFrom(t, html)
	assert.Equal(t, []string{"user@example.com"}, got)
}

func TestExtractMalformedPayloadDoesNotAbort(t *testing.T) {
	good := cfemail.Encode("ok@example.com", 0x10)
	html := `<body>
		<a class="__cf_email__" data-cfemail="zz">bad</a>
		<a class="__cf_email__" data-cfemail="123">odd</a>
		<a class="__cf_email__" data-cfemail="` + good + `">good</a>
		<script>x = 'data-cfemail="nothex"';</script>
		<p>plain@example.com</p>
	</body>`
	got := extractFrom(t, html)
	assert.ElementsMatch(t, []string{"plain@example.com", "ok@example.com"}, got)
}

func TestExtractDiscardsDecodedWithoutAt(t *testing.T) {
	payload := cfemail.Encode("no-at-sign-here", 0x33)
	got := extractFrom(t, `<body><span data-cfemail="`+payload+`"></span></body>`)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestExtractValidityGate(t *testing.T) {
	html := `<body>
		<p>not-an-email and also @ alone</p>
		<a href="mailto:a@b.c">short</a>
		<a href="mailto:broken@nodot">nodot</a>
		<a href="mailto:two@@example.com">double</a>
	</body>`
	got := extractFrom(t, html)
	assert.Equal(t, []string{"a@b.c"}, got)
	assert.NotContains(t, got, "not-an-email")
}

func TestExtractNoEmails(t *testing.T) {
	got := extractFrom(t, `<html><body><h1>Nothing here</h1></body></html>`)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestValid(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a@b.c", true},
		{"user@example.com", true},
		{"weird!#@host.x.y", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a b@c.d", false},
		{"a@@b.c", false},
		{"@b.c", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.in))
		})
	}
}
