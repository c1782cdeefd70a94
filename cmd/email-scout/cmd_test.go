// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/email-scout/internal/pacing"
	"github.com/pdiddy/email-scout/internal/scrape"
	"github.com/pdiddy/email-scout/pkg/types"
)

func TestReadURLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("example.com\n\n  https://b.example \n"), 0o644))

	lines, err := readURLFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "", "  https://b.example "}, lines)

	lines, err = readURLFile("-", strings.NewReader("a.example\nb.example"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a.example", "b.example"}, lines)

	_, err = readURLFile(filepath.Join(t.TempDir(), "missing.txt"), nil)
	assert.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	sc := scrapeConfig()
	assert.Equal(t, 10*time.Second, sc.Timeout)
	assert.Equal(t, 15*time.Second, sc.BatchTimeout)
	assert.Equal(t, 500*time.Millisecond, sc.Delay)
	assert.Equal(t, 1, sc.Concurrency)

	assert.Equal(t, 2, searchConfig().MaxRetries)
	assert.Equal(t, 100, viper.GetInt("search.limit"))

	hc := historyConfig()
	assert.Equal(t, types.HistoryConfig{Path: hc.Path, KeepSingle: 10, KeepBatch: 5, KeepSearch: 5}, hc)
	assert.True(t, strings.HasSuffix(hc.Path, filepath.Join("email-scout", "history.db")))

	assert.Equal(t, "warn", logConfig().Level)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("EMAIL_SCOUT_SCRAPE_DELAY", "2s")
	initConfig()
	assert.Equal(t, 2*time.Second, scrapeConfig().Delay)
}

func TestConfigNegativeDelayKeepsPacing(t *testing.T) {
	t.Setenv("EMAIL_SCOUT_SCRAPE_DELAY", "-1s")
	initConfig()
	assert.Equal(t, time.Duration(0), scrapeConfig().Delay)
	assert.Equal(t, pacing.DefaultInterval, scrape.New(nil, scrapeConfig(), nil).Config().Delay)
}

func TestPrintBatch(t *testing.T) {
	var b bytes.Buffer
	printBatch(&b, types.BatchReport{
		Results: []types.SingleResult{
			{URL: "https://a.example", Success: true, Emails: []string{"x@a.example"}, Count: 1},
			{URL: "https://b.example", Success: false, Emails: []string{}, Error: "page not found (404)"},
		},
		TotalEmails:      []string{"x@a.example"},
		UniqueEmailCount: 1,
		SuccessCount:     1,
		FailureCount:     1,
		DurationMs:       512,
	})
	out := b.String()
	assert.Contains(t, out, "https://a.example: 1 email(s)")
	assert.Contains(t, out, "https://b.example: failed: page not found (404)")
	assert.Contains(t, out, "1 succeeded, 1 failed, 1 unique email(s) in 512ms")
}
