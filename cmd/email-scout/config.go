// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/email-scout/internal/history"
	"github.com/pdiddy/email-scout/internal/pacing"
	"github.com/pdiddy/email-scout/internal/scrape"
	"github.com/pdiddy/email-scout/internal/search"
	"github.com/pdiddy/email-scout/pkg/types"
)

// envKeyReplacer maps nested keys to env names: scrape.delay → EMAIL_SCOUT_SCRAPE_DELAY.
var envKeyReplacer = strings.NewReplacer(".", "_")

func setDefaults() {
	viper.SetDefault("scrape.timeout", scrape.DefaultTimeout)
	viper.SetDefault("scrape.batch_timeout", scrape.DefaultBatchTimeout)
	viper.SetDefault("scrape.delay", pacing.DefaultInterval)
	viper.SetDefault("scrape.concurrency", 1)
	viper.SetDefault("scrape.user_agent", "")

	viper.SetDefault("search.timeout", time.Duration(0))
	viper.SetDefault("search.selectors_file", "")
	viper.SetDefault("search.max_retries", 2)
	viper.SetDefault("search.limit", search.DefaultLimit)

	viper.SetDefault("history.path", defaultHistoryPath())
	viper.SetDefault("history.disabled", false)
	viper.SetDefault("history.keep_single", history.DefaultKeepSingle)
	viper.SetDefault("history.keep_batch", history.DefaultKeepBatch)
	viper.SetDefault("history.keep_search", history.DefaultKeepSearch)

	viper.SetDefault("log.level", "warn")
	viper.SetDefault("log.file", "")
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".email-scout", "history.db")
	}
	return filepath.Join(home, ".local", "share", "email-scout", "history.db")
}

// bindFlag binds f to key so an explicitly set flag beats the config file
// and environment, and an unset flag leaves them alone.
func bindFlag(f *pflag.Flag, key string) {
	if err := viper.BindPFlag(key, f); err != nil {
		panic(err)
	}
}

// scrapeConfig never disables pacing: a non-positive delay falls back to the
// library default.
func scrapeConfig() types.ScrapeConfig {
	delay := viper.GetDuration("scrape.delay")
	if delay < 0 {
		delay = 0
	}
	return types.ScrapeConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("scrape.timeout"),
			UserAgent: viper.GetString("scrape.user_agent"),
		},
		BatchTimeout: viper.GetDuration("scrape.batch_timeout"),
		Delay:        delay,
		Concurrency:  viper.GetInt("scrape.concurrency"),
	}
}

func searchConfig() types.SearchConfig {
	return types.SearchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("search.timeout"),
			UserAgent: viper.GetString("scrape.user_agent"),
		},
		SelectorsFile: viper.GetString("search.selectors_file"),
		MaxRetries:    viper.GetInt("search.max_retries"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Path:       viper.GetString("history.path"),
		KeepSingle: viper.GetInt("history.keep_single"),
		KeepBatch:  viper.GetInt("history.keep_batch"),
		KeepSearch: viper.GetInt("history.keep_search"),
	}
}

func logConfig() types.LogConfig {
	return types.LogConfig{
		Level: viper.GetString("log.level"),
		File:  viper.GetString("log.file"),
	}
}
