package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent overrides the desktop browser User-Agent when non-empty.
	UserAgent string `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
}

// ScrapeConfig holds settings for single and batch scraping.
type ScrapeConfig struct {
	// HTTPConfig.Timeout applies to single-URL scrapes (default 10s).
	HTTPConfig `yaml:",inline"`

	// BatchTimeout is the per-item timeout inside a batch (default 15s).
	BatchTimeout time.Duration `json:"batch_timeout" yaml:"batch_timeout"`

	// Delay is the minimum spacing between consecutive fetch dispatches in a
	// batch, and between a fetch finishing and the next dispatch (default
	// 500ms). Zero selects the default; a negative value disables pacing.
	Delay time.Duration `json:"delay" yaml:"delay"`

	// Concurrency is the number of batch items fetched at once (default 1).
	// Dispatches still honour Delay.
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// SearchConfig holds settings for the search provider chain.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// SelectorsFile is an optional YAML file overriding provider result-card selectors.
	SelectorsFile string `json:"selectors_file,omitempty" yaml:"selectors_file,omitempty"`

	// MaxRetries bounds retries on HTTP 429 per provider request (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// HistoryConfig holds settings for the local history store.
type HistoryConfig struct {
	// Path is the SQLite database file.
	Path string `json:"path" yaml:"path"`

	// KeepSingle, KeepBatch and KeepSearch cap how many records of each kind
	// are retained; older records are pruned on save. Zero means the default
	// (10, 5 and 5).
	KeepSingle int `json:"keep_single" yaml:"keep_single"`
	KeepBatch  int `json:"keep_batch" yaml:"keep_batch"`
	KeepSearch int `json:"keep_search" yaml:"keep_search"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file,omitempty" yaml:"file,omitempty"`
}
