// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"
)

// Selectors describes where a results page keeps each hit. All values are
// goquery (CSS) selectors. Title, Link and Snippet are evaluated inside
// each Result element. An empty Link takes the href of the Title element.
type Selectors struct {
	Result  string `yaml:"result"`
	Title   string `yaml:"title"`
	Link    string `yaml:"link,omitempty"`
	Snippet string `yaml:"snippet"`
}

// SelectorSet holds the selectors for every web provider. Result pages
// change markup without notice, so these live in a file the user can edit
// rather than in the parsing code.
type SelectorSet struct {
	Google     Selectors `yaml:"google"`
	Bing       Selectors `yaml:"bing"`
	DuckDuckGo Selectors `yaml:"duckduckgo"`
}

// DefaultSelectors returns the selectors that match the engines' markup at
// the time of writing.
func DefaultSelectors() SelectorSet {
	return SelectorSet{
		Google: Selectors{
			Result:  "div.g",
			Title:   "h3",
			Link:    "a[href]",
			Snippet: `[data-sncf="1"], .VwiC3b, .s3v9rd`,
		},
		Bing: Selectors{
			Result:  ".b_algo",
			Title:   "h2 a",
			Snippet: ".b_caption p, .b_descript",
		},
		DuckDuckGo: Selectors{
			Result:  ".result",
			Title:   ".result__title a",
			Snippet: ".result__snippet",
		},
	}
}

// LoadSelectors reads a selectors file. Providers or fields the file omits
// keep their defaults. An empty path returns the defaults.
func LoadSelectors(path string) (SelectorSet, error) {
	set := DefaultSelectors()
	if path == "" {
		return set, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return set, fmt.Errorf("reading selectors file: %w", err)
	}
	if err := yaml.Unmarshal(data, &set); err != nil {
		return set, fmt.Errorf("parsing selectors file: %w", err)
	}
	for name, s := range map[string]Selectors{"google": set.Google, "bing": set.Bing, "duckduckgo": set.DuckDuckGo} {
		if s.Result == "" || s.Title == "" {
			return set, fmt.Errorf("selectors file: %s needs result and title selectors", name)
		}
	}
	return set, nil
}

// WriteSelectors writes set as YAML to w, in the format LoadSelectors reads.
func WriteSelectors(w io.Writer, set SelectorSet) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&set); err != nil {
		return fmt.Errorf("marshaling selectors: %w", err)
	}
	return enc.Close()
}
