// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/email-scout/internal/history"
	"github.com/pdiddy/email-scout/internal/scrape"
	"github.com/pdiddy/email-scout/internal/search"
	"github.com/pdiddy/email-scout/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword...>",
	Short: "Find websites for a keyword",
	Long: `Search asks Google, then Bing, then DuckDuckGo for websites matching the
keyword, moving to the next engine only while results are short. When the
engines return too little, plausible domains built from the keyword and the
region's domain suffix fill the list.

--region takes a two-letter code (UK, DE, JP, ...). --scrape passes the
first 50 result URLs straight to batch scraping.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

var searchSelectorsCmd = &cobra.Command{
	Use:   "selectors",
	Short: "Print the result-page selectors in use",
	Long: `Selectors prints the CSS selectors used to read each engine's results
page, as YAML. Save the output, edit it, and point search.selectors_file at
it when an engine changes its markup.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := search.LoadSelectors(searchConfig().SelectorsFile)
		if err != nil {
			return err
		}
		return search.WriteSelectors(os.Stdout, set)
	},
}

func init() {
	searchCmd.Flags().String("region", "", "two-letter region code (empty or GLOBAL for worldwide)")
	searchCmd.Flags().Int("limit", 0, "maximum number of websites (default 100)")
	searchCmd.Flags().Duration("timeout", 0, "per-engine request timeout (default 15s, DuckDuckGo 10s)")
	searchCmd.PersistentFlags().String("selectors", "", "YAML file overriding result-page selectors")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	searchCmd.Flags().Bool("scrape", false, "scrape the result URLs for email addresses")

	bindFlag(searchCmd.Flags().Lookup("limit"), "search.limit")
	bindFlag(searchCmd.Flags().Lookup("timeout"), "search.timeout")
	bindFlag(searchCmd.PersistentFlags().Lookup("selectors"), "search.selectors_file")

	searchCmd.AddCommand(searchSelectorsCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	keyword := strings.Join(args, " ")
	region, _ := cmd.Flags().GetString("region")
	region = strings.ToUpper(strings.TrimSpace(region))

	chain, err := newSearchChain()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	report, err := chain.Search(ctx, keyword, region, viper.GetInt("search.limit"))
	if err != nil {
		return err
	}
	rec, recErr := history.FromSearch(report)
	record(ctx, rec, recErr)

	jsonOut, _ := cmd.Flags().GetBool("json")
	if scrapeHits, _ := cmd.Flags().GetBool("scrape"); scrapeHits {
		return scrapeSearchHits(cmd, report, jsonOut)
	}

	if jsonOut {
		return writeJSON(os.Stdout, report)
	}
	search.FormatTable(report, os.Stdout)
	return nil
}

// scrapeSearchHits feeds up to scrape.MaxBatchURLs hit URLs into a batch.
func scrapeSearchHits(cmd *cobra.Command, report types.SearchReport, jsonOut bool) error {
	urls := make([]string, 0, min(len(report.Hits), scrape.MaxBatchURLs))
	for _, h := range report.Hits {
		if len(urls) == scrape.MaxBatchURLs {
			break
		}
		urls = append(urls, h.URL)
	}
	if len(report.Hits) > len(urls) {
		log.Infof("scraping the first %d of %d websites", len(urls), len(report.Hits))
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	batch, err := newScraper().ScrapeBatch(ctx, urls, scrape.BatchOptions{
		OnProgress: func(done, total int, url string) {
			log.WithField("url", url).Infof("scraped %d/%d", done, total)
		},
	})
	if err != nil {
		return err
	}
	rec, recErr := history.FromBatch(batch)
	record(ctx, rec, recErr)

	if jsonOut {
		return writeJSON(os.Stdout, struct {
			Search types.SearchReport `json:"search"`
			Batch  types.BatchReport  `json:"batch"`
		}{report, batch})
	}
	search.FormatTable(report, os.Stdout)
	fmt.Fprintln(os.Stdout)
	printBatch(os.Stdout, batch)
	return nil
}
