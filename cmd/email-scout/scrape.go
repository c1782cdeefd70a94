// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/email-scout/internal/history"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Collect the email addresses published on one page",
	Long: `Scrape fetches one http or https URL and prints the addresses found in
its text, mailto links, and CDN-protected email markup. A fetch failure is
reported in the result rather than as a command error.`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().Duration("timeout", 0, "request timeout (default 10s)")
	scrapeCmd.Flags().Bool("json", false, "output the result as JSON")

	bindFlag(scrapeCmd.Flags().Lookup("timeout"), "scrape.timeout")

	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	res, err := newScraper().Scrape(ctx, args[0])
	if err != nil {
		return err
	}
	rec, recErr := history.FromSingle(res)
	record(ctx, rec, recErr)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return writeJSON(os.Stdout, res)
	}
	printSingle(os.Stdout, res)
	return nil
}
