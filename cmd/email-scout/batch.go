// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/email-scout/internal/history"
	"github.com/pdiddy/email-scout/internal/scrape"
)

var batchCmd = &cobra.Command{
	Use:   "batch [urls...]",
	Short: "Collect email addresses from up to 50 pages",
	Long: `Batch scrapes up to 50 URLs given as arguments or read from --file
(one per line, "-" for stdin). Entries without a scheme get https://, blank
lines are skipped. Fetches are spaced by scrape.delay (default 500ms) even
when --concurrency is above 1. Interrupting the command reports the URLs
not yet fetched as cancelled.`,
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("file", "", `read URLs from this file, one per line ("-" for stdin)`)
	batchCmd.Flags().Duration("timeout", 0, "per-URL request timeout (default 15s)")
	batchCmd.Flags().Duration("delay", 0, "minimum spacing between fetches (default 500ms, non-positive uses the default)")
	batchCmd.Flags().Int("concurrency", 0, "URLs fetched at once (default 1)")
	batchCmd.Flags().Bool("json", false, "output the report as JSON")
	batchCmd.Flags().Bool("progress", false, "print progress to stderr")

	bindFlag(batchCmd.Flags().Lookup("timeout"), "scrape.batch_timeout")
	bindFlag(batchCmd.Flags().Lookup("delay"), "scrape.delay")
	bindFlag(batchCmd.Flags().Lookup("concurrency"), "scrape.concurrency")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	urls := append([]string(nil), args...)
	if file, _ := cmd.Flags().GetString("file"); file != "" {
		lines, err := readURLFile(file, cmd.InOrStdin())
		if err != nil {
			return err
		}
		urls = append(urls, lines...)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	var opts scrape.BatchOptions
	if progress, _ := cmd.Flags().GetBool("progress"); progress {
		opts.OnProgress = func(done, total int, url string) {
			fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", done, total, url)
		}
	}

	report, err := newScraper().ScrapeBatch(ctx, urls, opts)
	if err != nil {
		return err
	}
	rec, recErr := history.FromBatch(report)
	record(ctx, rec, recErr)

	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return writeJSON(os.Stdout, report)
	}
	printBatch(os.Stdout, report)
	return nil
}

// readURLFile returns every line of path, or of stdin when path is "-".
// Lines are returned as-is; the batch normalizer trims and drops blanks.
func readURLFile(path string, stdin io.Reader) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening URL file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading URL file: %w", err)
	}
	return lines, nil
}
