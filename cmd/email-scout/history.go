// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/email-scout/internal/history"
	"github.com/pdiddy/email-scout/internal/search"
	"github.com/pdiddy/email-scout/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List, show, prune and export saved results",
	Long: `History manages the local record of past scrapes and searches. The
newest 10 single scrapes, 5 batches and 5 searches are kept; older records
are pruned as new ones are saved. Records are addressed by ID or any unique
ID prefix.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved records, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	kind, err := kindFlag(cmd)
	if err != nil {
		return err
	}
	return withStore(func(ctx context.Context, store *history.Store) error {
		records, err := store.List(ctx, kind)
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return history.ExportJSON(os.Stdout, records)
		}
		formatRecords(os.Stdout, records)
		return nil
	})
}

func formatRecords(w io.Writer, records []history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No saved results.")
		return
	}
	fmt.Fprintf(w, "%-8s  %-6s  %-19s  %-5s  %s\n", "ID", "Kind", "Saved", "Count", "Label")
	fmt.Fprintln(w, strings.Repeat("-", 90))
	for _, r := range records {
		fmt.Fprintf(w, "%-8s  %-6s  %-19s  %-5d  %s\n",
			shortID(r.ID), r.Kind, r.CreatedAt.Local().Format("2006-01-02 15:04:05"), r.Count, r.Label)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one saved result",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	return withStore(func(ctx context.Context, store *history.Store) error {
		rec, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}
		v, err := rec.Decode()
		if err != nil {
			return err
		}
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return writeJSON(os.Stdout, v)
		}
		fmt.Fprintf(os.Stdout, "%s  %s  %s\n\n", rec.ID, rec.Kind, rec.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		switch p := v.(type) {
		case *types.SingleResult:
			printSingle(os.Stdout, *p)
		case *types.BatchReport:
			printBatch(os.Stdout, *p)
		case *types.SearchReport:
			search.FormatTable(*p, os.Stdout)
		}
		return nil
	})
}

// --- remove subcommand ---

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Delete one saved result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *history.Store) error {
			return store.Remove(ctx, args[0])
		})
	},
}

// --- clear subcommand ---

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all saved results, or all of one kind",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := kindFlag(cmd)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, store *history.Store) error {
			n, err := store.Clear(ctx, kind)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "Removed %d record(s).\n", n)
			return nil
		})
	},
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved results as YAML, JSON, or an email CSV",
	Long: `Export writes saved records to --out (stdout by default). yaml and json
include every record with its full result; csv writes one email,source_url
row per address found by single and batch scrapes.`,
	Args: cobra.NoArgs,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	kind, err := kindFlag(cmd)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	w := io.Writer(os.Stdout)
	if out != "" && out != "-" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating export file: %w", err)
		}
		defer f.Close()
		w = f
	}

	err = withStore(func(ctx context.Context, store *history.Store) error {
		return store.Export(ctx, w, kind, format)
	})
	if err == nil && out != "" && out != "-" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", out)
	}
	return err
}

// --- shared helpers ---

func withStore(fn func(ctx context.Context, store *history.Store) error) error {
	store, err := history.Open(historyConfig())
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(context.Background(), store)
}

func kindFlag(cmd *cobra.Command) (history.Kind, error) {
	s, _ := cmd.Flags().GetString("kind")
	return history.ParseKind(strings.ToLower(s))
}

func init() {
	historyListCmd.Flags().String("kind", "", "only records of this kind: single, batch, search")
	historyListCmd.Flags().Bool("json", false, "output records as JSON")

	historyShowCmd.Flags().Bool("json", false, "output the saved result as JSON")

	historyClearCmd.Flags().String("kind", "", "only clear records of this kind")

	historyExportCmd.Flags().String("kind", "", "only export records of this kind")
	historyExportCmd.Flags().String("format", history.FormatYAML, "export format: yaml, json or csv")
	historyExportCmd.Flags().String("out", "", "write to this file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyRemoveCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
