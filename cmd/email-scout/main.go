// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the email-scout CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/email-scout/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

// log is the process logger, set up in PersistentPreRunE.
var log logrus.FieldLogger = logging.Discard()

var closeLog = func() error { return nil }

// rootCmd is the base command for the email-scout CLI.
var rootCmd = &cobra.Command{
	Use:   "email-scout",
	Short: "Find contact email addresses on websites",
	Long: `email-scout fetches web pages and collects the email addresses they
publish, including addresses hidden behind CDN email protection.

scrape takes one URL, batch takes up to 50, and search finds candidate
websites for a keyword (optionally scraping them straight away). Results
are kept in a local history unless --no-history is given.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lc := logConfig()
		l, closeFn, err := logging.New(lc.Level, lc.File, os.Stderr)
		if err != nil {
			return err
		}
		log, closeLog = l, closeFn
		if f := viper.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults()

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./email-scout.yaml or ~/.config/email-scout/config.yaml)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error (default warn)")
	pf.String("log-file", "", "also append log lines to this file")
	pf.String("history-db", "", "history database path (default ~/.local/share/email-scout/history.db)")
	pf.Bool("no-history", false, "do not save results to history")
	pf.String("user-agent", "", "override the desktop browser User-Agent")

	bindFlag(pf.Lookup("log-level"), "log.level")
	bindFlag(pf.Lookup("log-file"), "log.file")
	bindFlag(pf.Lookup("history-db"), "history.path")
	bindFlag(pf.Lookup("no-history"), "history.disabled")
	bindFlag(pf.Lookup("user-agent"), "scrape.user_agent")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("email-scout")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "email-scout"))
		}
	}

	viper.SetEnvPrefix("EMAIL_SCOUT")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			fmt.Fprintf(os.Stderr, "warning: reading config: %v\n", err)
		}
	}
}

// commandContext returns a context cancelled on SIGINT or SIGTERM, so a
// batch stops dispatching and reports the remaining URLs as cancelled.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
