//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Scout groups targets that run the built CLI.
type Scout mg.Namespace

// Scrape builds the CLI and scrapes one URL as a smoke test.
func (Scout) Scrape(url string) error {
	mg.Deps(Build)
	return sh.RunV("bin/email-scout", "scrape", "--no-history", url)
}

// Search builds the CLI and runs a keyword search as a smoke test.
func (Scout) Search(keyword string) error {
	mg.Deps(Build)
	return sh.RunV("bin/email-scout", "search", "--no-history", "--limit", "10", keyword)
}
