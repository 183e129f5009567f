// Package main is the contentaudit command. It reports how much of the
// block template catalog the content library uses and checks the usage
// ledger against the catalog.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
