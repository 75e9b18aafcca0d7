// Package main is the entry point for the gkeops CLI.
//
// gkeops manages the full lifecycle of the AI demo stack on Google
// Kubernetes Engine: project bootstrap, infrastructure provisioning,
// application deploys, cost-aware pause/resume and teardown.
//
// For detailed usage information, run:
//
//	gkeops --help
package main

import (
	"fmt"
	"os"

	"github.com/aiconcierge/gkeops/cmd/gkeops/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
