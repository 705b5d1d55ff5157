// Package main is the entry point for the acc-provision CLI.
//
// acc-provision derives a complete deployment configuration for the ACI
// container-networking integration from a small user-supplied input file,
// then renders a Kubernetes deployment manifest and a fabric-controller
// provisioning descriptor, optionally applying the latter to the fabric.
//
// For detailed usage information, run:
//
//	acc-provision --help
package main

import (
	"os"

	"github.com/noiro/accprovision/cmd/accprovision/commands"
	"github.com/noiro/accprovision/internal/logging"
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
		logger := logging.New(os.Stderr)
		logger.Error().Msgf("%v", err)
		os.Exit(1)
	}
}
