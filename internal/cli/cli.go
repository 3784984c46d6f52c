// SPDX-License-Identifier: MIT

// Package cli implements the cartogram command-line interface.
//
// # Commands
//
//   - run: read regions from a GeoJSON FeatureCollection, deform them so
//     each region's area follows a numeric property, write GeoJSON back.
//   - verify: check a spectral backend against the numeric fixtures.
//
// # Configuration
//
// Engine settings come from an optional TOML file (--config); individual
// flags override the file. See Config for the recognised keys.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels through context.Context and is handed to the engine.
package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	version = "dev" // set with SetVersion
	commit  string
	date    string
)

// SetVersion sets the information printed by --version.
func SetVersion(v, c, d string) {
	version, commit, date = v, c, d
}

// Execute runs the CLI with ctx and returns the first command error.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "cartogram",
		Short:         "Cartogram builds density-equalizing maps",
		Long:          `Cartogram deforms a map so that every region's area is proportional to a chosen value, keeping neighbouring regions attached (Gastner–Newman flow method).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("cartogram %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRunCmd())
	root.AddCommand(newVerifyCmd())

	return root
}
