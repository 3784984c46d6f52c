package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/cartogram/spectral"
)

func newVerifyCmd() *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a spectral backend against the numeric fixtures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := DefaultConfig()
			cfg.Backend = backend
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := spectral.Verify(cfg.transformer()); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("fixtures passed", "backend", backend)
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", backend)
			return err
		},
	}
	cmd.Flags().StringVar(&backend, "backend", BackendFFT, "spectral backend: fft, quarterwave or direct")

	return cmd
}
