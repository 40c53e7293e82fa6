// File: cmd/verify.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/platform"
)

func newVerifyCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <platform>",
		Short: "Checks whether the saved session is still accepted by the platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			adapter, err := platform.New(args[0])
			if err != nil {
				return err
			}

			comps, err := buildComponents(cfg)
			if err != nil {
				return err
			}

			valid, err := comps.Auth.VerifySession(ctx, adapter)
			if err != nil {
				return fmt.Errorf("verification failed: %w", err)
			}

			comps.Log.Info("Session verification finished",
				zap.String("platform", adapter.Name()), zap.Bool("valid", valid))
			if !valid {
				return fmt.Errorf("session for %s is missing or expired, run 'spreado login %s'",
					adapter.Name(), adapter.Name())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session for %s is valid\n", adapter.Name())
			return nil
		},
	}
}
