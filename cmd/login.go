// File: cmd/login.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/platform"
)

func newLoginCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "login <platform>",
		Short: "Opens a browser window for interactive login and saves the session",
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

			comps.Log.Info("Starting interactive login", zap.String("platform", adapter.Name()))
			ok, err := comps.Auth.PerformInteractiveLogin(ctx, adapter)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if !ok {
				return fmt.Errorf("login to %s did not complete", adapter.Name())
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Login to %s succeeded; session saved to %s\n",
				adapter.Name(), comps.Store.Path(adapter.Name()))
			return nil
		},
	}
}
