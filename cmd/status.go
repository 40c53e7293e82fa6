// File: cmd/status.go
package cmd

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/spreado/spreado-cli/internal/auth"
	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/platform"
)

func newStatusCmd(cfg *config.Config) *cobra.Command {
	var asJSON bool

	statusCmd := &cobra.Command{
		Use:   "status [platform...]",
		Short: "Shows the authentication status of one or all platforms",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			names := args
			if len(names) == 0 {
				names = platform.Names()
			}

			comps, err := buildComponents(cfg)
			if err != nil {
				return err
			}

			statuses := make(map[string]auth.Status, len(names))
			for _, name := range names {
				adapter, err := platform.New(name)
				if err != nil {
					return err
				}
				st, err := comps.Auth.GetStatus(ctx, adapter)
				if err != nil {
					return fmt.Errorf("status for %s: %w", adapter.Name(), err)
				}
				statuses[adapter.Name()] = st
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(statuses)
			}

			for _, name := range names {
				st := statuses[name]
				fmt.Fprintf(out, "%s:\n", name)
				fmt.Fprintf(out, "  session file:  %v\n", st.SessionBlobExists)
				fmt.Fprintf(out, "  session valid: %v\n", st.SessionValid)
				fmt.Fprintf(out, "  authenticated: %v\n", st.Authenticated)
			}
			return nil
		},
	}

	statusCmd.Flags().BoolVar(&asJSON, "json", false, "emit status as JSON")
	return statusCmd
}
