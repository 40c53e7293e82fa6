// File: cmd/root.go
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/observability"

	// Platform adapters register themselves on import.
	_ "github.com/spreado/spreado-cli/internal/platform/douyin"
	_ "github.com/spreado/spreado-cli/internal/platform/kuaishou"
	_ "github.com/spreado/spreado-cli/internal/platform/tencent"
	_ "github.com/spreado/spreado-cli/internal/platform/xiaohongshu"
)

// NewRootCommand builds a fresh command tree. Each invocation gets its own
// flag state so tests and interactive callers never leak flags between runs.
func NewRootCommand() *cobra.Command {
	var cfgFile string
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:           "spreado",
		Short:         "Spreado publishes video content to Chinese social platforms from the command line.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := initializeViper(cfgFile)
			if err != nil {
				return err
			}
			if f := cmd.Root().PersistentFlags().Lookup("headless"); f != nil && f.Changed {
				if err := v.BindPFlag("browser.headless", f); err != nil {
					return err
				}
			}

			loaded, err := config.NewConfigFromViper(v)
			if err != nil {
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "spreado"})
				return fmt.Errorf("failed to load config: %w", err)
			}
			*cfg = *loaded

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Starting spreado", zap.String("version", Version))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().Bool("headless", true, "run the browser headless (login always opens a window)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(
		newLoginCmd(cfg),
		newVerifyCmd(cfg),
		newStatusCmd(cfg),
		newUploadCmd(cfg),
	)
	return rootCmd
}

// Execute runs the CLI with a signal-aware context.
func Execute(ctx context.Context) error {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger := observability.GetLogger(); logger != nil {
			logger.Error("Command execution failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	return nil
}

// initializeViper reads the config file (when present) and the SPREADO_*
// environment, on top of the built-in defaults.
func initializeViper(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SPREADO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars apply.
	}
	return v, nil
}
