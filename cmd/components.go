// File: cmd/components.go
package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/spreado/spreado-cli/internal/auth"
	"github.com/spreado/spreado-cli/internal/browser"
	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/credstore"
	"github.com/spreado/spreado-cli/internal/observability"
	"github.com/spreado/spreado-cli/internal/publish"
)

// components bundles the long-lived collaborators every subcommand needs.
type components struct {
	Store    *credstore.Store
	Pool     *browser.Pool
	Auth     *auth.Manager
	Pipeline *publish.Pipeline
	Log      *zap.Logger
}

func buildComponents(cfg *config.Config) (*components, error) {
	log := observability.GetLogger()

	cookiesDir, err := cfg.Storage.CookiesDir()
	if err != nil {
		return nil, fmt.Errorf("resolve cookies dir: %w", err)
	}
	store := credstore.New(cookiesDir, log)

	launcher := browser.NewPlaywrightLauncher(cfg.Browser.InstallTimeout, cfg.Browser.LaunchTimeout, log)
	pool := browser.NewPool(launcher, cfg.Browser.CloseGrace, log)

	authMgr := auth.NewManager(store, pool, cfg, log)
	pipeline := publish.NewPipeline(authMgr, store, pool, cfg, log)

	return &components{
		Store:    store,
		Pool:     pool,
		Auth:     authMgr,
		Pipeline: pipeline,
		Log:      log,
	}, nil
}
