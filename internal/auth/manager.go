// File: internal/auth/manager.go

// Package auth decides whether a platform session is usable and drives
// interactive login when it is not.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spreado/spreado-cli/internal/browser"
	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/credstore"
	"github.com/spreado/spreado-cli/internal/platform"
)

// Failure reports that a platform could not be authenticated: the session is
// absent or invalid and auto-login was disabled or did not complete.
type Failure struct {
	Platform string
	Reason   string
}

func (e *Failure) Error() string {
	return fmt.Sprintf("authentication failed for %s: %s", e.Platform, e.Reason)
}

// Status is the derived authentication state of a platform. Never persisted.
type Status struct {
	SessionBlobExists bool `json:"session_blob_exists"`
	SessionValid      bool `json:"session_valid"`
	Authenticated     bool `json:"authenticated"`
}

// Manager composes the credential store and the browser pool into the
// authentication state machine.
type Manager struct {
	store *credstore.Store
	pool  *browser.Pool
	cfg   *config.Config
	log   *zap.Logger
}

// NewManager creates an authentication manager.
func NewManager(store *credstore.Store, pool *browser.Pool, cfg *config.Config, logger *zap.Logger) *Manager {
	return &Manager{
		store: store,
		pool:  pool,
		cfg:   cfg,
		log:   logger.Named("auth"),
	}
}

// CheckAccountFileExists reports whether a session blob is on disk.
func (m *Manager) CheckAccountFileExists(adapter platform.Adapter) bool {
	return m.store.Exists(adapter.Name())
}

// VerifySession loads the stored session into a fresh headless context,
// opens the platform's authenticated-only page and checks for a login wall.
// Absence of every login-required selector within the bounded wait means the
// session is valid. The lease and context are released on every path.
func (m *Manager) VerifySession(ctx context.Context, adapter platform.Adapter) (bool, error) {
	name := adapter.Name()

	blob, err := m.store.Load(name)
	if err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	verifyCtx, cancel := context.WithTimeout(ctx, m.cfg.Publish.VerifyTimeout)
	defer cancel()

	lease, err := m.pool.Acquire(verifyCtx, browser.LaunchOptions{
		Headless:       true,
		ExecutablePath: m.cfg.Browser.ExecutablePath,
		Args:           m.cfg.Browser.Args,
	})
	if err != nil {
		return false, err
	}
	defer lease.Release()

	session, err := lease.NewSession(verifyCtx, browser.SessionOptions{
		Platform:     name,
		StorageState: blob,
	})
	if err != nil {
		return false, err
	}
	defer session.Close(context.WithoutCancel(ctx))

	page := session.Page()
	if err := page.Navigate(verifyCtx, adapter.UploadURL()); err != nil {
		m.log.Warn("Navigation failed during session verification.",
			zap.String("platform", name), zap.Error(err))
		return false, nil
	}

	// Client-rendered login walls can appear after DOMContentLoaded.
	waitSettle(verifyCtx, 3*time.Second)

	if loginRequired(page, adapter.LoginSelectors()) {
		m.log.Info("Stored session is no longer valid.", zap.String("platform", name))
		return false, nil
	}

	m.log.Info("Stored session verified.", zap.String("platform", name))
	return true, nil
}

// PerformInteractiveLogin opens a headful context at the platform's login
// page and races three outcomes: navigation to the success URL, the operator
// closing the page, and the overall login timeout. The session blob is saved
// only on success.
func (m *Manager) PerformInteractiveLogin(ctx context.Context, adapter platform.Adapter) (bool, error) {
	name := adapter.Name()

	lease, err := m.pool.Acquire(ctx, browser.LaunchOptions{
		Headless:       false,
		ExecutablePath: m.cfg.Browser.ExecutablePath,
		Args:           m.cfg.Browser.Args,
	})
	if err != nil {
		return false, err
	}
	defer lease.Release()

	session, err := lease.NewSession(ctx, browser.SessionOptions{Platform: name})
	if err != nil {
		return false, err
	}
	defer session.Close(context.WithoutCancel(ctx))

	page := session.Page()
	if err := page.Navigate(ctx, adapter.LoginURL()); err != nil {
		return false, fmt.Errorf("failed to open login page: %w", err)
	}

	m.log.Info("Login page opened; complete the login in the browser window.",
		zap.String("platform", name),
		zap.Duration("timeout", m.cfg.Publish.LoginTimeout),
	)

	err = page.WaitForURL(ctx, func(u string) bool {
		return MatchesTarget(u, adapter.SuccessURLPattern())
	}, m.cfg.Publish.LoginTimeout)
	switch {
	case err == nil:
		// Success navigation observed; persist the fresh session.
	case errors.Is(err, browser.ErrPageClosed):
		m.log.Warn("Login page was closed before completing login.", zap.String("platform", name))
		return false, nil
	case errors.Is(err, context.DeadlineExceeded):
		m.log.Warn("Interactive login timed out.", zap.String("platform", name))
		return false, nil
	default:
		return false, err
	}

	blob, err := session.ExportState(ctx)
	if err != nil {
		return false, fmt.Errorf("login succeeded but session export failed: %w", err)
	}
	if err := m.store.Save(name, blob); err != nil {
		return false, err
	}

	m.log.Info("Interactive login succeeded; session saved.", zap.String("platform", name))
	return true, nil
}

// EnsureAuthenticated walks the authentication state machine: a missing or
// invalid session triggers interactive login only when autoLogin is set.
func (m *Manager) EnsureAuthenticated(ctx context.Context, adapter platform.Adapter, autoLogin bool) (bool, error) {
	name := adapter.Name()

	if !m.CheckAccountFileExists(adapter) {
		if !autoLogin {
			m.log.Warn("No stored session and auto-login is disabled.", zap.String("platform", name))
			return false, nil
		}
		m.log.Info("No stored session; starting interactive login.", zap.String("platform", name))
		return m.PerformInteractiveLogin(ctx, adapter)
	}

	valid, err := m.VerifySession(ctx, adapter)
	if err != nil {
		return false, err
	}
	if valid {
		return true, nil
	}

	if !autoLogin {
		m.log.Warn("Stored session is invalid and auto-login is disabled.", zap.String("platform", name))
		return false, nil
	}
	m.log.Info("Stored session is invalid; starting interactive login.", zap.String("platform", name))
	return m.PerformInteractiveLogin(ctx, adapter)
}

// GetStatus derives the authentication status without triggering login.
func (m *Manager) GetStatus(ctx context.Context, adapter platform.Adapter) (Status, error) {
	status := Status{SessionBlobExists: m.CheckAccountFileExists(adapter)}
	if status.SessionBlobExists {
		valid, err := m.VerifySession(ctx, adapter)
		if err != nil {
			return status, err
		}
		status.SessionValid = valid
	}
	status.Authenticated = status.SessionBlobExists && status.SessionValid
	return status, nil
}

// loginRequired reports whether any login-wall selector is visible. Selector
// errors are tolerated per-selector; a broken selector must not fail the
// whole check.
func loginRequired(page browser.Page, selectors []string) bool {
	for _, selector := range selectors {
		count, err := page.Count(selector)
		if err != nil || count == 0 {
			continue
		}
		if visible, err := page.IsVisible(selector); err == nil && visible {
			return true
		}
	}
	return false
}

// waitSettle gives client-side apps a moment to render the login wall after
// the navigation completes.
func waitSettle(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
