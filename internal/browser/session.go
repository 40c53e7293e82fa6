// File: internal/browser/session.go
package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Session is one isolated browser context with a single page. It is created
// fresh for every operation and destroyed when the operation ends.
type Session struct {
	id       string
	platform string
	pwCtx    playwright.BrowserContext
	page     *playwrightPage
	log      *zap.Logger

	mu       sync.Mutex
	isClosed bool
}

var _ SessionContext = (*Session)(nil)

func newSession(platform string, pwCtx playwright.BrowserContext, page playwright.Page, logger *zap.Logger) *Session {
	id := uuid.New().String()
	return &Session{
		id:       id,
		platform: platform,
		pwCtx:    pwCtx,
		page:     &playwrightPage{page: page},
		log: logger.Named("session").With(
			zap.String("session_id", id),
			zap.String("platform", platform),
		),
	}
}

// ID returns the unique identifier for the session.
func (s *Session) ID() string { return s.id }

// Page returns the session's page.
func (s *Session) Page() Page { return s.page }

// ExportState serializes the context's cookies and storage into an opaque
// blob. Callers persist it through the credential store without parsing it.
func (s *Session) ExportState(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	state, err := s.pwCtx.StorageState()
	if err != nil {
		return nil, fmt.Errorf("failed to export storage state: %w", err)
	}
	blob, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize storage state: %w", err)
	}
	return blob, nil
}

// Close destroys the page and the context. Idempotent; runs on every exit
// path of the owning operation.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.isClosed {
		s.mu.Unlock()
		return nil
	}
	s.isClosed = true
	s.mu.Unlock()

	s.log.Debug("Closing session.")

	if !s.page.Closed() {
		if err := s.page.page.Close(); err != nil {
			s.log.Warn("Error closing page.", zap.Error(err))
		}
	}
	if err := s.pwCtx.Close(); err != nil {
		return fmt.Errorf("failed to close browser context: %w", err)
	}
	return nil
}

// playwrightPage adapts playwright.Page to the Page capability surface.
type playwrightPage struct {
	page playwright.Page
}

var _ Page = (*playwrightPage)(nil)

func (p *playwrightPage) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.page.IsClosed() {
		return ErrPageClosed
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

func (p *playwrightPage) URL() string {
	if p.page.IsClosed() {
		return ""
	}
	return p.page.URL()
}

func (p *playwrightPage) Count(selector string) (int, error) {
	return p.page.Locator(selector).Count()
}

func (p *playwrightPage) IsVisible(selector string) (bool, error) {
	return p.page.Locator(selector).First().IsVisible()
}

func (p *playwrightPage) Click(selector string) error {
	return p.page.Locator(selector).First().Click()
}

func (p *playwrightPage) Fill(selector, value string) error {
	return p.page.Locator(selector).First().Fill(value)
}

func (p *playwrightPage) Type(selector, text string, delay time.Duration) error {
	opts := playwright.LocatorPressSequentiallyOptions{}
	if delay > 0 {
		opts.Delay = playwright.Float(float64(delay.Milliseconds()))
	}
	return p.page.Locator(selector).First().PressSequentially(text, opts)
}

func (p *playwrightPage) Press(selector, key string) error {
	return p.page.Locator(selector).First().Press(key)
}

func (p *playwrightPage) SetInputFiles(selector, path string) error {
	return p.page.Locator(selector).First().SetInputFiles(path)
}

func (p *playwrightPage) WaitForSelector(selector string, timeout time.Duration) error {
	return p.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
}

// WaitForURL polls the page URL at a fixed cadence. Polling rather than a
// navigation event keeps the wait cancellable and tolerant of client-side
// redirects that never fire a full navigation.
func (p *playwrightPage) WaitForURL(ctx context.Context, match func(string) bool, timeout time.Duration) error {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if p.page.IsClosed() {
			return ErrPageClosed
		}
		if match(p.page.URL()) {
			return nil
		}
		select {
		case <-waitCtx.Done():
			return waitCtx.Err()
		case <-ticker.C:
		}
	}
}

func (p *playwrightPage) Closed() bool {
	return p.page.IsClosed()
}
