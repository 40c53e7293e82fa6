// File: internal/platform/adapter.go

// Package platform defines the contract every destination platform adapter
// implements. The publish pipeline runs unmodified against any conforming
// adapter; all platform knowledge (URLs, selectors, stage interactions)
// lives behind this interface.
package platform

import (
	"context"
	"time"

	"github.com/spreado/spreado-cli/internal/browser"
)

// Adapter exposes a platform's endpoints, login detection selectors and the
// stage interactions of the upload flow.
type Adapter interface {
	// Name is the platform identifier used for session files and logs.
	Name() string
	// LoginURL is opened for interactive login.
	LoginURL() string
	// UploadURL is the authenticated-only upload page.
	UploadURL() string
	// SuccessURLPattern matches the URL reached after a successful publish.
	// It doubles as the interactive-login success signal.
	SuccessURLPattern() string
	// LoginSelectors detect a login wall; any visible match means the
	// session is invalid. Ordered, first visible match wins.
	LoginSelectors() []string
	// TitleLimit is the platform's maximum title length in runes. Longer
	// titles are truncated, never rejected.
	TitleLimit() int

	// SubmitMedia injects the media file into the upload control.
	SubmitMedia(ctx context.Context, page browser.Page, mediaPath string) error
	// ProcessingDone is one poll probe of the await-processing loop: has
	// the platform finished ingesting the media? Errors are treated as
	// transient by the pipeline unless classified fatal.
	ProcessingDone(ctx context.Context, page browser.Page) (bool, error)
	ApplyTitle(ctx context.Context, page browser.Page, title string) error
	ApplyDescription(ctx context.Context, page browser.Page, description string) error
	// ApplyTag adds a single tag. The pipeline calls it once per tag in
	// insertion order and degrades per-tag on failure.
	ApplyTag(ctx context.Context, page browser.Page, tag string) error
	ApplyCover(ctx context.Context, page browser.Page, coverPath string) error
	ApplySchedule(ctx context.Context, page browser.Page, at time.Time) error
	// Submit performs the primary publish action.
	Submit(ctx context.Context, page browser.Page) error
	// ConfirmDone is one poll probe of the await-confirmation loop. It
	// acknowledges any secondary confirm dialog it finds and reports
	// whether a definitive success signal was observed.
	ConfirmDone(ctx context.Context, page browser.Page) (bool, error)
}
