// File: internal/browser/browser.go

// Package browser owns the shared browser process and the per-operation
// session contexts created on top of it. The process is launched lazily,
// reference counted, and torn down when the last lease is released.
package browser

import (
	"context"
	"fmt"
	"time"
)

// LaunchOptions fixes the browser process configuration. The pool freezes
// the options of the first successful launch for its lifetime.
type LaunchOptions struct {
	Headless       bool
	ExecutablePath string
	Args           []string
}

func (o LaunchOptions) equal(other LaunchOptions) bool {
	if o.Headless != other.Headless || o.ExecutablePath != other.ExecutablePath {
		return false
	}
	if len(o.Args) != len(other.Args) {
		return false
	}
	for i := range o.Args {
		if o.Args[i] != other.Args[i] {
			return false
		}
	}
	return true
}

// SessionOptions configures a new isolated session context.
type SessionOptions struct {
	// Platform tags logs and session IDs.
	Platform string
	// StorageState is an opaque serialized cookie/storage snapshot to seed
	// the context with. Empty means a fresh, logged-out context.
	StorageState []byte
}

// Process is a live browser process capable of hosting isolated contexts.
// The concrete implementation wraps Playwright; tests inject fakes.
type Process interface {
	NewSession(ctx context.Context, opts SessionOptions) (SessionContext, error)
	Close() error
}

// Launcher starts browser processes.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Process, error)
}

// SessionContext is one isolated cookie/storage jar with a single page,
// bound 1:1 to a publish or verification attempt. Never shared between
// concurrent attempts, never cached.
type SessionContext interface {
	ID() string
	Page() Page
	// ExportState serializes the context's cookies and storage into an
	// opaque blob suitable for credstore.Save.
	ExportState(ctx context.Context) ([]byte, error)
	Close(ctx context.Context) error
}

// Page is the capability surface the pipeline and adapters drive. Selector
// strings use Playwright syntax (including text= engines).
type Page interface {
	Navigate(ctx context.Context, url string) error
	URL() string
	Count(selector string) (int, error)
	IsVisible(selector string) (bool, error)
	Click(selector string) error
	Fill(selector, value string) error
	Type(selector, text string, delay time.Duration) error
	Press(selector, key string) error
	SetInputFiles(selector, path string) error
	WaitForSelector(selector string, timeout time.Duration) error
	// WaitForURL polls the current URL until match reports true. Returns
	// ErrPageClosed if the page is closed while waiting and
	// context.DeadlineExceeded when the timeout expires.
	WaitForURL(ctx context.Context, match func(string) bool, timeout time.Duration) error
	Closed() bool
}

// ErrPageClosed reports that the page was closed (by the operator or the
// platform) while an operation was waiting on it.
var ErrPageClosed = fmt.Errorf("page closed")

// LaunchError wraps a browser process launch failure. An acquire that fails
// to launch leaves the pool's reference count untouched.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string { return fmt.Sprintf("browser launch failed: %v", e.Err) }
func (e *LaunchError) Unwrap() error { return e.Err }
