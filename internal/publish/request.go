// File: internal/publish/request.go
package publish

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"
)

// Request describes one publish attempt. MediaFilePath is the only required
// field; everything else has a documented zero-value behavior.
type Request struct {
	MediaFilePath  string
	Title          string
	Description    string
	// Tags are applied in slice order, once each.
	Tags           []string
	CoverImagePath string
	// ScheduledAt, when set and strictly in the future, requests timed
	// publish. A past or zero time means publish immediately.
	ScheduledAt *time.Time
	// Extra carries adapter-specific options that have no common field.
	Extra map[string]string
}

// Validate checks the parts of the request that can be verified before any
// browser work starts.
func (r *Request) Validate() error {
	if r.MediaFilePath == "" {
		return fmt.Errorf("media file path is required")
	}
	info, err := os.Stat(r.MediaFilePath)
	if err != nil {
		return fmt.Errorf("media file %q: %w", r.MediaFilePath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("media file %q is a directory", r.MediaFilePath)
	}
	return nil
}

// EffectiveTitle returns the title truncated to limit runes, falling back to
// the media file's base name when no title was given. Truncation is by rune,
// never by byte, so multi-byte titles stay valid.
func (r *Request) EffectiveTitle(limit int) string {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		base := r.MediaFilePath
		if i := strings.LastIndexAny(base, `/\`); i >= 0 {
			base = base[i+1:]
		}
		if j := strings.LastIndex(base, "."); j > 0 {
			base = base[:j]
		}
		title = base
	}
	if limit > 0 && utf8.RuneCountInString(title) > limit {
		runes := []rune(title)
		title = string(runes[:limit])
	}
	return title
}

// ScheduleTime returns the requested publish time when it is strictly in the
// future relative to now, or nil for immediate publish.
func (r *Request) ScheduleTime(now time.Time) *time.Time {
	if r.ScheduledAt == nil || !r.ScheduledAt.After(now) {
		return nil
	}
	return r.ScheduledAt
}

// Result is the outcome of one pipeline run.
type Result struct {
	Platform  string    `json:"platform"`
	Succeeded bool      `json:"succeeded"`
	// Confirmed is false when success is optimistic: the publish click went
	// through but the platform never showed its confirmation signal inside
	// the confirmation window.
	Confirmed  bool      `json:"confirmed"`
	Reason     string    `json:"reason,omitempty"`
	LastURL    string    `json:"last_url,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}
