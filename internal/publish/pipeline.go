// File: internal/publish/pipeline.go

// Package publish runs the platform-independent upload flow. The pipeline is
// a fixed sequence of stages parameterized by a platform.Adapter; it owns
// resource acquisition and release, retry pacing, and the degrade-vs-fail
// decision at every stage.
package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spreado/spreado-cli/internal/auth"
	"github.com/spreado/spreado-cli/internal/browser"
	"github.com/spreado/spreado-cli/internal/config"
	"github.com/spreado/spreado-cli/internal/credstore"
	"github.com/spreado/spreado-cli/internal/platform"
)

// Pipeline executes publish requests against any platform adapter.
type Pipeline struct {
	auth  *auth.Manager
	store *credstore.Store
	pool  *browser.Pool
	cfg   *config.Config
	log   *zap.Logger
}

func NewPipeline(authMgr *auth.Manager, store *credstore.Store, pool *browser.Pool, cfg *config.Config, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		auth:  authMgr,
		store: store,
		pool:  pool,
		cfg:   cfg,
		log:   logger.Named("publish"),
	}
}

// Run executes one publish attempt end to end: authenticate, open a session,
// drive the adapter's upload stages, and persist the refreshed session blob.
// It never panics; adapter panics are recovered into a failed Result. All
// browser resources are released on every exit path.
func (p *Pipeline) Run(ctx context.Context, adapter platform.Adapter, req Request, autoLogin bool) (res Result) {
	res.Platform = adapter.Name()
	res.StartedAt = time.Now()
	defer func() { res.FinishedAt = time.Now() }()

	log := p.log.With(zap.String("platform", adapter.Name()))

	if err := req.Validate(); err != nil {
		res.Reason = err.Error()
		log.Error("Request rejected", zap.Error(err))
		return res
	}

	ok, err := p.auth.EnsureAuthenticated(ctx, adapter, autoLogin)
	if err != nil {
		res.Reason = fmt.Sprintf("authentication: %v", err)
		log.Error("Authentication failed", zap.Error(err))
		return res
	}
	if !ok {
		res.Reason = "not authenticated"
		log.Error("No valid session and auto-login is disabled")
		return res
	}

	blob, err := p.store.Load(adapter.Name())
	if err != nil {
		res.Reason = fmt.Sprintf("load session: %v", err)
		log.Error("Session blob unreadable after authentication", zap.Error(err))
		return res
	}

	lease, err := p.pool.Acquire(ctx, browser.LaunchOptions{
		Headless:       p.cfg.Browser.Headless,
		ExecutablePath: p.cfg.Browser.ExecutablePath,
		Args:           p.cfg.Browser.Args,
	})
	if err != nil {
		res.Reason = fmt.Sprintf("browser: %v", err)
		log.Error("Browser acquisition failed", zap.Error(err))
		return res
	}
	defer lease.Release()

	session, err := lease.NewSession(ctx, browser.SessionOptions{
		Platform:     adapter.Name(),
		StorageState: blob,
	})
	if err != nil {
		res.Reason = fmt.Sprintf("session: %v", err)
		log.Error("Session creation failed", zap.Error(err))
		return res
	}
	defer session.Close(context.WithoutCancel(ctx))

	p.drive(ctx, adapter, session, req, log, &res)
	return res
}

// drive runs the page-interaction stages. Split out so a panicking adapter
// unwinds here and the session/lease deferred cleanup in Run still fires.
func (p *Pipeline) drive(ctx context.Context, adapter platform.Adapter, session browser.SessionContext, req Request, log *zap.Logger, res *Result) {
	defer func() {
		if r := recover(); r != nil {
			res.Succeeded = false
			res.Reason = fmt.Sprintf("adapter panic: %v", r)
			res.LastURL = session.Page().URL()
			log.Error("Adapter panicked", zap.Any("panic", r), zap.Stack("stack"))
		}
	}()

	page := session.Page()
	fail := func(stage string, err error) {
		ierr := &InteractionError{Platform: adapter.Name(), Stage: stage, Err: err}
		res.Reason = ierr.Error()
		res.LastURL = page.URL()
		log.Error("Publish stage failed", zap.String("stage", stage), zap.Error(err))
	}

	navCtx, cancel := context.WithTimeout(ctx, p.cfg.Publish.NavigationTimeout)
	err := page.Navigate(navCtx, adapter.UploadURL())
	cancel()
	if err != nil {
		fail("navigate", err)
		return
	}

	log.Info("Submitting media", zap.String("file", req.MediaFilePath))
	if err := adapter.SubmitMedia(ctx, page, req.MediaFilePath); err != nil {
		fail("submit-media", err)
		return
	}

	processing := RetryPolicy{
		MaxAttempts: p.cfg.Publish.ProcessingMaxAttempts,
		Interval:    p.cfg.Publish.ProcessingPollInterval,
	}
	err = processing.Poll(ctx, func(ctx context.Context) (bool, error) {
		return adapter.ProcessingDone(ctx, page)
	})
	switch {
	case err == nil:
		log.Info("Media processing complete")
	case errors.Is(err, ErrBudgetExhausted):
		// Platforms keep transcoding in the background; metadata entry and
		// publish remain possible, so continue rather than abort.
		log.Warn("Media still processing after poll budget, continuing",
			zap.Int("attempts", processing.MaxAttempts))
	default:
		fail("await-processing", err)
		return
	}

	title := req.EffectiveTitle(adapter.TitleLimit())
	if err := adapter.ApplyTitle(ctx, page, title); err != nil {
		log.Warn("Title application failed, continuing", zap.Error(err))
	}
	if req.Description != "" {
		if err := adapter.ApplyDescription(ctx, page, req.Description); err != nil {
			log.Warn("Description application failed, continuing", zap.Error(err))
		}
	}
	for _, tag := range req.Tags {
		if err := adapter.ApplyTag(ctx, page, tag); err != nil {
			log.Warn("Tag application failed, continuing",
				zap.String("tag", tag), zap.Error(err))
		}
	}

	if req.CoverImagePath != "" {
		if _, statErr := os.Stat(req.CoverImagePath); statErr != nil {
			log.Warn("Cover image not found, skipping",
				zap.String("path", req.CoverImagePath), zap.Error(statErr))
		} else if err := adapter.ApplyCover(ctx, page, req.CoverImagePath); err != nil {
			log.Warn("Cover application failed, continuing", zap.Error(err))
		}
	}

	if at := req.ScheduleTime(time.Now()); at != nil {
		if err := adapter.ApplySchedule(ctx, page, *at); err != nil {
			log.Warn("Schedule application failed, publishing immediately",
				zap.Time("requested", *at), zap.Error(err))
		} else {
			log.Info("Publish scheduled", zap.Time("at", *at))
		}
	} else if req.ScheduledAt != nil {
		log.Warn("Requested publish time is not in the future, publishing immediately",
			zap.Time("requested", *req.ScheduledAt))
	}

	if err := adapter.Submit(ctx, page); err != nil {
		fail("submit", err)
		return
	}

	// The submit click already fired; a bad interval must not turn the
	// confirmation wait into a failed run.
	interval := p.cfg.Publish.ConfirmPollInterval
	if interval <= 0 {
		interval = time.Second
	}
	confirm := RetryPolicy{
		MaxAttempts: int(p.cfg.Publish.ConfirmTimeout/interval) + 1,
		Interval:    interval,
	}
	err = confirm.Poll(ctx, func(ctx context.Context) (bool, error) {
		if auth.MatchesTarget(page.URL(), adapter.SuccessURLPattern()) {
			return true, nil
		}
		return adapter.ConfirmDone(ctx, page)
	})
	res.LastURL = page.URL()
	switch {
	case err == nil:
		res.Succeeded = true
		res.Confirmed = true
		log.Info("Publish confirmed", zap.String("url", res.LastURL))
	case errors.Is(err, ErrBudgetExhausted):
		// The publish click went through; absence of the confirmation
		// signal is far more often a UI change than a real failure.
		res.Succeeded = true
		res.Confirmed = false
		res.Reason = "confirmation signal not observed"
		log.Warn("No confirmation signal within window, assuming success",
			zap.String("url", res.LastURL))
	default:
		fail("await-confirmation", err)
		return
	}

	p.refreshSession(ctx, adapter, session, log)
}

// refreshSession persists the post-publish cookie state so rolling session
// tokens survive. Failure is logged, not surfaced: the publish already
// happened and a stale blob only costs a re-login later.
func (p *Pipeline) refreshSession(ctx context.Context, adapter platform.Adapter, session browser.SessionContext, log *zap.Logger) {
	blob, err := session.ExportState(ctx)
	if err != nil {
		log.Warn("Session state export failed, keeping previous blob", zap.Error(err))
		return
	}
	if err := p.store.Save(adapter.Name(), blob); err != nil {
		log.Warn("Session blob refresh failed, keeping previous blob", zap.Error(err))
		return
	}
	log.Debug("Session blob refreshed")
}
