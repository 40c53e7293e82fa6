// File: internal/browser/pool.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pool amortizes the cost of launching a browser process across sequential
// and concurrent operations. At most one process is alive per pool; callers
// hold leases, never the process itself. When the reference count drops to
// zero the process is closed within a bounded grace period.
type Pool struct {
	launcher   Launcher
	closeGrace time.Duration
	log        *zap.Logger

	mu     sync.Mutex
	proc   Process
	refs   int
	frozen *LaunchOptions
}

// Lease is a caller's reference-counted claim on the shared process.
type Lease struct {
	pool *Pool

	mu       sync.Mutex
	released bool
	proc     Process
}

// NewPool creates a pool around the given launcher. closeGrace bounds how
// long a zero-refcount close may take before the wait is abandoned.
func NewPool(launcher Launcher, closeGrace time.Duration, logger *zap.Logger) *Pool {
	return &Pool{
		launcher:   launcher,
		closeGrace: closeGrace,
		log:        logger.Named("browser_pool"),
	}
}

// Acquire returns a lease on the shared process, launching it if no process
// is alive. The first successful launch freezes the configuration for the
// pool's lifetime; later acquires with differing options reuse the existing
// process and log the drift.
func (p *Pool) Acquire(ctx context.Context, opts LaunchOptions) (*Lease, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.proc == nil {
		launchOpts := opts
		if p.frozen != nil {
			// Relaunch after an idle close keeps the original configuration.
			launchOpts = *p.frozen
		}
		proc, err := p.launcher.Launch(ctx, launchOpts)
		if err != nil {
			// Failed launch must not disturb the reference count.
			return nil, &LaunchError{Err: err}
		}
		p.proc = proc
		if p.frozen == nil {
			frozen := opts
			p.frozen = &frozen
			p.log.Info("Browser process launched.",
				zap.Bool("headless", opts.Headless),
				zap.String("executable", opts.ExecutablePath),
			)
		}
	} else if p.frozen != nil && !opts.equal(*p.frozen) {
		p.log.Warn("Ignoring differing launch options; first configuration wins for the pool's lifetime.",
			zap.Bool("requested_headless", opts.Headless),
			zap.Bool("active_headless", p.frozen.Headless),
		)
	}

	p.refs++
	return &Lease{pool: p, proc: p.proc}, nil
}

// Refs returns the current reference count.
func (p *Pool) Refs() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refs
}

// Alive reports whether a process is currently held by the pool.
func (p *Pool) Alive() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.proc != nil
}

// NewSession creates an isolated session context on the leased process.
func (l *Lease) NewSession(ctx context.Context, opts SessionOptions) (SessionContext, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.released {
		return nil, fmt.Errorf("lease already released")
	}
	return l.proc.NewSession(ctx, opts)
}

// Release returns the lease. When the reference count reaches zero the
// process is closed; if the close hangs past the pool's grace period the
// wait is abandoned rather than blocking the caller. Releasing twice is a
// no-op.
func (l *Lease) Release() {
	l.mu.Lock()
	if l.released {
		l.mu.Unlock()
		return
	}
	l.released = true
	l.mu.Unlock()

	p := l.pool

	p.mu.Lock()
	p.refs--
	if p.refs > 0 {
		p.mu.Unlock()
		return
	}
	proc := p.proc
	p.proc = nil
	p.mu.Unlock()

	if proc == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := proc.Close(); err != nil {
			p.log.Warn("Error closing browser process.", zap.Error(err))
		}
	}()

	select {
	case <-done:
		p.log.Debug("Browser process closed.")
	case <-time.After(p.closeGrace):
		p.log.Warn("Timeout closing browser process; abandoning the wait.",
			zap.Duration("grace", p.closeGrace))
	}
}
