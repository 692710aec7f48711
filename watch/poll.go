package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is how often a Poller checks its file.
const DefaultInterval = time.Second

type fileState struct {
	exists bool
	size   int64
	mod    time.Time
}

func (s fileState) equal(o fileState) bool {
	return s.exists == o.exists && s.size == o.size && s.mod.Equal(o.mod)
}

// Poller detects changes to a file by comparing its size and modification
// time. Checks are paced by a token bucket, one per Interval.
type Poller struct {
	Path     string
	Interval time.Duration

	mu   sync.Mutex
	last fileState
}

// NewPoller creates a Poller. A non-positive interval uses DefaultInterval.
func NewPoller(path string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{Path: path, Interval: interval}
}

func (p *Poller) stat() (fileState, error) {
	fi, err := os.Stat(p.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return fileState{}, nil
	}
	if err != nil {
		return fileState{}, err
	}
	return fileState{exists: true, size: fi.Size(), mod: fi.ModTime()}, nil
}

// Rebase records the file's current state as seen, so a write made by the
// caller itself is not reported as a change.
func (p *Poller) Rebase() error {
	s, err := p.stat()
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.last = s
	p.mu.Unlock()
	return nil
}

// Modified reports whether the file differs from the last state seen,
// without recording it. A later Check still reports the change.
func (p *Poller) Modified() (bool, error) {
	s, err := p.stat()
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return !s.equal(p.last), nil
}

// Check reports whether the file changed since the last Check or Rebase.
func (p *Poller) Check() (bool, error) {
	s, err := p.stat()
	if err != nil {
		return false, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if s.equal(p.last) {
		return false, nil
	}
	p.last = s
	return true, nil
}

// Run checks the file until ctx is canceled, calling onChange after each
// detected change. Changes are measured from the last Rebase, so a write
// landing before Run starts is still reported. It returns the context's
// error on cancellation and the first error from a check or from onChange
// otherwise.
func (p *Poller) Run(ctx context.Context, onChange func(context.Context) error) error {
	return Every(ctx, p.Interval, func(ctx context.Context) error {
		changed, err := p.Check()
		if err != nil || !changed {
			return err
		}
		return onChange(ctx)
	})
}

// Every calls fn once per interval until ctx is canceled or fn fails. The
// first call happens one interval after Every is called. Calls are paced
// by a token bucket, so a slow fn delays the next call instead of queueing
// several.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		interval = DefaultInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	// The bucket starts full; drain it so the first call waits an interval.
	limiter.Allow()

	for {
		if err := limiter.Wait(ctx); err != nil {
			// Wait fails early when the deadline falls before the next
			// token; report the deadline itself once it passes.
			<-ctx.Done()
			return ctx.Err()
		}
		if err := fn(ctx); err != nil {
			return err
		}
	}
}
