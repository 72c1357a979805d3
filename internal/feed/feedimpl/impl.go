package feedimpl

import (
	"context"
	"sync"

	"github.com/samber/lo"
	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/internal/feed"
	"github.com/storyreel/storyreel/internal/metrics"
	"github.com/storyreel/storyreel/internal/provider"
	"github.com/storyreel/storyreel/internal/session"
	"github.com/storyreel/storyreel/internal/viewer"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/errors"
	"github.com/storyreel/storyreel/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Provider provider.Client
	Sessions *session.Manager
	Config   *config.Config
	Logger   logger.Logger
}

type Impl struct {
	Provider provider.Client
	Sessions *session.Manager
	Logger   logger.Logger

	skeletonCount int

	mu      sync.RWMutex
	units   []domain.FeedUnit
	loading bool
	loaded  bool
}

func New(opts Opts) *Impl {
	return &Impl{
		Provider:      opts.Provider,
		Sessions:      opts.Sessions,
		Logger:        opts.Logger,
		skeletonCount: opts.Config.Feed.SkeletonCount,
	}
}

var _ feed.Feed = (*Impl)(nil)

func (f *Impl) Load(ctx context.Context) {
	f.mu.Lock()
	f.loading = true
	f.mu.Unlock()

	units, err := f.Provider.ListFeed(ctx)
	if err != nil {
		// Stories are a non-critical enhancement: log and hide the bar.
		f.Logger.Warn("Failed to load story feed, hiding the bar", "error", err)
		metrics.FeedLoadsTotal.WithLabelValues("error").Inc()
		units = nil
	} else {
		metrics.FeedLoadsTotal.WithLabelValues("ok").Inc()
	}

	// Server order is preserved; only units with nothing to show are dropped.
	units = lo.Filter(units, func(u domain.FeedUnit, _ int) bool {
		return u.Selectable()
	})

	f.mu.Lock()
	f.units = units
	f.loading = false
	f.loaded = true
	f.mu.Unlock()
}

func (f *Impl) Units() []domain.FeedUnit {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.units
}

func (f *Impl) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

func (f *Impl) Visible() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading || len(f.units) > 0
}

func (f *Impl) SkeletonCount() int { return f.skeletonCount }

func (f *Impl) Select(ctx context.Context, index int) (viewer.Session, error) {
	f.mu.RLock()
	units := f.units
	f.mu.RUnlock()

	if index < 0 || index >= len(units) {
		return nil, errors.ErrInvalidInput
	}

	sess, err := f.Sessions.Open(units, index)
	if err != nil {
		return nil, err
	}

	// Eventual consistency for viewed rings: re-fetch after the session
	// rather than patching AllViewed locally, since the viewer may have
	// only partially covered a multi-story unit.
	go func() {
		<-sess.Done()
		f.Load(context.WithoutCancel(ctx))
	}()

	return sess, nil
}
