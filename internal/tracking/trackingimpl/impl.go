package trackingimpl

import (
	"context"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/storyreel/storyreel/internal/metrics"
	"github.com/storyreel/storyreel/internal/provider"
	"github.com/storyreel/storyreel/internal/tracking"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/logger"
	"github.com/storyreel/storyreel/pkg/ratelimit"
	"go.uber.org/fx"
)

const markViewedTimeout = 5 * time.Second

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Provider provider.Client
	Config   *config.Config
	Logger   logger.Logger
}

type DispatcherImpl struct {
	Provider provider.Client
	Logger   logger.Logger
	Pool     *ants.Pool
	Limiter  ratelimit.Limiter
}

func New(opts Opts) (*DispatcherImpl, error) {
	pool, err := ants.NewPool(opts.Config.Tracking.Workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, err
	}

	d := &DispatcherImpl{
		Provider: opts.Provider,
		Logger:   opts.Logger,
		Pool:     pool,
		Limiter: ratelimit.NewInMemoryLimiter(
			opts.Config.Tracking.RatePerMinute,
			time.Minute,
			opts.Config.Tracking.Burst,
		),
	}

	opts.LC.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			pool.Release()
			return nil
		},
	})

	return d, nil
}

var _ tracking.Dispatcher = (*DispatcherImpl)(nil)

// Track submits a markViewed call without blocking playback. A dropped view
// tick is acceptable loss; a missed submission is logged, never retried.
func (d *DispatcherImpl) Track(sessionID, storyID string) {
	if !d.Limiter.Allow(sessionID) {
		d.Logger.Warn("View tracking rate limit exceeded, dropping tick", "session_id", sessionID, "story_id", storyID)
		metrics.ViewsTrackedTotal.WithLabelValues("dropped").Inc()
		return
	}

	err := d.Pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), markViewedTimeout)
		defer cancel()

		if err := d.Provider.MarkViewed(ctx, storyID); err != nil {
			d.Logger.Warn("Failed to mark story viewed", "story_id", storyID, "error", err)
			metrics.ViewsTrackedTotal.WithLabelValues("error").Inc()
			return
		}
		metrics.ViewsTrackedTotal.WithLabelValues("ok").Inc()
	})
	if err != nil {
		d.Logger.Warn("Failed to submit view tracking job", "story_id", storyID, "error", err)
		metrics.ViewsTrackedTotal.WithLabelValues("dropped").Inc()
	}
}
