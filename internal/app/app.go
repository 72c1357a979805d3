package app

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/storyreel/storyreel/internal/feed"
	"github.com/storyreel/storyreel/internal/feed/feedimpl"
	"github.com/storyreel/storyreel/internal/provider"
	"github.com/storyreel/storyreel/internal/provider/providerimpl"
	"github.com/storyreel/storyreel/internal/session"
	"github.com/storyreel/storyreel/internal/stubserver"
	"github.com/storyreel/storyreel/internal/tracking"
	"github.com/storyreel/storyreel/internal/tracking/trackingimpl"
	"github.com/storyreel/storyreel/internal/viewer"
	"github.com/storyreel/storyreel/internal/viewer/viewerimpl"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/logger"
	"go.uber.org/fx"
)

var Module = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		func() clockwork.Clock { return clockwork.NewRealClock() },
	),
	fx.Provide(
		fx.Annotate(
			providerimpl.New,
			fx.As(new(provider.Client)),
		),
		fx.Annotate(
			trackingimpl.New,
			fx.As(new(tracking.Dispatcher)),
		),
		fx.Annotate(
			viewerimpl.New,
			fx.As(new(viewer.Opener)),
		),
		session.New,
		fx.Annotate(
			feedimpl.New,
			fx.As(new(feed.Feed)),
		),
	),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, storyFeed feed.Feed) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go startHttpServer(log, cfg)

			if cfg.App.Demo {
				go startStubBackend(log, cfg)
				go runDemo(log, storyFeed)
			}

			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		if _, err := w.Write([]byte("ok")); err != nil {
			log.Error("Failed to write health response", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.Handler())

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), mux); err != nil {
		log.Error("Server failed to start", "error", err)
	}
}

// startStubBackend serves the in-memory reference backend on the port the
// provider is configured against, so the demo works out of the box.
func startStubBackend(log logger.Logger, cfg *config.Config) {
	port := "8081"
	if u, err := url.Parse(cfg.API.BaseURL); err == nil && u.Port() != "" {
		port = u.Port()
	}

	log.Info("Starting stub stories backend", "port", port)

	srv := stubserver.New(log)
	if err := http.ListenAndServe(":"+port, srv.Handler()); err != nil {
		log.Error("Stub backend failed to start", "error", err)
	}
}
