package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FeedLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_feed_loads_total",
			Help: "Total number of story feed fetches",
		},
		[]string{"status"},
	)

	SessionsOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "story_sessions_opened_total",
			Help: "Total number of viewer sessions opened",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "story_sessions_active",
			Help: "Number of currently open viewer sessions",
		},
	)

	SlidesAdvancedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_slides_advanced_total",
			Help: "Total number of slide transitions",
		},
		[]string{"direction"},
	)

	UnitLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_unit_loads_total",
			Help: "Total number of per-unit story sequence fetches",
		},
		[]string{"status"},
	)

	ViewsTrackedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_views_tracked_total",
			Help: "Total number of view-tracking submissions",
		},
		[]string{"status"},
	)
)
