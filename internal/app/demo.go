package app

import (
	"context"
	"time"

	"github.com/storyreel/storyreel/internal/avatar"
	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/internal/feed"
	"github.com/storyreel/storyreel/internal/viewer"
	"github.com/storyreel/storyreel/pkg/logger"
)

// runDemo plays the whole seeded feed hands-free: load, open the first unit,
// and log every snapshot until auto-advance exhausts the feed.
func runDemo(log logger.Logger, storyFeed feed.Feed) {
	// Give the stub backend a moment to bind.
	time.Sleep(500 * time.Millisecond)

	ctx := context.Background()
	storyFeed.Load(ctx)

	units := storyFeed.Units()
	if len(units) == 0 {
		log.Warn("Demo feed is empty, nothing to play")
		return
	}

	for _, u := range units {
		m := avatar.New(u)
		log.Info("Feed unit", "name", m.DisplayName, "badge", m.Badge, "featured", m.ShowFeaturedPill)
	}

	sess, err := storyFeed.Select(ctx, 0)
	if err != nil {
		log.Error("Failed to open demo session", "error", err)
		return
	}

	for {
		select {
		case snap := <-sess.Updates():
			logSnapshot(log, snap)
			// A real host's media element reports video progress; the demo
			// stands in for it with an immediate natural end.
			if snap.State == viewer.StatePlaying && snap.Story != nil && snap.Story.Type == domain.StoryTypeVideo {
				sess.VideoEnded(snap.Story.ID)
			}
		case <-sess.Done():
			log.Info("Demo session finished, feed will re-fetch")
			return
		}
	}
}

func logSnapshot(log logger.Logger, snap viewer.Snapshot) {
	storyID := ""
	if snap.Story != nil {
		storyID = snap.Story.ID
	}
	log.Debug("Viewer snapshot",
		"state", snap.State.String(),
		"unit", snap.UnitIndex,
		"story", snap.StoryIndex,
		"story_id", storyID,
		"progress", int(snap.ProgressPercent),
	)
}
