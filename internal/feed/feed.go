package feed

import (
	"context"

	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/internal/viewer"
)

// Feed owns the horizontal bar of story units: the current snapshot, the
// loading flag, and unit selection. It carries no playback logic.
type Feed interface {
	// Load fetches the feed. Failures are swallowed: stories are optional
	// decoration, so a failed load leaves the bar hidden rather than
	// surfacing an error.
	Load(ctx context.Context)

	Units() []domain.FeedUnit
	Loading() bool
	// Visible reports whether the bar should render at all. An empty feed
	// (or a failed load) hides the whole bar.
	Visible() bool
	// SkeletonCount is the fixed number of placeholders shown while loading
	// so the layout does not jump once data arrives.
	SkeletonCount() int

	// Select opens the viewer on the unit at index. When the session closes
	// the feed re-fetches itself so viewed-state rings catch up.
	Select(ctx context.Context, index int) (viewer.Session, error)
}
