package provider

import (
	"context"

	"github.com/storyreel/storyreel/internal/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock.go

// Client is the Feed Data Provider contract. The playback engine consumes it;
// it never implements the backend behind it.
//
// ListUnitStories returning an empty slice is a valid result (the unit had
// content at feed-fetch time but none now), not an error. MarkViewed is
// idempotent server-side and best-effort from the engine's point of view.
type Client interface {
	ListFeed(ctx context.Context) ([]domain.FeedUnit, error)
	ListUnitStories(ctx context.Context, unitID string, unitType domain.UnitType) ([]domain.Story, error)
	MarkViewed(ctx context.Context, storyID string) error
}
