package stubserver

import (
	"time"

	"github.com/google/uuid"
	"github.com/storyreel/storyreel/internal/domain"
)

// seed builds the demo dataset: one featured section first, then two users,
// mixing every media type plus a product-linked slide.
func seed() ([]domain.FeedUnit, map[string][]domain.Story) {
	now := time.Now()
	sid := func() string { return uuid.NewString() }

	picks := []domain.Story{
		{
			ID:        sid(),
			Type:      domain.StoryTypeImage,
			MediaURL:  "https://cdn.example.com/picks/summer-drop.jpg",
			CreatedAt: now.Add(-2 * time.Hour),
		},
	}

	maya := []domain.Story{
		{
			ID:          sid(),
			Type:        domain.StoryTypeImage,
			MediaURL:    "https://cdn.example.com/maya/rooftop.jpg",
			TextContent: "golden hour",
			CreatedAt:   now.Add(-5 * time.Hour),
		},
		{
			ID:        sid(),
			Type:      domain.StoryTypeVideo,
			MediaURL:  "https://cdn.example.com/maya/unboxing.mp4",
			CreatedAt: now.Add(-4 * time.Hour),
			LinkedProduct: &domain.LinkedProduct{
				ID:       "prod-118",
				Name:     "Canvas Tote",
				ImageURL: "https://cdn.example.com/products/tote.jpg",
				Price:    "39.00",
			},
		},
	}

	jonas := []domain.Story{
		{
			ID:              sid(),
			Type:            domain.StoryTypeText,
			TextContent:     "shop closed this weekend, back monday!",
			BackgroundColor: "#1d4ed8",
			CreatedAt:       now.Add(-30 * time.Minute),
		},
	}

	latest := func(stories []domain.Story) *time.Time {
		t := stories[len(stories)-1].CreatedAt
		return &t
	}

	units := []domain.FeedUnit{
		{
			ID:            "editors-picks",
			UnitType:      domain.UnitTypeSection,
			DisplayName:   "Editors' Picks",
			AvatarURL:     "https://cdn.example.com/picks/cover.jpg",
			StoryCount:    len(picks),
			LatestStoryAt: latest(picks),
		},
		{
			ID:            "maya",
			UnitType:      domain.UnitTypeUser,
			DisplayName:   "Maya",
			AvatarURL:     "https://cdn.example.com/maya/avatar.jpg",
			StoryCount:    len(maya),
			LatestStoryAt: latest(maya),
		},
		{
			ID:            "jonas",
			UnitType:      domain.UnitTypeUser,
			DisplayName:   "Jonas",
			AvatarURL:     "https://cdn.example.com/jonas/avatar.jpg",
			StoryCount:    len(jonas),
			LatestStoryAt: latest(jonas),
		},
	}

	return units, map[string][]domain.Story{
		"editors-picks": picks,
		"maya":          maya,
		"jonas":         jonas,
	}
}
