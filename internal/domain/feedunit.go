package domain

import "time"

// UnitType distinguishes a user's own stories from an editorially curated
// section collection.
type UnitType string

const (
	UnitTypeUser    UnitType = "user"
	UnitTypeSection UnitType = "section"
)

// FeedUnit is one entry in the horizontal story feed. Instances are snapshot
// data produced by a feed fetch; only ID is stable across fetches.
type FeedUnit struct {
	ID            string     `json:"id"`
	UnitType      UnitType   `json:"unit_type"`
	DisplayName   string     `json:"display_name"`
	AvatarURL     string     `json:"avatar_url"`
	StoryCount    int        `json:"story_count"`
	AllViewed     bool       `json:"all_viewed"`
	LatestStoryAt *time.Time `json:"latest_story_at,omitempty"`
}

// Selectable reports whether tapping this unit can open the viewer.
// A unit with no published stories has nothing to show.
func (u FeedUnit) Selectable() bool {
	return u.StoryCount > 0
}
