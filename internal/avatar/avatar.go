package avatar

import (
	"strconv"

	"github.com/storyreel/storyreel/internal/domain"
)

// RingStyle is the visual frame around a unit's thumbnail.
type RingStyle int

const (
	// RingFeaturedGradient is the amber/orange animated ring for unviewed sections.
	RingFeaturedGradient RingStyle = iota
	// RingUserGradient is the primary/violet animated ring for unviewed users.
	RingUserGradient
	// RingViewed is the flat gray ring once every story of the unit is viewed.
	RingViewed
)

const maxBadgeCount = 9

// Model is the render model for one story avatar. Purely derived from the
// feed unit; avatars hold no state and run no timers.
type Model struct {
	DisplayName      string
	ImageURL         string
	Ring             RingStyle
	ShowCheckmark    bool
	Badge            string
	ShowFeaturedPill bool
	ShowLiveDot      bool
	Selectable       bool
}

// New derives the avatar model for a feed unit.
func New(u domain.FeedUnit) Model {
	m := Model{
		DisplayName:      u.DisplayName,
		ImageURL:         u.AvatarURL,
		ShowCheckmark:    u.AllViewed,
		Badge:            badge(u.StoryCount),
		ShowFeaturedPill: u.UnitType == domain.UnitTypeSection,
		ShowLiveDot:      u.UnitType == domain.UnitTypeUser,
		Selectable:       u.Selectable(),
	}

	switch {
	case u.AllViewed:
		m.Ring = RingViewed
	case u.UnitType == domain.UnitTypeSection:
		m.Ring = RingFeaturedGradient
	default:
		m.Ring = RingUserGradient
	}

	return m
}

// badge renders the story-count badge: hidden for single-story units,
// capped at "9+".
func badge(count int) string {
	if count <= 1 {
		return ""
	}
	if count > maxBadgeCount {
		return "9+"
	}
	return strconv.Itoa(count)
}
