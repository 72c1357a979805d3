package domain

import "time"

// StoryType is the media kind of a single slide.
type StoryType string

const (
	StoryTypeImage StoryType = "image"
	StoryTypeVideo StoryType = "video"
	StoryTypeText  StoryType = "text"
)

// LinkedProduct is an optional promotional reference carried by a story.
type LinkedProduct struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
	Price    string `json:"price"`
}

// Story is one slide within a unit's ordered sequence. The order returned by
// the provider is authoritative and must not be re-sorted.
type Story struct {
	ID              string         `json:"id"`
	Type            StoryType      `json:"type"`
	MediaURL        string         `json:"media_url,omitempty"`
	TextContent     string         `json:"text_content,omitempty"`
	BackgroundColor string         `json:"background_color,omitempty"`
	LinkedProduct   *LinkedProduct `json:"linked_product,omitempty"`
	IsViewed        bool           `json:"is_viewed"`
	CreatedAt       time.Time      `json:"created_at"`
}

// TimerDriven reports whether progress for this story is driven by the fixed
// interval tick rather than the media's own clock.
func (s Story) TimerDriven() bool {
	return s.Type != StoryTypeVideo
}
