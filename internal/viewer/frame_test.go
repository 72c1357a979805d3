package viewer

import (
	"testing"

	"github.com/storyreel/storyreel/internal/domain"
)

func TestBuildFrame_ImageWithCaption(t *testing.T) {
	f := BuildFrame(domain.Story{
		Type:        domain.StoryTypeImage,
		MediaURL:    "https://cdn.example.com/a.jpg",
		TextContent: "sunset",
	})

	if f.Kind != FrameImage {
		t.Fatalf("expected image frame, got %v", f.Kind)
	}
	if f.MediaURL != "https://cdn.example.com/a.jpg" {
		t.Errorf("unexpected media url: %s", f.MediaURL)
	}
	if f.Caption != "sunset" {
		t.Errorf("caption overlay missing, got %q", f.Caption)
	}
}

func TestBuildFrame_VideoAutoplaysWithSound(t *testing.T) {
	f := BuildFrame(domain.Story{
		Type:     domain.StoryTypeVideo,
		MediaURL: "https://cdn.example.com/v.mp4",
	})

	if f.Kind != FrameVideo {
		t.Fatalf("expected video frame, got %v", f.Kind)
	}
	if !f.Autoplay {
		t.Error("video slides autoplay")
	}
	if f.Muted {
		t.Error("sound stays on for video slides")
	}
}

func TestBuildFrame_TextDefaultsToBlackBackground(t *testing.T) {
	f := BuildFrame(domain.Story{
		Type:        domain.StoryTypeText,
		TextContent: "back monday",
	})

	if f.Kind != FrameText {
		t.Fatalf("expected text frame, got %v", f.Kind)
	}
	if f.BackgroundColor != "#000000" {
		t.Errorf("text slides default to black, got %s", f.BackgroundColor)
	}
	if f.Text != "back monday" {
		t.Errorf("unexpected text: %q", f.Text)
	}

	colored := BuildFrame(domain.Story{
		Type:            domain.StoryTypeText,
		TextContent:     "hi",
		BackgroundColor: "#1d4ed8",
	})
	if colored.BackgroundColor != "#1d4ed8" {
		t.Errorf("explicit background lost, got %s", colored.BackgroundColor)
	}
}

func TestBuildFrame_ProductCardOnAnyType(t *testing.T) {
	f := BuildFrame(domain.Story{
		Type:     domain.StoryTypeImage,
		MediaURL: "https://cdn.example.com/a.jpg",
		LinkedProduct: &domain.LinkedProduct{
			ID:    "prod-1",
			Name:  "Canvas Tote",
			Price: "39.00",
		},
	})

	if f.Product == nil {
		t.Fatal("linked product should render a card")
	}
	if f.Product.ProductID != "prod-1" || f.Product.Price != "39.00" {
		t.Errorf("unexpected product card: %+v", f.Product)
	}

	plain := BuildFrame(domain.Story{Type: domain.StoryTypeImage, MediaURL: "https://cdn.example.com/b.jpg"})
	if plain.Product != nil {
		t.Error("no card without a linked product")
	}
}
