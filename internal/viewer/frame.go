package viewer

import "github.com/storyreel/storyreel/internal/domain"

// FrameKind selects the slide rendering mode.
type FrameKind int

const (
	FrameImage FrameKind = iota
	FrameVideo
	FrameText
)

const defaultTextBackground = "#000000"

// ProductCard is the tappable promotional overlay for a linked product.
// Activating it navigates away from the viewer, which closes the session.
type ProductCard struct {
	ProductID string
	Name      string
	ImageURL  string
	Price     string
}

// Frame is the render model for a single slide.
type Frame struct {
	Kind            FrameKind
	MediaURL        string
	Text            string
	BackgroundColor string
	Caption         string
	Autoplay        bool
	Muted           bool
	Product         *ProductCard
}

// BuildFrame derives the render model for one story.
func BuildFrame(story domain.Story) Frame {
	f := Frame{}

	switch story.Type {
	case domain.StoryTypeVideo:
		f.Kind = FrameVideo
		f.MediaURL = story.MediaURL
		f.Autoplay = true
		// Sound stays on; the host exposes no audio controls.
		f.Muted = false
		f.Caption = story.TextContent
	case domain.StoryTypeText:
		f.Kind = FrameText
		f.Text = story.TextContent
		f.BackgroundColor = story.BackgroundColor
		if f.BackgroundColor == "" {
			f.BackgroundColor = defaultTextBackground
		}
	default:
		f.Kind = FrameImage
		f.MediaURL = story.MediaURL
		f.Caption = story.TextContent
	}

	if story.LinkedProduct != nil {
		f.Product = &ProductCard{
			ProductID: story.LinkedProduct.ID,
			Name:      story.LinkedProduct.Name,
			ImageURL:  story.LinkedProduct.ImageURL,
			Price:     story.LinkedProduct.Price,
		}
	}

	return f
}
