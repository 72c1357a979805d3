package viewer

import (
	"errors"
	"time"

	"github.com/storyreel/storyreel/internal/domain"
)

// State is the playback state of a viewer session.
type State int

const (
	StateLoadingUnit State = iota
	StatePlaying
	StatePaused
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateLoadingUnit:
		return "loading_unit"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Tapping the left third of the content area goes backwards; the remaining
// two thirds go forward. Forward navigation is the common case.
const RegressTapRatio = 1.0 / 3.0

var (
	ErrNoUnits         = errors.New("no feed units to play")
	ErrIndexOutOfRange = errors.New("start index out of range")
	ErrUnitNotPlayable = errors.New("unit has no stories to play")
)

// Snapshot is a read-only view of a session's cursor. Story is nil while the
// current unit's sequence is loading.
type Snapshot struct {
	State           State
	UnitIndex       int
	StoryIndex      int
	ProgressPercent float64
	Unit            domain.FeedUnit
	Story           *domain.Story
	SequenceLen     int
}

// Session is one full-screen playback run over a feed snapshot. All methods
// are safe for concurrent use; inputs arriving after close are ignored.
//
// Video slides are driven by the host's media element: the host reports
// playback position via VideoProgress and the natural end via VideoEnded,
// both tagged with the story ID they belong to so late events from a torn
// down player cannot advance a newer slide.
type Session interface {
	ID() string

	Pause()
	Resume()
	Tap(xRatio float64)
	Advance()
	Regress()
	Close()

	VideoProgress(storyID string, current, total time.Duration)
	VideoEnded(storyID string)

	Snapshot() Snapshot
	Updates() <-chan Snapshot
	Done() <-chan struct{}
	LastActivity() time.Time
}

// Opener creates playback sessions. The feed units slice is treated as a
// read-only snapshot by the session.
type Opener interface {
	Open(units []domain.FeedUnit, startIndex int) (Session, error)
}
