package viewerimpl

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/internal/metrics"
	"github.com/storyreel/storyreel/internal/provider"
	"github.com/storyreel/storyreel/internal/tracking"
	"github.com/storyreel/storyreel/internal/viewer"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Provider provider.Client
	Tracker  tracking.Dispatcher
	Logger   logger.Logger
	Config   *config.Config
	Clock    clockwork.Clock
}

// Factory creates playback sessions over a shared provider and tracker.
type Factory struct {
	Provider provider.Client
	Tracker  tracking.Dispatcher
	Logger   logger.Logger
	Config   *config.Config
	Clock    clockwork.Clock
}

func New(opts Opts) *Factory {
	return &Factory{
		Provider: opts.Provider,
		Tracker:  opts.Tracker,
		Logger:   opts.Logger,
		Config:   opts.Config,
		Clock:    opts.Clock,
	}
}

var _ viewer.Opener = (*Factory)(nil)

func (f *Factory) Open(units []domain.FeedUnit, startIndex int) (viewer.Session, error) {
	if len(units) == 0 {
		return nil, viewer.ErrNoUnits
	}
	if startIndex < 0 || startIndex >= len(units) {
		return nil, viewer.ErrIndexOutOfRange
	}
	if !units[startIndex].Selectable() {
		return nil, viewer.ErrUnitNotPlayable
	}

	s := &SessionImpl{
		id:       uuid.NewString(),
		units:    units,
		provider: f.Provider,
		tracker:  f.Tracker,
		logger:   f.Logger,
		clock:    f.Clock,

		slideDuration: f.Config.Playback.SlideDuration,
		tickInterval:  f.Config.Playback.TickInterval,

		events:  make(chan event, 32),
		done:    make(chan struct{}),
		updates: make(chan viewer.Snapshot, 1),

		state:     viewer.StateLoadingUnit,
		unitIndex: startIndex,
		seen:      make(map[string]struct{}),
	}
	s.lastActivity = s.clock.Now()
	s.publish()

	metrics.SessionsOpenedTotal.Inc()
	metrics.SessionsActive.Inc()

	go s.run()
	return s, nil
}

// SessionImpl is one playback run. Everything below the mutex is owned
// exclusively by the event loop goroutine; public methods only post events.
type SessionImpl struct {
	id       string
	units    []domain.FeedUnit
	provider provider.Client
	tracker  tracking.Dispatcher
	logger   logger.Logger
	clock    clockwork.Clock

	slideDuration time.Duration
	tickInterval  time.Duration

	events  chan event
	done    chan struct{}
	updates chan viewer.Snapshot

	mu           sync.RWMutex
	snap         viewer.Snapshot
	lastActivity time.Time

	// Loop-owned state. Never touched outside run().
	state      viewer.State
	unitIndex  int
	storyIndex int
	progress   float64
	sequence   []domain.Story
	seen       map[string]struct{}
	source     progressSource
	loadGen    int
	loadCancel context.CancelFunc
}

var _ viewer.Session = (*SessionImpl)(nil)

func (s *SessionImpl) ID() string { return s.id }

func (s *SessionImpl) Pause()   { s.input(evPause{}) }
func (s *SessionImpl) Resume()  { s.input(evResume{}) }
func (s *SessionImpl) Advance() { s.input(evAdvance{}) }
func (s *SessionImpl) Regress() { s.input(evRegress{}) }
func (s *SessionImpl) Close()   { s.input(evClose{}) }

func (s *SessionImpl) Tap(xRatio float64) {
	if xRatio < viewer.RegressTapRatio {
		s.Regress()
		return
	}
	s.Advance()
}

func (s *SessionImpl) VideoProgress(storyID string, current, total time.Duration) {
	s.input(evVideoProgress{storyID: storyID, current: current, total: total})
}

func (s *SessionImpl) VideoEnded(storyID string) {
	s.input(evVideoEnded{storyID: storyID})
}

func (s *SessionImpl) Snapshot() viewer.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

func (s *SessionImpl) Updates() <-chan viewer.Snapshot { return s.updates }
func (s *SessionImpl) Done() <-chan struct{}           { return s.done }

func (s *SessionImpl) LastActivity() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActivity
}

// input posts a user-originated event and refreshes the idle clock.
func (s *SessionImpl) input(ev event) {
	s.mu.Lock()
	s.lastActivity = s.clock.Now()
	s.mu.Unlock()
	s.post(ev)
}

// post delivers an event to the loop unless the session is already closed.
func (s *SessionImpl) post(ev event) {
	select {
	case <-s.done:
	case s.events <- ev:
	}
}

// publish stores the current snapshot and signals watchers. The updates
// channel keeps only the latest snapshot; stale ones are discarded.
func (s *SessionImpl) publish() {
	var story *domain.Story
	if s.state != viewer.StateLoadingUnit && s.storyIndex < len(s.sequence) {
		st := s.sequence[s.storyIndex]
		story = &st
	}

	snap := viewer.Snapshot{
		State:           s.state,
		UnitIndex:       s.unitIndex,
		StoryIndex:      s.storyIndex,
		ProgressPercent: s.progress,
		Unit:            s.units[s.unitIndex],
		Story:           story,
		SequenceLen:     len(s.sequence),
	}

	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()

	for {
		select {
		case s.updates <- snap:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}
