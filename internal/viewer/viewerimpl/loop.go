package viewerimpl

import (
	"context"
	"time"

	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/internal/metrics"
	"github.com/storyreel/storyreel/internal/viewer"
)

type event interface{ isEvent() }

type evTick struct{}
type evPause struct{}
type evResume struct{}
type evAdvance struct{}
type evRegress struct{}
type evClose struct{}

type evVideoProgress struct {
	storyID string
	current time.Duration
	total   time.Duration
}

type evVideoEnded struct {
	storyID string
}

type evUnitLoaded struct {
	gen     int
	stories []domain.Story
	err     error
}

func (evTick) isEvent()          {}
func (evPause) isEvent()         {}
func (evResume) isEvent()        {}
func (evAdvance) isEvent()       {}
func (evRegress) isEvent()       {}
func (evClose) isEvent()         {}
func (evVideoProgress) isEvent() {}
func (evVideoEnded) isEvent()    {}
func (evUnitLoaded) isEvent()    {}

// run is the session's event loop. It is the only goroutine that mutates
// playback state, which makes the tick-vs-video single-driver rule and the
// stale-load discard checks purely sequential code.
func (s *SessionImpl) run() {
	s.beginUnitLoad()

	for ev := range s.events {
		s.apply(ev)
		if s.state == viewer.StateClosed {
			return
		}
	}
}

func (s *SessionImpl) apply(ev event) {
	switch ev := ev.(type) {
	case evTick:
		s.applyTick()
	case evVideoProgress:
		s.applyVideoProgress(ev)
	case evVideoEnded:
		s.applyVideoEnded(ev)
	case evPause:
		if s.state == viewer.StatePlaying {
			s.state = viewer.StatePaused
			s.source.pause()
			s.publish()
		}
	case evResume:
		if s.state == viewer.StatePaused {
			s.state = viewer.StatePlaying
			s.source.resume()
			s.publish()
		}
	case evAdvance:
		// Legal in any live state: tapping forward during a unit load skips
		// to the next unit and makes the in-flight response stale.
		metrics.SlidesAdvancedTotal.WithLabelValues("forward").Inc()
		s.advance()
	case evRegress:
		metrics.SlidesAdvancedTotal.WithLabelValues("backward").Inc()
		s.regress()
	case evClose:
		s.shutdown()
	case evUnitLoaded:
		s.applyUnitLoaded(ev)
	}
}

func (s *SessionImpl) applyTick() {
	if s.state != viewer.StatePlaying {
		return
	}
	st := s.currentStory()
	if st == nil || !st.TimerDriven() {
		return
	}

	s.progress += float64(s.tickInterval) / float64(s.slideDuration) * 100
	if s.progress >= 100 {
		s.progress = 100
		metrics.SlidesAdvancedTotal.WithLabelValues("auto").Inc()
		s.advance()
		return
	}
	s.publish()
}

func (s *SessionImpl) applyVideoProgress(ev evVideoProgress) {
	if s.state != viewer.StatePlaying {
		return
	}
	st := s.currentStory()
	if st == nil || st.Type != domain.StoryTypeVideo || st.ID != ev.storyID || ev.total <= 0 {
		return
	}

	s.progress = float64(ev.current) / float64(ev.total) * 100
	if s.progress > 100 {
		s.progress = 100
	}
	s.publish()
}

// applyVideoEnded advances directly rather than through the 100% threshold so
// float rounding in the last time update cannot strand the slide.
func (s *SessionImpl) applyVideoEnded(ev evVideoEnded) {
	if s.state != viewer.StatePlaying {
		return
	}
	st := s.currentStory()
	if st == nil || st.Type != domain.StoryTypeVideo || st.ID != ev.storyID {
		return
	}

	metrics.SlidesAdvancedTotal.WithLabelValues("auto").Inc()
	s.advance()
}

func (s *SessionImpl) advance() {
	switch {
	case s.storyIndex < len(s.sequence)-1:
		s.storyIndex++
		s.progress = 0
		s.settle()
	case s.unitIndex < len(s.units)-1:
		s.unitIndex++
		s.beginUnitLoad()
	default:
		s.shutdown()
	}
}

// regress lands on the previous unit's first story, not its last. This is
// the documented contract, not an oversight.
func (s *SessionImpl) regress() {
	switch {
	case s.storyIndex > 0:
		s.storyIndex--
		s.progress = 0
		s.settle()
	case s.unitIndex > 0:
		s.unitIndex--
		s.beginUnitLoad()
	default:
		// Already at the very first story of the very first unit.
	}
}

// beginUnitLoad fetches the current unit's sequence. Each load carries a
// generation number; a newer load or a close makes older results stale.
func (s *SessionImpl) beginUnitLoad() {
	s.detachSource()
	s.state = viewer.StateLoadingUnit
	s.sequence = nil
	s.storyIndex = 0
	s.progress = 0
	s.publish()

	s.loadGen++
	gen := s.loadGen

	if s.loadCancel != nil {
		s.loadCancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.loadCancel = cancel

	unit := s.units[s.unitIndex]
	go func() {
		stories, err := s.provider.ListUnitStories(ctx, unit.ID, unit.UnitType)
		s.post(evUnitLoaded{gen: gen, stories: stories, err: err})
	}()
}

func (s *SessionImpl) applyUnitLoaded(ev evUnitLoaded) {
	if ev.gen != s.loadGen {
		s.logger.Debug("Discarding stale unit load", "session_id", s.id, "gen", ev.gen, "current_gen", s.loadGen)
		return
	}
	if s.state != viewer.StateLoadingUnit {
		return
	}

	if ev.err != nil {
		s.logger.Warn("Failed to load unit stories, closing viewer", "session_id", s.id, "unit_id", s.units[s.unitIndex].ID, "error", ev.err)
		metrics.UnitLoadsTotal.WithLabelValues("error").Inc()
		s.shutdown()
		return
	}
	if len(ev.stories) == 0 {
		s.logger.Info("Unit has no stories, closing viewer", "session_id", s.id, "unit_id", s.units[s.unitIndex].ID)
		metrics.UnitLoadsTotal.WithLabelValues("empty").Inc()
		s.shutdown()
		return
	}

	metrics.UnitLoadsTotal.WithLabelValues("ok").Inc()

	// The session owns its copy of the sequence; local IsViewed patching
	// never reaches the feed's snapshot.
	s.sequence = make([]domain.Story, len(ev.stories))
	copy(s.sequence, ev.stories)
	s.storyIndex = 0
	s.progress = 0
	s.settle()
}

// settle runs when the cursor lands on a story: attach the right progress
// source for its type and fire view tracking at most once per story per
// session.
func (s *SessionImpl) settle() {
	st := &s.sequence[s.storyIndex]

	s.state = viewer.StatePlaying
	s.attachSourceFor(*st)

	if _, tracked := s.seen[st.ID]; !tracked && !st.IsViewed {
		s.seen[st.ID] = struct{}{}
		st.IsViewed = true
		s.tracker.Track(s.id, st.ID)
	}

	s.publish()
}

func (s *SessionImpl) currentStory() *domain.Story {
	if s.storyIndex < 0 || s.storyIndex >= len(s.sequence) {
		return nil
	}
	return &s.sequence[s.storyIndex]
}

// shutdown is the single terminal transition. After it runs no timer ticks,
// no load results, and no view-tracking submissions can originate from this
// session.
func (s *SessionImpl) shutdown() {
	if s.state == viewer.StateClosed {
		return
	}

	s.detachSource()
	if s.loadCancel != nil {
		s.loadCancel()
		s.loadCancel = nil
	}

	s.state = viewer.StateClosed
	s.publish()
	metrics.SessionsActive.Dec()
	close(s.done)
}
