package viewerimpl

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/storyreel/storyreel/internal/domain"
)

// progressSource drives the progress bar for the current slide. Exactly one
// source is attached at a time; switching slides tears the old one down
// before the new one starts.
type progressSource interface {
	start()
	pause()
	resume()
	stop()
}

// attachSourceFor selects the source for a story: the fixed-interval tick for
// image and text slides, the passive video source for video slides (the media
// element's own clock drives those via VideoProgress/VideoEnded events).
func (s *SessionImpl) attachSourceFor(st domain.Story) {
	s.detachSource()

	if st.TimerDriven() {
		s.source = newTickSource(s.clock, s.tickInterval, func() { s.post(evTick{}) })
	} else {
		s.source = videoSource{}
	}
	s.source.start()
}

func (s *SessionImpl) detachSource() {
	if s.source != nil {
		s.source.stop()
		s.source = nil
	}
}

// tickSource pumps fixed-interval tick events. Pausing suspends delivery
// entirely; the frozen progress value is untouched until resume.
type tickSource struct {
	clock    clockwork.Clock
	interval time.Duration
	post     func()
	paused   atomic.Bool
	quit     chan struct{}
}

func newTickSource(clock clockwork.Clock, interval time.Duration, post func()) *tickSource {
	return &tickSource{
		clock:    clock,
		interval: interval,
		post:     post,
		quit:     make(chan struct{}),
	}
}

func (t *tickSource) start() {
	ticker := t.clock.NewTicker(t.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-t.quit:
				return
			case <-ticker.Chan():
				if !t.paused.Load() {
					t.post()
				}
			}
		}
	}()
}

func (t *tickSource) pause()  { t.paused.Store(true) }
func (t *tickSource) resume() { t.paused.Store(false) }
func (t *tickSource) stop() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// videoSource is passive: progress arrives from the host's media element, so
// there is nothing to run. Its presence still marks the video clock as the
// only legal driver for the slide.
type videoSource struct{}

func (videoSource) start()  {}
func (videoSource) pause()  {}
func (videoSource) resume() {}
func (videoSource) stop()   {}
