package viewerimpl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/internal/provider"
	"github.com/storyreel/storyreel/internal/viewer"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/logger"
)

// Test timing: 4 ticks of 50ms fill a 200ms slide, 25% per tick.
const (
	testSlideDuration = 200 * time.Millisecond
	testTickInterval  = 50 * time.Millisecond
)

type fakeProvider struct {
	mu        sync.Mutex
	sequences map[string][]domain.Story
	errs      map[string]error
	gates     map[string]chan struct{}
	calls     []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		sequences: make(map[string][]domain.Story),
		errs:      make(map[string]error),
		gates:     make(map[string]chan struct{}),
	}
}

func (p *fakeProvider) ListFeed(context.Context) ([]domain.FeedUnit, error) {
	return nil, nil
}

func (p *fakeProvider) ListUnitStories(ctx context.Context, unitID string, _ domain.UnitType) ([]domain.Story, error) {
	p.mu.Lock()
	p.calls = append(p.calls, unitID)
	gate := p.gates[unitID]
	p.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.errs[unitID]; err != nil {
		return nil, err
	}
	stories := make([]domain.Story, len(p.sequences[unitID]))
	copy(stories, p.sequences[unitID])
	return stories, nil
}

func (p *fakeProvider) MarkViewed(context.Context, string) error { return nil }

func (p *fakeProvider) callCount(unitID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, id := range p.calls {
		if id == unitID {
			n++
		}
	}
	return n
}

var _ provider.Client = (*fakeProvider)(nil)

type fakeTracker struct {
	mu     sync.Mutex
	counts map[string]int
}

func newFakeTracker() *fakeTracker {
	return &fakeTracker{counts: make(map[string]int)}
}

func (t *fakeTracker) Track(_, storyID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.counts[storyID]++
}

func (t *fakeTracker) count(storyID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.counts[storyID]
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Playback.SlideDuration = testSlideDuration
	cfg.Playback.TickInterval = testTickInterval
	return cfg
}

func newTestFactory(p provider.Client, tr *fakeTracker, clk clockwork.Clock) *Factory {
	return &Factory{
		Provider: p,
		Tracker:  tr,
		Logger:   logger.New(logger.Opts{Env: "test"}),
		Config:   testConfig(),
		Clock:    clk,
	}
}

func img(id string) domain.Story {
	return domain.Story{ID: id, Type: domain.StoryTypeImage, MediaURL: "https://cdn.example.com/" + id + ".jpg"}
}

func vid(id string) domain.Story {
	return domain.Story{ID: id, Type: domain.StoryTypeVideo, MediaURL: "https://cdn.example.com/" + id + ".mp4"}
}

func txt(id string) domain.Story {
	return domain.Story{ID: id, Type: domain.StoryTypeText, TextContent: "hello"}
}

func unit(id string, ut domain.UnitType, count int) domain.FeedUnit {
	return domain.FeedUnit{ID: id, UnitType: ut, DisplayName: id, StoryCount: count}
}

// waitFor polls until cond holds or the deadline passes. Snapshot changes
// travel through two goroutines (tick pump, event loop), so tests observe
// them by polling rather than by counting channel sends.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func waitForState(t *testing.T, sess viewer.Session, want viewer.State) {
	t.Helper()
	waitFor(t, "state "+want.String(), func() bool {
		return sess.Snapshot().State == want
	})
}

func waitForCursor(t *testing.T, sess viewer.Session, unitIdx, storyIdx int) {
	t.Helper()
	waitFor(t, "cursor settle", func() bool {
		s := sess.Snapshot()
		return s.State == viewer.StatePlaying && s.UnitIndex == unitIdx && s.StoryIndex == storyIdx
	})
}

// advanceOneTick advances the fake clock by one tick interval and waits for
// the loop to apply it.
func advanceOneTick(t *testing.T, clk *clockwork.FakeClock, sess viewer.Session) {
	t.Helper()
	before := sess.Snapshot()
	clk.Advance(testTickInterval)
	waitFor(t, "tick applied", func() bool {
		s := sess.Snapshot()
		return s.ProgressPercent != before.ProgressPercent ||
			s.StoryIndex != before.StoryIndex ||
			s.UnitIndex != before.UnitIndex ||
			s.State != before.State
	})
}

func waitDone(t *testing.T, sess viewer.Session) {
	t.Helper()
	select {
	case <-sess.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for session to close")
	}
}
