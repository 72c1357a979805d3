package feedimpl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/storyreel/storyreel/internal/domain"
	mock_provider "github.com/storyreel/storyreel/internal/provider/mocks"
	"github.com/storyreel/storyreel/internal/session"
	"github.com/storyreel/storyreel/internal/viewer"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/errors"
	"github.com/storyreel/storyreel/pkg/logger"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

type fakeSession struct {
	id        string
	done      chan struct{}
	closeOnce sync.Once
}

func newFakeSession(id string) *fakeSession {
	return &fakeSession{id: id, done: make(chan struct{})}
}

func (s *fakeSession) ID() string                                        { return s.id }
func (s *fakeSession) Pause()                                            {}
func (s *fakeSession) Resume()                                           {}
func (s *fakeSession) Tap(float64)                                       {}
func (s *fakeSession) Advance()                                          {}
func (s *fakeSession) Regress()                                          {}
func (s *fakeSession) Close()                                            { s.closeOnce.Do(func() { close(s.done) }) }
func (s *fakeSession) VideoProgress(string, time.Duration, time.Duration) {}
func (s *fakeSession) VideoEnded(string)                                 {}
func (s *fakeSession) Snapshot() viewer.Snapshot                         { return viewer.Snapshot{} }
func (s *fakeSession) Updates() <-chan viewer.Snapshot                   { return nil }
func (s *fakeSession) Done() <-chan struct{}                             { return s.done }
func (s *fakeSession) LastActivity() time.Time                           { return time.Now() }

var _ viewer.Session = (*fakeSession)(nil)

type fakeOpener struct {
	mu     sync.Mutex
	opened []int
	last   *fakeSession
}

func (o *fakeOpener) Open(units []domain.FeedUnit, startIndex int) (viewer.Session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !units[startIndex].Selectable() {
		return nil, viewer.ErrUnitNotPlayable
	}
	o.opened = append(o.opened, startIndex)
	o.last = newFakeSession("sess-" + units[startIndex].ID)
	return o.last, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Feed.SkeletonCount = 6
	cfg.Session.IdleTimeout = time.Minute
	cfg.Session.JanitorInterval = time.Second
	return cfg
}

func newTestFeed(t *testing.T, client *mock_provider.MockClient, opener viewer.Opener) *Impl {
	t.Helper()
	cfg := testConfig()
	log := logger.New(logger.Opts{Env: "test"})

	mgr, err := session.New(session.Opts{
		LC:     fxtest.NewLifecycle(t),
		Opener: opener,
		Config: cfg,
		Logger: log,
		Clock:  clockwork.NewFakeClock(),
	})
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}

	return New(Opts{
		Provider: client,
		Sessions: mgr,
		Config:   cfg,
		Logger:   log,
	})
}

func units(list ...domain.FeedUnit) []domain.FeedUnit { return list }

func u(id string, count int) domain.FeedUnit {
	return domain.FeedUnit{ID: id, UnitType: domain.UnitTypeUser, DisplayName: id, StoryCount: count}
}

func TestLoad_FiltersEmptyUnitsAndKeepsOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_provider.NewMockClient(ctrl)
	client.EXPECT().ListFeed(gomock.Any()).Return(units(u("a", 2), u("empty", 0), u("b", 1)), nil)

	f := newTestFeed(t, client, &fakeOpener{})
	f.Load(context.Background())

	got := f.Units()
	if len(got) != 2 {
		t.Fatalf("zero-story unit should be filtered, got %d units", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("server order must survive filtering, got %s, %s", got[0].ID, got[1].ID)
	}
	if !f.Visible() {
		t.Error("feed with units should be visible")
	}
}

func TestLoad_FailureHidesTheBarWithoutError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_provider.NewMockClient(ctrl)
	client.EXPECT().ListFeed(gomock.Any()).Return(nil, errors.ErrFeedUnavailable)

	f := newTestFeed(t, client, &fakeOpener{})
	f.Load(context.Background())

	if f.Visible() {
		t.Error("a failed feed load hides the whole bar")
	}
	if f.Loading() {
		t.Error("loading flag should clear after a failed load")
	}
	if len(f.Units()) != 0 {
		t.Errorf("no units should remain, got %d", len(f.Units()))
	}
}

func TestSkeletonCount_IsFixed(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newTestFeed(t, mock_provider.NewMockClient(ctrl), &fakeOpener{})

	if got := f.SkeletonCount(); got != 6 {
		t.Errorf("skeleton count should come from config, got %d", got)
	}
}

func TestSelect_BoundsChecked(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_provider.NewMockClient(ctrl)
	client.EXPECT().ListFeed(gomock.Any()).Return(units(u("a", 1)), nil)

	f := newTestFeed(t, client, &fakeOpener{})
	f.Load(context.Background())

	if _, err := f.Select(context.Background(), -1); err == nil {
		t.Error("negative index must be rejected")
	}
	if _, err := f.Select(context.Background(), 3); err == nil {
		t.Error("out-of-range index must be rejected")
	}
}

func TestSelect_RefetchesFeedAfterSessionCloses(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_provider.NewMockClient(ctrl)

	var mu sync.Mutex
	loads := 0
	client.EXPECT().ListFeed(gomock.Any()).DoAndReturn(
		func(any) ([]domain.FeedUnit, error) {
			mu.Lock()
			defer mu.Unlock()
			loads++
			return units(u("a", 1)), nil
		},
	).Times(2)

	opener := &fakeOpener{}
	f := newTestFeed(t, client, opener)
	f.Load(context.Background())

	sess, err := f.Select(context.Background(), 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}

	// The feed waits for the session, then re-fetches so the viewed rings
	// reflect the finished playback run.
	sess.Close()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := loads
		mu.Unlock()
		if n == 2 {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("feed never re-fetched after the session closed")
}
