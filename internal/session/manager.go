package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/storyreel/storyreel/internal/domain"
	"github.com/storyreel/storyreel/internal/viewer"
	"github.com/storyreel/storyreel/pkg/config"
	"github.com/storyreel/storyreel/pkg/logger"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In
	LC fx.Lifecycle

	Opener viewer.Opener
	Config *config.Config
	Logger logger.Logger
	Clock  clockwork.Clock
}

// Manager tracks open viewer sessions and reaps abandoned ones. A viewer
// left open without input past the idle timeout would otherwise keep its
// ticker alive forever.
type Manager struct {
	opener viewer.Opener
	logger logger.Logger
	clock  clockwork.Clock
	cfg    *config.Config

	mu       sync.Mutex
	sessions map[string]viewer.Session
}

func New(opts Opts) (*Manager, error) {
	m := &Manager{
		opener:   opts.Opener,
		logger:   opts.Logger,
		clock:    opts.Clock,
		cfg:      opts.Config,
		sessions: make(map[string]viewer.Session),
	}

	scheduler, err := gocron.NewScheduler(gocron.WithClock(opts.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create janitor scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(opts.Config.Session.JanitorInterval),
		gocron.NewTask(m.reapIdle),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule session janitor: %w", err)
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			return nil
		},
		OnStop: func(context.Context) error {
			if err := scheduler.Shutdown(); err != nil {
				m.logger.Error("Failed to shut down session janitor", "error", err)
			}
			m.CloseAll()
			return nil
		},
	})

	return m, nil
}

// Open creates a session and tracks it until it closes.
func (m *Manager) Open(units []domain.FeedUnit, startIndex int) (viewer.Session, error) {
	sess, err := m.opener.Open(units, startIndex)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.sessions[sess.ID()] = sess
	m.mu.Unlock()

	go func() {
		<-sess.Done()
		m.mu.Lock()
		delete(m.sessions, sess.ID())
		m.mu.Unlock()
	}()

	return sess, nil
}

// Active returns the number of currently open sessions.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll closes every tracked session.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	sessions := make([]viewer.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}
}

func (m *Manager) reapIdle() {
	cutoff := m.clock.Now().Add(-m.cfg.Session.IdleTimeout)

	m.mu.Lock()
	var idle []viewer.Session
	for _, sess := range m.sessions {
		if sess.LastActivity().Before(cutoff) {
			idle = append(idle, sess)
		}
	}
	m.mu.Unlock()

	for _, sess := range idle {
		m.logger.Info("Closing idle viewer session", "session_id", sess.ID(), "last_activity", sess.LastActivity())
		sess.Close()
	}
}
