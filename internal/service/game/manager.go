package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"go.uber.org/zap"

	"github.com/iamasit07/cat-and-mouse/backend/pkg/uid"
)

var ErrSessionNotFound = errors.New("session not found")

// ManagerOptions configures the sessions a Manager creates and how long they
// are kept around.
type ManagerOptions struct {
	Session     SessionOptions
	FinishedTTL time.Duration
	ActiveTTL   time.Duration
}

// Manager keeps independent game sessions by game ID.
type Manager struct {
	sessions *xsync.MapOf[string, *Session]
	opts     ManagerOptions
	notifier Notifier
	base     *zap.Logger
	logger   *zap.Logger
}

func NewManager(opts ManagerOptions, notifier Notifier, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts.Session = opts.Session.withDefaults()
	if opts.FinishedTTL == 0 {
		opts.FinishedTTL = time.Hour
	}
	if opts.ActiveTTL == 0 {
		opts.ActiveTTL = 24 * time.Hour
	}

	return &Manager{
		sessions: xsync.NewMapOf[string, *Session](),
		opts:     opts,
		notifier: notifier,
		base:     logger,
		logger:   logger.With(zap.String("component", "session_manager")),
	}
}

func (m *Manager) CreateSession() (*Session, error) {
	gameID := uid.GenerateGameID()

	session, err := NewSession(gameID, m.opts.Session, m.notifier, m.base)
	if err != nil {
		return nil, err
	}
	m.sessions.Store(gameID, session)

	m.logger.Info("created session",
		zap.String("game_id", gameID),
		zap.String("cat", m.opts.Session.CatName),
		zap.String("mouse", m.opts.Session.MouseName),
	)
	return session, nil
}

func (m *Manager) Get(gameID string) (*Session, error) {
	session, ok := m.sessions.Load(gameID)
	if !ok {
		return nil, fmt.Errorf("game %s: %w", gameID, ErrSessionNotFound)
	}
	return session, nil
}

func (m *Manager) Remove(gameID string) error {
	if _, ok := m.sessions.LoadAndDelete(gameID); !ok {
		return fmt.Errorf("game %s: %w", gameID, ErrSessionNotFound)
	}

	m.logger.Info("removed session", zap.String("game_id", gameID))
	return nil
}

func (m *Manager) Len() int {
	return m.sessions.Size()
}

// Sessions returns the live sessions in no particular order.
func (m *Manager) Sessions() []*Session {
	sessions := make([]*Session, 0, m.sessions.Size())
	m.sessions.Range(func(_ string, s *Session) bool {
		sessions = append(sessions, s)
		return true
	})
	return sessions
}

// CleanupOldSessions evicts finished sessions older than FinishedTTL and
// unfinished ones older than ActiveTTL. It returns how many were removed.
func (m *Manager) CleanupOldSessions() int {
	now := m.opts.Session.Now()
	count := 0

	m.sessions.Range(func(gameID string, s *Session) bool {
		if s.isStale(now, m.opts.FinishedTTL, m.opts.ActiveTTL) {
			m.sessions.Delete(gameID)
			count++
		}
		return true
	})

	if count > 0 {
		m.logger.Info("removed stale sessions", zap.Int("count", count))
	}
	return count
}
