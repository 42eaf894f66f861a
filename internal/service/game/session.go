package game

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/cat-and-mouse/backend/internal/domain"
)

// SessionOptions configures a single game session.
type SessionOptions struct {
	Rows      int
	Columns   int
	CatName   string
	MouseName string
	// Now is the clock used for timestamps; defaults to time.Now.
	Now func() time.Time
}

func (o SessionOptions) withDefaults() SessionOptions {
	if o.Rows == 0 {
		o.Rows = domain.DefaultRows
	}
	if o.Columns == 0 {
		o.Columns = domain.DefaultColumns
	}
	if o.CatName == "" {
		o.CatName = domain.PlayerA.String()
	}
	if o.MouseName == "" {
		o.MouseName = domain.PlayerB.String()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

// Session owns one engine and serializes every call into it. It runs the
// move contract: drop, check the mover for victory, then either settle the
// status or pass the turn.
type Session struct {
	GameID    string
	CreatedAt time.Time

	mu         sync.Mutex
	game       *domain.Game
	names      map[domain.PlayerID]string
	round      int
	startedAt  time.Time // first move of the round, zero before it
	finishedAt time.Time
	reason     string
	wins       map[domain.PlayerID]int
	draws      int
	notifier   Notifier
	logger     *zap.Logger
	now        func() time.Time
}

// MoveResult is the outcome of a successful Play.
type MoveResult struct {
	Placement  domain.Placement
	Status     domain.Status
	NextPlayer domain.PlayerID
	WinningRun []domain.Position
}

// Snapshot is a consistent read-only view of a session.
type Snapshot struct {
	GameID        string
	Round         int
	Board         domain.Board
	CurrentPlayer domain.PlayerID
	Status        domain.Status
	MoveCount     int
	Reason        string
	Names         map[domain.PlayerID]string
	Wins          map[domain.PlayerID]int
	Draws         int
}

func NewSession(gameID string, opts SessionOptions, notifier Notifier, logger *zap.Logger) (*Session, error) {
	opts = opts.withDefaults()

	g, err := domain.NewGameSize(opts.Rows, opts.Columns)
	if err != nil {
		return nil, fmt.Errorf("create %dx%d board: %w", opts.Rows, opts.Columns, err)
	}

	if notifier == nil {
		notifier = nopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		GameID:    gameID,
		CreatedAt: opts.Now(),
		game:      g,
		names: map[domain.PlayerID]string{
			domain.PlayerA: opts.CatName,
			domain.PlayerB: opts.MouseName,
		},
		round:    1,
		wins:     make(map[domain.PlayerID]int),
		notifier: notifier,
		logger:   logger.With(zap.String("game_id", gameID)),
		now:      opts.Now,
	}

	s.notify(Event{
		Type:     EventGameStart,
		GameID:   gameID,
		Round:    s.round,
		NextTurn: g.CurrentPlayer(),
		Board:    g.Board(),
	})

	return s, nil
}

// Play drops a piece for player into column and settles the turn. Engine
// errors are returned wrapped and leave the session unchanged.
func (s *Session) Play(player domain.PlayerID, column int) (MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	placement, err := s.game.DropPiece(column, player)
	if err != nil {
		return MoveResult{}, fmt.Errorf("%s drops in column %d: %w", s.names[player], column, err)
	}

	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}

	switch {
	case s.game.CheckVictory(player):
		err = s.game.SetStatus(domain.Won(player))
	case s.game.IsBoardFull():
		err = s.game.SetStatus(domain.Draw())
	default:
		err = s.game.AdvanceTurn()
	}
	if err != nil {
		// the engine rejected an outcome it just reported; nothing to recover
		return MoveResult{}, fmt.Errorf("settle move: %w", err)
	}

	result := MoveResult{
		Placement:  placement,
		Status:     s.game.Status(),
		NextPlayer: s.game.CurrentPlayer(),
	}
	if result.Status.Kind == domain.StatusWon {
		result.WinningRun, _ = s.game.WinningRun(player)
	}

	s.logger.Debug("move made",
		zap.String("player", s.names[player]),
		zap.Int("column", placement.Column),
		zap.Int("row", placement.Row),
		zap.Int("move", s.game.MoveCount()),
	)

	s.notify(Event{
		Type:     EventMoveMade,
		GameID:   s.GameID,
		Round:    s.round,
		Player:   player,
		Column:   placement.Column,
		Row:      placement.Row,
		NextTurn: result.NextPlayer,
		Board:    s.game.Board(),
	})

	if result.Status.IsTerminal() {
		s.finishLocked(result)
	}

	return result, nil
}

func (s *Session) finishLocked(result MoveResult) {
	s.finishedAt = s.now()
	duration := int(s.finishedAt.Sub(s.startedAt).Round(time.Second) / time.Second)

	event := Event{
		Type:            EventGameOver,
		GameID:          s.GameID,
		Round:           s.round,
		DurationSeconds: duration,
		Board:           s.game.Board(),
	}

	if result.Status.Kind == domain.StatusWon {
		winner := result.Status.Winner
		s.reason = ReasonConnectFour
		s.wins[winner]++
		event.Winner = winner
		event.WinnerName = s.names[winner]
		event.WinningRun = result.WinningRun
	} else {
		s.reason = ReasonDraw
		s.draws++
	}
	event.Reason = s.reason

	s.logger.Info("game over",
		zap.String("reason", s.reason),
		zap.String("winner", event.WinnerName),
		zap.Int("round", s.round),
		zap.Int("moves", s.game.MoveCount()),
		zap.Int("duration_seconds", duration),
	)

	s.notify(event)
}

// Reset starts a new round on an empty board. The score tally is kept.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.game.Reset()
	s.round++
	s.startedAt = time.Time{}
	s.finishedAt = time.Time{}
	s.reason = ""

	s.logger.Info("game reset", zap.Int("round", s.round))

	s.notify(Event{
		Type:     EventGameReset,
		GameID:   s.GameID,
		Round:    s.round,
		NextTurn: s.game.CurrentPlayer(),
		Board:    s.game.Board(),
	})
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make(map[domain.PlayerID]string, len(s.names))
	for p, n := range s.names {
		names[p] = n
	}
	wins := make(map[domain.PlayerID]int, len(s.wins))
	for p, n := range s.wins {
		wins[p] = n
	}

	return Snapshot{
		GameID:        s.GameID,
		Round:         s.round,
		Board:         s.game.Board(),
		CurrentPlayer: s.game.CurrentPlayer(),
		Status:        s.game.Status(),
		MoveCount:     s.game.MoveCount(),
		Reason:        s.reason,
		Names:         names,
		Wins:          wins,
		Draws:         s.draws,
	}
}

// CurrentPlayer is a shortcut for hosts that only need whose turn it is.
func (s *Session) CurrentPlayer() domain.PlayerID {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.CurrentPlayer()
}

func (s *Session) IsColumnPlayable(column int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.game.IsColumnPlayable(column)
}

// Name returns the display name of a player in this session.
func (s *Session) Name(player domain.PlayerID) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.names[player]
}

// isStale reports whether the session should be evicted: finished rounds
// linger for finishedTTL, unfinished ones for activeTTL since creation.
func (s *Session) isStale(now time.Time, finishedTTL, activeTTL time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.IsFinished() {
		return now.Sub(s.finishedAt) > finishedTTL
	}
	return now.Sub(s.CreatedAt) > activeTTL
}

func (s *Session) notify(event Event) {
	if err := s.notifier.Notify(event); err != nil {
		s.logger.Warn("failed to deliver event",
			zap.String("event", event.Type),
			zap.Error(err),
		)
	}
}
