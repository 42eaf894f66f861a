package game

import "github.com/iamasit07/cat-and-mouse/backend/internal/domain"

const (
	EventGameStart = "game_start"
	EventMoveMade  = "move_made"
	EventGameOver  = "game_over"
	EventGameReset = "game_reset"
)

const (
	ReasonConnectFour = "connect_four"
	ReasonDraw        = "draw"
)

// Event is what a session reports back to the presentation layer.
type Event struct {
	Type     string
	GameID   string
	Round    int
	Player   domain.PlayerID
	Column   int
	Row      int
	NextTurn domain.PlayerID
	// set on game_over; Winner is NoPlayer for a draw
	Winner          domain.PlayerID
	WinnerName      string
	Reason          string
	DurationSeconds int
	WinningRun      []domain.Position
	Board           domain.Board
}

// Notifier receives session events. Implementations must not call back into
// the session that sent the event.
type Notifier interface {
	Notify(event Event) error
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) error { return nil }
