package domain

// PlayerID identifies one of the two players. The zero value is NoPlayer and
// never takes a turn.
type PlayerID uint8

const (
	NoPlayer PlayerID = iota
	PlayerA           // the Cat, always moves first
	PlayerB           // the Mouse
)

func (p PlayerID) String() string {
	switch p {
	case PlayerA:
		return "Cat"
	case PlayerB:
		return "Mouse"
	default:
		return "none"
	}
}

// Valid reports whether p is one of the two real players.
func (p PlayerID) Valid() bool {
	return p == PlayerA || p == PlayerB
}

// Opponent returns the other player, or NoPlayer for an invalid id.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return NoPlayer
	}
}

// Marker returns the cell value a piece of this player leaves on the board.
func (p PlayerID) Marker() Cell {
	switch p {
	case PlayerA:
		return OccupiedByPlayerA
	case PlayerB:
		return OccupiedByPlayerB
	default:
		return Empty
	}
}

// Cell is the content of one grid square.
type Cell uint8

const (
	Empty Cell = iota
	OccupiedByPlayerA
	OccupiedByPlayerB
)

// Owner returns the player whose piece is in the cell.
func (c Cell) Owner() PlayerID {
	switch c {
	case OccupiedByPlayerA:
		return PlayerA
	case OccupiedByPlayerB:
		return PlayerB
	default:
		return NoPlayer
	}
}

func (c Cell) String() string {
	switch c {
	case OccupiedByPlayerA:
		return "C"
	case OccupiedByPlayerB:
		return "M"
	default:
		return "."
	}
}

const (
	DefaultRows    = 6
	DefaultColumns = 7
	ToWin          = 4
)

// to represent the game status
type StatusKind string

const (
	StatusInProgress StatusKind = "in_progress"
	StatusWon        StatusKind = "won"
	StatusDraw       StatusKind = "draw"
)

// Status is the outcome of a game so far. Winner is only set when Kind is
// StatusWon.
type Status struct {
	Kind   StatusKind
	Winner PlayerID
}

func InProgress() Status {
	return Status{Kind: StatusInProgress}
}

func Won(player PlayerID) Status {
	return Status{Kind: StatusWon, Winner: player}
}

func Draw() Status {
	return Status{Kind: StatusDraw}
}

// IsTerminal reports whether no further moves are accepted.
func (s Status) IsTerminal() bool {
	return s.Kind == StatusWon || s.Kind == StatusDraw
}

func (s Status) String() string {
	if s.Kind == StatusWon {
		return "won by " + s.Winner.String()
	}
	return string(s.Kind)
}

// Position addresses a single cell, row 0 being the bottom row.
type Position struct {
	Row    int
	Column int
}

// Placement is where a dropped piece came to rest.
type Placement struct {
	Row    int
	Column int
	Player PlayerID
}

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnOutOfRange  Error = "column out of range"
	ErrColumnFull        Error = "column is full"
	ErrGameAlreadyOver   Error = "game is already over"
	ErrWrongPlayerTurn   Error = "not this player's turn"
	ErrTurnNotTaken      Error = "current player has not dropped a piece yet"
	ErrInvalidTransition Error = "invalid status transition"
	ErrInvalidPlayer     Error = "invalid player"
	ErrInvalidDimensions Error = "invalid board dimensions"
)
