package domain

// Game is the board engine for a single match. It is not safe for concurrent
// use; one owner serializes all calls.
type Game struct {
	board         Board
	currentPlayer PlayerID
	status        Status
	moveCount     int
	// set once the current player has dropped, cleared by AdvanceTurn
	dropped bool
	last    Placement
}

// NewGame returns a game on the default 6x7 board.
func NewGame() *Game {
	return &Game{
		board:         NewBoard(),
		currentPlayer: PlayerA,
		status:        InProgress(),
	}
}

func NewGameSize(rows, columns int) (*Game, error) {
	board, err := NewBoardSize(rows, columns)
	if err != nil {
		return nil, err
	}
	return &Game{
		board:         board,
		currentPlayer: PlayerA,
		status:        InProgress(),
	}, nil
}

func (g *Game) IsColumnPlayable(column int) bool {
	return g.board.IsColumnPlayable(column)
}

// DropPiece places a piece for player in column. It neither advances the turn
// nor evaluates victory; the caller follows up with CheckVictory and then
// SetStatus or AdvanceTurn.
func (g *Game) DropPiece(column int, player PlayerID) (Placement, error) {
	if g.status.IsTerminal() {
		return Placement{}, ErrGameAlreadyOver
	}

	if column < 0 || column >= g.board.columns {
		return Placement{}, ErrColumnOutOfRange
	}

	if !g.board.IsColumnPlayable(column) {
		return Placement{}, ErrColumnFull
	}

	if player != g.currentPlayer || g.dropped {
		return Placement{}, ErrWrongPlayerTurn
	}

	row, err := g.board.DropPiece(column, player.Marker())
	if err != nil {
		return Placement{}, err
	}

	g.moveCount++
	g.dropped = true
	g.last = Placement{Row: row, Column: column, Player: player}

	return g.last, nil
}

// CheckVictory reports whether player has a run anywhere on the board.
func (g *Game) CheckVictory(player PlayerID) bool {
	return CheckVictory(g.board, player)
}

// WinningRun returns the cells of a run of player, if any.
func (g *Game) WinningRun(player PlayerID) ([]Position, bool) {
	return FindRun(g.board, player)
}

func (g *Game) AdvanceTurn() error {
	if g.status.IsTerminal() {
		return ErrGameAlreadyOver
	}
	if !g.dropped {
		return ErrTurnNotTaken
	}

	g.currentPlayer = g.currentPlayer.Opponent()
	g.dropped = false
	return nil
}

// SetStatus records the outcome determined by the caller. Only InProgress can
// transition, and only to an outcome the board actually shows.
func (g *Game) SetStatus(status Status) error {
	if g.status.IsTerminal() {
		return ErrGameAlreadyOver
	}

	switch status.Kind {
	case StatusWon:
		if !status.Winner.Valid() {
			return ErrInvalidPlayer
		}
		if !g.CheckVictory(status.Winner) {
			return ErrInvalidTransition
		}
		g.status = Won(status.Winner)
	case StatusDraw:
		if !g.board.IsFull() || g.CheckVictory(PlayerA) || g.CheckVictory(PlayerB) {
			return ErrInvalidTransition
		}
		g.status = Draw()
	default:
		return ErrInvalidTransition
	}

	return nil
}

// Reset empties the board and hands the first move back to PlayerA. The board
// dimensions are kept.
func (g *Game) Reset() {
	g.board = Board{
		rows:    g.board.rows,
		columns: g.board.columns,
		cells:   make([]Cell, g.board.rows*g.board.columns),
	}
	g.currentPlayer = PlayerA
	g.status = InProgress()
	g.moveCount = 0
	g.dropped = false
	g.last = Placement{}
}

func (g *Game) CurrentPlayer() PlayerID {
	return g.currentPlayer
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) CellAt(row, column int) Cell {
	return g.board.CellAt(row, column)
}

func (g *Game) Rows() int {
	return g.board.rows
}

func (g *Game) Columns() int {
	return g.board.columns
}

func (g *Game) MoveCount() int {
	return g.moveCount
}

// LastPlacement returns the most recent successful drop since the last reset.
func (g *Game) LastPlacement() (Placement, bool) {
	return g.last, g.moveCount > 0
}

func (g *Game) IsBoardFull() bool {
	return g.board.IsFull()
}

// Board returns a copy of the grid; changing it does not affect the game.
func (g *Game) Board() Board {
	return g.board.Clone()
}

func (g *Game) IsFinished() bool {
	return g.status.IsTerminal()
}
