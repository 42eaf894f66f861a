package domain

import (
	"errors"
	"math/rand"
	"testing"
)

// drawSequence fills a 6x7 board without either player lining up four. Each
// column ends up alternating bottom to top, columns 0,1,4,5 starting with the
// Cat and columns 2,3,6 with the Mouse.
var drawSequence = func() []int {
	pair := []int{0, 2, 1, 3, 4, 6, 5, 0, 2, 1, 3, 4, 6, 5}
	seq := make([]int, 0, DefaultRows*DefaultColumns)
	for i := 0; i < DefaultRows/2; i++ {
		seq = append(seq, pair...)
	}
	return seq
}()

// play follows the calling contract a session uses after every drop.
func play(t *testing.T, g *Game, column int) Placement {
	t.Helper()

	mover := g.CurrentPlayer()
	placement, err := g.DropPiece(column, mover)
	if err != nil {
		t.Fatalf("drop in column %d by %v: %v", column, mover, err)
	}

	switch {
	case g.CheckVictory(mover):
		if err := g.SetStatus(Won(mover)); err != nil {
			t.Fatalf("SetStatus(Won): %v", err)
		}
	case g.IsBoardFull():
		if err := g.SetStatus(Draw()); err != nil {
			t.Fatalf("SetStatus(Draw): %v", err)
		}
	default:
		if err := g.AdvanceTurn(); err != nil {
			t.Fatalf("AdvanceTurn: %v", err)
		}
	}
	return placement
}

func TestNewGameInitialState(t *testing.T) {
	g := NewGame()
	if g.CurrentPlayer() != PlayerA {
		t.Fatalf("expected the Cat to move first, got %v", g.CurrentPlayer())
	}
	if g.Status() != InProgress() {
		t.Fatalf("expected in progress, got %v", g.Status())
	}
	if g.MoveCount() != 0 {
		t.Fatalf("expected no moves, got %d", g.MoveCount())
	}
	if _, ok := g.LastPlacement(); ok {
		t.Fatalf("new game should have no last placement")
	}
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Columns(); col++ {
			if g.CellAt(row, col) != Empty {
				t.Fatalf("cell (%d,%d) not empty", row, col)
			}
		}
	}
}

func TestNewGameSize(t *testing.T) {
	g, err := NewGameSize(4, 5)
	if err != nil {
		t.Fatal(err)
	}
	if g.Rows() != 4 || g.Columns() != 5 {
		t.Fatalf("expected 4x5, got %dx%d", g.Rows(), g.Columns())
	}
	if _, err := NewGameSize(0, 5); !errors.Is(err, ErrInvalidDimensions) {
		t.Fatalf("expected ErrInvalidDimensions, got %v", err)
	}
}

func TestGravityUntilColumnFull(t *testing.T) {
	g := NewGame()
	for want := 0; want < DefaultRows; want++ {
		p := play(t, g, 0)
		if p.Row != want || p.Column != 0 {
			t.Fatalf("drop %d landed at (%d,%d)", want, p.Row, p.Column)
		}
	}

	if g.IsColumnPlayable(0) {
		t.Fatalf("column 0 should be full")
	}
	if _, err := g.DropPiece(0, g.CurrentPlayer()); !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if g.MoveCount() != DefaultRows {
		t.Fatalf("failed drop counted as a move")
	}
}

func TestDropPieceOutOfRangeColumn(t *testing.T) {
	g := NewGame()
	for _, col := range []int{-1, DefaultColumns} {
		if _, err := g.DropPiece(col, PlayerA); !errors.Is(err, ErrColumnOutOfRange) {
			t.Errorf("column %d: expected ErrColumnOutOfRange, got %v", col, err)
		}
	}
	if g.MoveCount() != 0 {
		t.Fatalf("rejected drops changed the move count")
	}
}

func TestWrongPlayerTurn(t *testing.T) {
	g := NewGame()

	if _, err := g.DropPiece(0, PlayerB); !errors.Is(err, ErrWrongPlayerTurn) {
		t.Fatalf("Mouse moving first: expected ErrWrongPlayerTurn, got %v", err)
	}
	if _, err := g.DropPiece(0, PlayerA); err != nil {
		t.Fatalf("Cat's first move: %v", err)
	}
	if _, err := g.DropPiece(0, PlayerA); !errors.Is(err, ErrWrongPlayerTurn) {
		t.Fatalf("Cat moving twice: expected ErrWrongPlayerTurn, got %v", err)
	}
	if _, err := g.DropPiece(0, PlayerB); !errors.Is(err, ErrWrongPlayerTurn) {
		t.Fatalf("Mouse moving before the turn advanced: expected ErrWrongPlayerTurn, got %v", err)
	}
	if _, err := g.DropPiece(0, NoPlayer); !errors.Is(err, ErrWrongPlayerTurn) {
		t.Fatalf("NoPlayer: expected ErrWrongPlayerTurn, got %v", err)
	}
	if g.MoveCount() != 1 || g.CellAt(1, 0) != Empty {
		t.Fatalf("rejected drops mutated the board")
	}

	if err := g.AdvanceTurn(); err != nil {
		t.Fatal(err)
	}
	p, err := g.DropPiece(0, PlayerB)
	if err != nil {
		t.Fatalf("Mouse after advance: %v", err)
	}
	if p.Row != 1 || p.Player != PlayerB {
		t.Fatalf("unexpected placement %+v", p)
	}
}

func TestAdvanceTurnRequiresADrop(t *testing.T) {
	g := NewGame()
	if err := g.AdvanceTurn(); !errors.Is(err, ErrTurnNotTaken) {
		t.Fatalf("expected ErrTurnNotTaken, got %v", err)
	}
	if g.CurrentPlayer() != PlayerA {
		t.Fatalf("rejected advance flipped the turn")
	}
}

func TestTurnParity(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewGame()

	for n := 1; n <= 12; n++ {
		moves := g.Board().ValidMoves()
		play(t, g, moves[rng.Intn(len(moves))])
		if g.IsFinished() {
			break
		}

		want := PlayerA
		if n%2 == 1 {
			want = PlayerB
		}
		if g.CurrentPlayer() != want {
			t.Fatalf("after %d moves expected %v to move, got %v", n, want, g.CurrentPlayer())
		}
	}
}

func TestOccupiedCountMatchesSuccessfulDrops(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		g := NewGame()
		successes := 0

		for attempt := 0; attempt < 200 && !g.IsFinished(); attempt++ {
			col := rng.Intn(DefaultColumns+2) - 1
			mover := g.CurrentPlayer()
			if _, err := g.DropPiece(col, mover); err != nil {
				continue
			}
			successes++

			switch {
			case g.CheckVictory(mover):
				g.SetStatus(Won(mover))
			case g.IsBoardFull():
				g.SetStatus(Draw())
			default:
				g.AdvanceTurn()
			}

			b := g.Board()
			a, m := b.Count(OccupiedByPlayerA), b.Count(OccupiedByPlayerB)
			if a+m != successes {
				t.Fatalf("seed %d: %d pieces on board after %d drops", seed, a+m, successes)
			}
			if a-m > 1 || m-a > 1 {
				t.Fatalf("seed %d: piece counts drifted apart (%d vs %d)", seed, a, m)
			}
		}

		if successes > DefaultRows*DefaultColumns {
			t.Fatalf("seed %d: more drops than cells", seed)
		}
	}
}

func TestCatWinsAlongTheBottomRow(t *testing.T) {
	g := NewGame()

	// Mouse answers on top of each Cat piece.
	for _, col := range []int{0, 0, 1, 1, 2, 2} {
		play(t, g, col)
		if g.IsFinished() {
			t.Fatalf("game ended early after column %d", col)
		}
	}
	p := play(t, g, 3)

	if p.Row != 0 || p.Column != 3 {
		t.Fatalf("winning piece landed at (%d,%d)", p.Row, p.Column)
	}
	if !g.CheckVictory(PlayerA) {
		t.Fatalf("expected a horizontal win for the Cat")
	}
	if g.Status() != Won(PlayerA) {
		t.Fatalf("expected status won by Cat, got %v", g.Status())
	}

	run, ok := g.WinningRun(PlayerA)
	if !ok {
		t.Fatalf("expected a winning run")
	}
	for i, pos := range run {
		if pos.Row != 0 || pos.Column != i {
			t.Fatalf("unexpected run %v", run)
		}
	}
}

func TestDrawOnFullBoard(t *testing.T) {
	g := NewGame()
	for i, col := range drawSequence {
		if g.IsFinished() {
			t.Fatalf("game ended after %d moves with %v", i, g.Status())
		}
		play(t, g, col)
	}

	if g.Status() != Draw() {
		t.Fatalf("expected a draw, got %v\n%s", g.Status(), g.Board())
	}
	if g.MoveCount() != DefaultRows*DefaultColumns {
		t.Fatalf("expected %d moves, got %d", DefaultRows*DefaultColumns, g.MoveCount())
	}
}

func TestTerminalStateRejectsCommands(t *testing.T) {
	g := NewGame()
	for _, col := range []int{0, 0, 1, 1, 2, 2, 3} {
		play(t, g, col)
	}
	before := g.Board().String()

	if _, err := g.DropPiece(4, g.CurrentPlayer()); !errors.Is(err, ErrGameAlreadyOver) {
		t.Errorf("DropPiece: expected ErrGameAlreadyOver, got %v", err)
	}
	if err := g.AdvanceTurn(); !errors.Is(err, ErrGameAlreadyOver) {
		t.Errorf("AdvanceTurn: expected ErrGameAlreadyOver, got %v", err)
	}
	if err := g.SetStatus(Draw()); !errors.Is(err, ErrGameAlreadyOver) {
		t.Errorf("SetStatus: expected ErrGameAlreadyOver, got %v", err)
	}
	if g.Board().String() != before || g.Status() != Won(PlayerA) {
		t.Fatalf("terminal game changed")
	}
}

func TestSetStatusMustMatchTheBoard(t *testing.T) {
	g := NewGame()
	play(t, g, 0)

	tests := []struct {
		name   string
		status Status
		want   error
	}{
		{"won without a run", Won(PlayerA), ErrInvalidTransition},
		{"draw with space left", Draw(), ErrInvalidTransition},
		{"back to in progress", InProgress(), ErrInvalidTransition},
		{"won by nobody", Won(NoPlayer), ErrInvalidPlayer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.SetStatus(tt.status); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if g.Status() != InProgress() {
				t.Errorf("status changed to %v", g.Status())
			}
		})
	}
}

func TestResetAfterWin(t *testing.T) {
	g := NewGame()
	for _, col := range []int{0, 0, 1, 1, 2, 2, 3} {
		play(t, g, col)
	}
	if g.Status() != Won(PlayerA) {
		t.Fatalf("setup: expected Cat win, got %v", g.Status())
	}

	g.Reset()

	if g.Status() != InProgress() || g.CurrentPlayer() != PlayerA || g.MoveCount() != 0 {
		t.Fatalf("reset left status=%v player=%v moves=%d", g.Status(), g.CurrentPlayer(), g.MoveCount())
	}
	if g.Board().Count(Empty) != DefaultRows*DefaultColumns {
		t.Fatalf("reset left pieces on the board")
	}
	if err := g.AdvanceTurn(); !errors.Is(err, ErrTurnNotTaken) {
		t.Fatalf("reset must clear the pending turn, got %v", err)
	}
	play(t, g, 5)
	if g.CellAt(0, 5) != OccupiedByPlayerA {
		t.Fatalf("first move after reset should belong to the Cat")
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	g := NewGame()
	for _, col := range []int{3, 3, 4} {
		play(t, g, col)
	}
	before := g.Board().String()

	for i := 0; i < 5; i++ {
		if g.CheckVictory(PlayerA) || g.CheckVictory(PlayerB) {
			t.Fatalf("unexpected victory")
		}
		if !g.IsColumnPlayable(3) || g.IsColumnPlayable(9) {
			t.Fatalf("playability changed between calls")
		}
	}
	if g.Board().String() != before || g.MoveCount() != 3 || g.CurrentPlayer() != PlayerB {
		t.Fatalf("queries mutated the game")
	}
}

func TestBoardReturnsCopy(t *testing.T) {
	g := NewGame()
	b := g.Board()
	b.DropPiece(0, OccupiedByPlayerB)

	if g.CellAt(0, 0) != Empty {
		t.Fatalf("mutating the returned board leaked into the game")
	}
}
