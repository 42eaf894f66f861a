package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/iamasit07/cat-and-mouse/backend/internal/domain"
	"github.com/iamasit07/cat-and-mouse/backend/internal/service/game"
)

const (
	catColor   = "#FF69B4"
	mouseColor = "#A0A0A0"
)

// Renderer prints session events as text. It implements game.Notifier.
type Renderer struct {
	mu      sync.Mutex
	out     io.Writer
	profile termenv.Profile
	names   map[domain.PlayerID]string
}

func NewRenderer(out io.Writer, profile termenv.Profile, names map[domain.PlayerID]string) *Renderer {
	return &Renderer{out: out, profile: profile, names: names}
}

func (r *Renderer) Notify(event game.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var s strings.Builder
	switch event.Type {
	case game.EventGameStart, game.EventGameReset:
		fmt.Fprintf(&s, "Round %d begins.\n", event.Round)
		s.WriteString(r.board(event.Board, nil))
		fmt.Fprintf(&s, "%s to move.\n", r.names[event.NextTurn])
	case game.EventMoveMade:
		fmt.Fprintf(&s, "%s dropped into column %d.\n", r.names[event.Player], event.Column+1)
		s.WriteString(r.board(event.Board, nil))
	case game.EventGameOver:
		s.WriteString(r.board(event.Board, event.WinningRun))
		if event.Reason == game.ReasonDraw {
			fmt.Fprintf(&s, "Draw after %d seconds!\n", event.DurationSeconds)
		} else {
			fmt.Fprintf(&s, "%s wins in %d seconds!\n", event.WinnerName, event.DurationSeconds)
		}
	default:
		return nil
	}

	_, err := io.WriteString(r.out, s.String())
	return err
}

// Message prints a line that is not tied to a session event.
func (r *Renderer) Message(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, format+"\n", args...)
}

// NextTurn prints the prompt for the player to move.
func (r *Renderer) NextTurn(player domain.PlayerID) {
	r.Message("%s to move.", r.names[player])
}

// board draws the grid top row first under a row of 1-based column numbers.
// Cells listed in highlight are shown reversed.
func (r *Renderer) board(b domain.Board, highlight []domain.Position) string {
	marked := make(map[domain.Position]bool, len(highlight))
	for _, p := range highlight {
		marked[p] = true
	}

	var s strings.Builder
	for col := 0; col < b.Columns(); col++ {
		if col > 0 {
			s.WriteByte(' ')
		}
		fmt.Fprintf(&s, "%d", col+1)
	}
	s.WriteByte('\n')

	for row := b.Rows() - 1; row >= 0; row-- {
		for col := 0; col < b.Columns(); col++ {
			if col > 0 {
				s.WriteByte(' ')
			}
			s.WriteString(r.cell(b.CellAt(row, col), marked[domain.Position{Row: row, Column: col}]))
		}
		s.WriteByte('\n')
	}
	return s.String()
}

func (r *Renderer) cell(c domain.Cell, highlight bool) string {
	styled := r.profile.String(c.String())
	switch c {
	case domain.OccupiedByPlayerA:
		styled = styled.Foreground(r.profile.Color(catColor)).Bold()
	case domain.OccupiedByPlayerB:
		styled = styled.Foreground(r.profile.Color(mouseColor)).Bold()
	}
	if highlight {
		styled = styled.Reverse()
	}
	return styled.String()
}
