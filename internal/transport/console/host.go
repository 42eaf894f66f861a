package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/iamasit07/cat-and-mouse/backend/internal/domain"
	"github.com/iamasit07/cat-and-mouse/backend/internal/service/game"
)

const help = "Type a column number to drop a piece, r to start over, q to quit."

// Host plays one hot-seat session from line based input.
type Host struct {
	in       io.Reader
	renderer *Renderer
	manager  *game.Manager
	logger   *zap.Logger
}

func NewHost(in io.Reader, renderer *Renderer, manager *game.Manager, logger *zap.Logger) *Host {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Host{
		in:       in,
		renderer: renderer,
		manager:  manager,
		logger:   logger.With(zap.String("component", "console")),
	}
}

// Run creates a session and feeds it input until q, end of input, or ctx is
// cancelled. The session is removed from the manager on return.
func (h *Host) Run(ctx context.Context) error {
	h.renderer.Message(help)

	session, err := h.manager.CreateSession()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer h.manager.Remove(session.GameID)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(h.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}
				h.logger.Info("input closed")
				return nil
			}
			if quit := h.handleLine(session, line); quit {
				h.logger.Info("player quit", zap.String("game_id", session.GameID))
				return nil
			}
		}
	}
}

func (h *Host) handleLine(session *game.Session, line string) bool {
	input := strings.ToLower(strings.TrimSpace(line))

	switch input {
	case "":
		return false
	case "q", "quit":
		return true
	case "r", "reset":
		session.Reset()
		return false
	case "h", "help", "?":
		h.renderer.Message(help)
		return false
	}

	number, err := strconv.Atoi(input)
	if err != nil {
		h.renderer.Message("%q is not a column. %s", line, help)
		return false
	}

	column := number - 1
	result, err := session.Play(session.CurrentPlayer(), column)
	if err != nil {
		h.explain(err, number)
		return false
	}

	if result.Status.IsTerminal() {
		snap := session.Snapshot()
		h.renderer.Message("Score: %s %d, %s %d, draws %d. Type r for a rematch or q to quit.",
			snap.Names[domain.PlayerA], snap.Wins[domain.PlayerA],
			snap.Names[domain.PlayerB], snap.Wins[domain.PlayerB],
			snap.Draws)
		return false
	}

	h.renderer.NextTurn(result.NextPlayer)
	return false
}

func (h *Host) explain(err error, number int) {
	switch {
	case errors.Is(err, domain.ErrColumnOutOfRange):
		h.renderer.Message("There is no column %d.", number)
	case errors.Is(err, domain.ErrColumnFull):
		h.renderer.Message("Column %d is full, pick another one.", number)
	case errors.Is(err, domain.ErrGameAlreadyOver):
		h.renderer.Message("This round is over. Type r for a rematch or q to quit.")
	default:
		h.logger.Warn("move rejected", zap.Error(err))
	}
}
