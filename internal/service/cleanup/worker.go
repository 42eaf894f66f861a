package cleanup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/iamasit07/cat-and-mouse/backend/internal/service/game"
)

type Worker struct {
	SessionManager *game.Manager
	Interval       time.Duration
	logger         *zap.Logger
}

func NewWorker(sm *game.Manager, interval time.Duration, logger *zap.Logger) *Worker {
	if interval <= 0 {
		interval = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		SessionManager: sm,
		Interval:       interval,
		logger:         logger.With(zap.String("component", "cleanup")),
	}
}

// Run cleans up once right away and then on every tick until ctx is done.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("background worker started", zap.Duration("interval", w.Interval))
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("background worker stopped")
			return nil
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

func (w *Worker) runCleanup() {
	removed := w.SessionManager.CleanupOldSessions()
	w.logger.Debug("cleanup pass finished",
		zap.Int("removed", removed),
		zap.Int("remaining", w.SessionManager.Len()),
	)
}
