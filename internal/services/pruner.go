package services

import (
	"context"
	"time"

	"github.com/sbilibin2017/gw-password-history/internal/logger"
)

//go:generate mockgen -source=pruner.go -destination=mock_pruner.go -package=services

// Retention policies for history records older than the enforcement window.
const (
	RetentionForever = "forever"
	RetentionPrune   = "prune"
)

// HistoryDeleter removes old history records.
type HistoryDeleter interface {
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// HistoryPruner deletes history records that fell out of the enforcement window.
type HistoryPruner struct {
	history  HistoryDeleter
	window   time.Duration
	interval time.Duration
	now      func() time.Time
}

// NewHistoryPruner creates a HistoryPruner.
func NewHistoryPruner(history HistoryDeleter, window, interval time.Duration) *HistoryPruner {
	return &HistoryPruner{
		history:  history,
		window:   window,
		interval: interval,
		now:      time.Now,
	}
}

// PruneOnce deletes records with changed_at before now-window.
func (p *HistoryPruner) PruneOnce(ctx context.Context) (int64, error) {
	cutoff := p.now().UTC().Add(-p.window)

	n, err := p.history.DeleteBefore(ctx, cutoff)
	if err != nil {
		logger.Log.Errorw("failed to prune password history", "cutoff", cutoff, "error", err)
		return 0, err
	}

	logger.Log.Infow("password history pruned", "cutoff", cutoff, "deleted", n)
	return n, nil
}

// Run prunes once per interval until ctx is done.
func (p *HistoryPruner) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Log.Info("password history pruner stopped")
			return
		case <-ticker.C:
			_, _ = p.PruneOnce(ctx)
		}
	}
}
