package sync

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// StartWorker runs a full sync immediately and then on every tick until ctx
// is cancelled. Sync errors are logged and the loop keeps going; a flaky node
// should not kill the worker.
func StartWorker(ctx context.Context, s *Synchronizer, interval time.Duration, logger *zap.Logger) {
	go func() {
		logger.Info("sync worker started", zap.Duration("interval", interval))
		if err := s.SyncAll(ctx); err != nil {
			logger.Warn("initial sync incomplete", zap.Error(err))
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Info("sync worker stopped")
				return
			case <-ticker.C:
				if err := s.SyncAll(ctx); err != nil {
					logger.Warn("sync pass incomplete", zap.Error(err))
				}
			}
		}
	}()
}
