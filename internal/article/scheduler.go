package article

import (
	"context"
	"time"

	"blogcms-be/internal/logger"

	"go.uber.org/zap"
)

// RunScheduler publishes due scheduled articles every interval until ctx
// is cancelled.
func RunScheduler(ctx context.Context, svc Service, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := svc.PublishDue(ctx)
			if err != nil {
				logger.L().Error("scheduled publish failed", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.L().Info("published scheduled articles", zap.Int64("count", n))
			}
		}
	}
}
