package db

import (
	"context"
	"time"

	"github.com/doduclong204/vietvibe/pkg/logger"
)

const TokenCleanupInterval = time.Hour

// CleanupExpiredTokens removes invalidated-token rows whose expiry has
// passed. Expired tokens fail JWT validation anyway, so dropping the
// blacklist row does not widen access.
func CleanupExpiredTokens(now time.Time) (int64, error) {
	if DB == nil {
		return 0, nil
	}
	res := DB.Where("expiry_time <= ?", now).Delete(&InvalidatedToken{})
	return res.RowsAffected, res.Error
}

func StartTokenCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = TokenCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := CleanupExpiredTokens(time.Now().UTC()); err != nil {
				logger.Error("failed to cleanup expired tokens", "error", err)
			}
		}
	}
}
