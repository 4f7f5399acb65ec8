// File: database/repository/session/lock.go
package sessionRepo

import (
	"context"
	"fmt"
	"time"
)

func (r *redisSessionRepo) AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	ok, err := r.client.SetNX(ctx, lockPrefix+sessionID, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	return ok, nil
}

func (r *redisSessionRepo) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, lockPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to release submit lock: %w", err)
	}
	return nil
}

func (r *redisSessionRepo) SubmitLockHeld(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, lockPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check submit lock: %w", err)
	}
	return n > 0, nil
}
