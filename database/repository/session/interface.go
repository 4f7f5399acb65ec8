// File: database/repository/session/interface.go
package sessionRepo

import (
	"context"
	"errors"
	"time"

	"bookingwizard/models"

	"github.com/go-redis/redis/v8"
)

// ErrNotFound is returned when a session key is missing or has expired.
var ErrNotFound = errors.New("session not found")

const (
	sessionPrefix = "wizard:session:"
	lockPrefix    = "wizard:submit-lock:"
)

// SessionRepository stores wizard sessions with a sliding TTL.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*models.WizardSession, error)
	Save(ctx context.Context, session *models.WizardSession) error
	Delete(ctx context.Context, sessionID string) error
	// AcquireSubmitLock reports false when another submission for the
	// session already holds the lock.
	AcquireSubmitLock(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, sessionID string) error
	SubmitLockHeld(ctx context.Context, sessionID string) (bool, error)
}

type redisSessionRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionRepo constructs a Redis-backed SessionRepository.
func NewRedisSessionRepo(client *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepo{client: client, ttl: ttl}
}
