// Package session holds the server-side login session records. A token that
// does not resolve to a live, unexpired record never authenticates, and
// logout removes the record, so tokens are revocable at any time.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a token has no live, unexpired record.
var ErrNotFound = errors.New("session: not found")

// Record is one issued session.
type Record struct {
	Token     string
	UserID    uint
	ExpiresAt time.Time
}

// Repository stores session records. Implementations must treat Delete of an
// absent token as a no-op and must never return expired records from Get.
type Repository interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, token string) (*Record, error)
	Delete(ctx context.Context, token string) error
	// DeleteExpired removes stale rows; backends with native expiry may
	// implement it as a no-op.
	DeleteExpired(ctx context.Context) (int64, error)
}

// NewToken returns a fresh opaque session token.
func NewToken() string {
	return uuid.NewString()
}
