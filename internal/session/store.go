package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pointsolution/docbooking/internal/domain"
)

// Record is what the platform keeps per signed-in browser: the upstream
// bearer token and a cached snapshot of the user. The two always live and die
// together; a teardown removes both at once.
type Record struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

var ErrNotFound = errors.New("session not found")

type Store interface {
	// Create stores a new record and returns its opaque id.
	Create(ctx context.Context, rec Record) (string, error)
	Get(ctx context.Context, id string) (*Record, error)
	// Update overwrites an existing record, refreshing its TTL.
	Update(ctx context.Context, id string, rec Record) error
	Delete(ctx context.Context, id string) error
}

func newID() string {
	return uuid.NewString()
}
