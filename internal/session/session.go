// Package session stores per-customer dialogue state: the transcript and
// the finalization flag. One customer interaction maps to one session.
package session

import (
	"context"
	"errors"
	"time"

	"order-assistant/internal/domain"
)

var (
	ErrNotFound         = errors.New("session not found")
	ErrVersionConflict  = errors.New("session version conflict")
	ErrInvalidStoreType = errors.New("invalid session store type")
	ErrInvalidConfig    = errors.New("invalid session store configuration")
)

// Data is the serializable state of one session. The transcript is
// append-only; Finalized latches to true at most once and only a full
// reset (Delete + Create) clears it.
type Data struct {
	ID         string        `json:"id"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Version    int64         `json:"version"`
	Transcript []domain.Turn `json:"transcript"`
	Finalized  bool          `json:"finalized"`
}

// Store persists sessions. Updates use optimistic locking on Version so a
// lost write is detected rather than silently overwritten.
type Store interface {
	// Create stores a new session with Version set to 1.
	Create(ctx context.Context, data *Data) error

	// Get retrieves a session by ID. A missing session yields (nil, nil),
	// not an error.
	Get(ctx context.Context, id string) (*Data, error)

	// Update persists an existing session. Returns ErrVersionConflict when
	// the stored version differs from data.Version, ErrNotFound when the
	// session does not exist.
	Update(ctx context.Context, data *Data) error

	// Delete removes a session by ID. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases store resources.
	Close() error
}
