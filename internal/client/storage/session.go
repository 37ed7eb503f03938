package storage

import (
	"context"
	"errors"

	"github.com/maktab-uz/maktab/internal/client/session"
)

// ErrSessionNotFound indicates that no session is stored
var ErrSessionNotFound = errors.New("session not found")

// SessionStorage defines interface for persisting the client session
// between CLI invocations
type SessionStorage interface {
	// SaveSession stores session data, replacing any previous one
	SaveSession(ctx context.Context, data *session.Data) error

	// GetSession retrieves stored session data
	// Returns ErrSessionNotFound if nothing is stored
	GetSession(ctx context.Context) (*session.Data, error)

	// DeleteSession removes stored session data (logout)
	DeleteSession(ctx context.Context) error
}
