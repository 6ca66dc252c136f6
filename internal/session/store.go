package session

import (
	"context"
	"time"
)

// Session binds an authenticated principal to an opaque identifier.
// It stores identity pointers only, no auth state.
type Session struct {
	SessionID string    // unique session identifier
	UserID    string    // references the user document id
	SourceApp string    // originating client app recorded at login
	CreatedAt time.Time
	ExpiresAt time.Time // absolute expiry time
}

// Store defines how sessions are stored and retrieved.
// Implementations (e.g., Redis) must remain stateless and opaque.
type Store interface {
	Create(ctx context.Context, s Session) error
	Get(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
}
