// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is a person whose meals are tracked.
// Users are created once and never updated or deleted.
type User struct {
	ID uuid.UUID

	// SessionID is the opaque token carried in the sessionId cookie.
	// It is the only credential the API knows about. Nil for users that
	// were created outside the cookie flow.
	SessionID *string

	Name  string
	Email string

	CreatedAt time.Time
}
