// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when no user matches an ID or session token.
	ErrUserNotFound = errors.New("user not found")
)
