package usecase

import "errors"

var (
	// ErrMealNotFound is returned when no meal has the requested ID.
	ErrMealNotFound = errors.New("meal not found")

	// ErrOwnerNotFound is returned when a meal is written for a user that
	// does not exist.
	ErrOwnerNotFound = errors.New("meal owner not found")
)
