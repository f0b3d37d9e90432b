// Package entity defines the domain entities for the meals feature.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Diet flags. Any other stored value counts as off-plan.
const (
	InDiet  = "in"
	OutDiet = "out"
)

// Meal is a single meal recorded by a user.
type Meal struct {
	ID     uuid.UUID
	UserID uuid.UUID

	Name        string
	Description string

	// DateTime is free text supplied by the client. Summaries order meals by
	// its raw byte-wise string value.
	DateTime string

	// InOrOut is stored lower-cased.
	InOrOut string

	CreatedAt time.Time
}

// NormalizeInOrOut lower-cases a diet flag. Unknown values are kept as-is.
func NormalizeInOrOut(v string) string {
	return strings.ToLower(v)
}
