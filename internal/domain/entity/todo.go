// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Todo is a single task item owned by exactly one user through the
// ownership relation. Position values define display order within the
// owner's list; they need not be contiguous or globally unique.
type Todo struct {
	ID          uuid.UUID
	Description string
	Completed   bool
	Position    int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TodoChanges carries a partial update for a todo. A nil field leaves the
// corresponding column untouched.
type TodoChanges struct {
	Description *string
	Completed   *bool
}

// Empty reports whether the change set would modify nothing.
func (c TodoChanges) Empty() bool {
	return c.Description == nil && c.Completed == nil
}
