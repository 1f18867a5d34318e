package model

import (
	"time"

	"github.com/google/uuid"
)

// TodoModel mirrors the 'todos' table. Position defines display order within
// an owner's list; values are unique per owner, not globally.
type TodoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Description string    `gorm:"type:text;not null"`
	Completed   bool      `gorm:"not null;default:false"`
	Position    int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TodoModel) TableName() string {
	return "todos"
}

// UserTodoModel mirrors the 'user_todos' join table, the ownership relation
// between users and todos. One row per todo, created in the same transaction
// as the todo itself.
type UserTodoModel struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TodoID    uuid.UUID `gorm:"type:uuid;primaryKey;uniqueIndex:idx_user_todos_todo_id"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserTodoModel) TableName() string {
	return "user_todos"
}
