package model

import (
	"tasklist/internal/domain/entity"
)

// FromUserEntity converts a domain user into its persistence model.
func FromUserEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:               user.ID,
		Username:         user.Username,
		PasswordHash:     user.PasswordHash,
		RefreshTokenHash: user.RefreshTokenHash,
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
}

// ToEntity converts a persistence model into its domain user.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:               m.ID,
		Username:         m.Username,
		PasswordHash:     m.PasswordHash,
		RefreshTokenHash: m.RefreshTokenHash,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// FromTodoEntity converts a domain todo into its persistence model.
func FromTodoEntity(todo *entity.Todo) *TodoModel {
	return &TodoModel{
		ID:          todo.ID,
		Description: todo.Description,
		Completed:   todo.Completed,
		Position:    todo.Position,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
	}
}

// ToEntity converts a persistence model into its domain todo.
func (m *TodoModel) ToEntity() *entity.Todo {
	return &entity.Todo{
		ID:          m.ID,
		Description: m.Description,
		Completed:   m.Completed,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
