// Package model contains the GORM persistence models mirroring the database schema.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Usernames are unique and compared
// case-sensitively. RefreshTokenHash holds the SHA-256 of the single live
// refresh token; NULL means no active session.
type UserModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Username         string    `gorm:"type:varchar(100);unique;not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	RefreshTokenHash *string   `gorm:"type:varchar(255);unique"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Ownerships []UserTodoModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
