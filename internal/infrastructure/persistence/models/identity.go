package models

import (
	"time"

	"github.com/scart/backend/internal/domain/identity"
	"github.com/scart/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	ID           uint              `gorm:"primaryKey;autoIncrement"`
	LoginID      string            `gorm:"type:varchar(128);not null;uniqueIndex"`
	DisplayName  string            `gorm:"type:varchar(128);not null"`
	PasswordHash string            `gorm:"type:varchar(256);not null"`
	Role         identity.UserRole `gorm:"type:varchar(32);not null;default:'user'"`
	IsActive     bool              `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		LoginID:      m.LoginID,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		Role:         m.Role,
		IsActive:     m.IsActive,
	}
}

// UserModelFromDomain creates a persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		LoginID:      u.LoginID,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
