// Package model defines database models for persistence layer.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/domain/entity"
)

// UserModel represents the user table in the database.
// UsernameKey and CompanyKey hold lower-cased copies for case-insensitive lookups.
type UserModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username        string    `gorm:"type:varchar(100);not null"`
	UsernameKey     string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	BusinessName    string    `gorm:"type:varchar(255);not null"`
	CompanyUsername string    `gorm:"type:varchar(100);not null;index"`
	CompanyKey      string    `gorm:"type:varchar(100);not null;index"`
	Role            string    `gorm:"type:varchar(20);not null"`
	Currency        string    `gorm:"type:varchar(3);default:'USD'"`
	Theme           string    `gorm:"type:varchar(10);default:'dark'"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:              m.ID,
		Username:        m.Username,
		PasswordHash:    m.PasswordHash,
		BusinessName:    m.BusinessName,
		CompanyUsername: m.CompanyUsername,
		Role:            entity.Role(m.Role),
		Currency:        m.Currency,
		Theme:           m.Theme,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:              user.ID,
		Username:        user.Username,
		UsernameKey:     strings.ToLower(user.Username),
		PasswordHash:    user.PasswordHash,
		BusinessName:    user.BusinessName,
		CompanyUsername: user.CompanyUsername,
		CompanyKey:      strings.ToLower(user.CompanyUsername),
		Role:            string(user.Role),
		Currency:        user.Currency,
		Theme:           user.Theme,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}
