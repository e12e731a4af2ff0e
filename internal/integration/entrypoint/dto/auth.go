package dto

import (
	"time"

	"github.com/bizledger/backend/internal/domain/entity"
)

// RegisterRequest represents the request body for company signup.
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	BusinessName    string `json:"businessName"`
	CompanyUsername string `json:"companyUsername" binding:"required"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	CompanyUsername string `json:"companyUsername" binding:"required"`
}

// AuthResponse represents the response body for register and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse represents user data in API responses. The password hash is never exposed.
type UserResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	BusinessName    string    `json:"businessName"`
	CompanyUsername string    `json:"companyUsername"`
	Role            string    `json:"role"`
	Currency        string    `json:"currency"`
	Theme           string    `json:"theme"`
	CreatedAt       time.Time `json:"createdAt"`
}

// UpdateProfileRequest represents the request body for profile updates.
type UpdateProfileRequest struct {
	BusinessName *string `json:"businessName,omitempty"`
	Currency     *string `json:"currency,omitempty"`
	Theme        *string `json:"theme,omitempty"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:              user.ID.String(),
		Username:        user.Username,
		BusinessName:    user.BusinessName,
		CompanyUsername: user.CompanyUsername,
		Role:            string(user.Role),
		Currency:        user.Currency,
		Theme:           user.Theme,
		CreatedAt:       user.CreatedAt,
	}
}

// ToUserResponses converts a slice of users.
func ToUserResponses(users []*entity.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = ToUserResponse(u)
	}
	return out
}
