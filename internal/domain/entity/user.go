// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the permission level of a user inside their company.
type Role string

const (
	RoleAdmin      Role = "Admin"
	RoleOwner      Role = "Owner"
	RoleAccountant Role = "Accountant"
	RoleAnalyst    Role = "Analyst"
	RoleStaff      Role = "Staff"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleOwner, RoleAccountant, RoleAnalyst, RoleStaff}

// ParseRole matches a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), strings.TrimSpace(s)) {
			return r, true
		}
	}
	return "", false
}

const (
	DefaultBusinessName = "My Business"
	DefaultCurrency     = "USD"
	DefaultTheme        = "dark"
)

// User is an account belonging to exactly one company.
type User struct {
	ID              uuid.UUID
	Username        string
	PasswordHash    string
	BusinessName    string
	CompanyUsername string
	Role            Role
	Currency        string
	Theme           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new User with default preferences.
func NewUser(username, passwordHash, businessName, companyUsername string, role Role) *User {
	now := time.Now().UTC()
	if strings.TrimSpace(businessName) == "" {
		businessName = DefaultBusinessName
	}
	return &User{
		ID:              uuid.New(),
		Username:        username,
		PasswordHash:    passwordHash,
		BusinessName:    businessName,
		CompanyUsername: companyUsername,
		Role:            role,
		Currency:        DefaultCurrency,
		Theme:           DefaultTheme,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// HasRole reports whether the user holds any of the given roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// Identity is the authenticated caller stamped onto records it creates.
type Identity struct {
	UserID          uuid.UUID
	Username        string
	CompanyUsername string
	Role            Role
}

// Identity returns the caller identity for this user.
func (u *User) Identity() Identity {
	return Identity{
		UserID:          u.ID,
		Username:        u.Username,
		CompanyUsername: u.CompanyUsername,
		Role:            u.Role,
	}
}
