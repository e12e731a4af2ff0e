package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/domain/entity"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByLogin retrieves a user by username and company, both case-insensitive.
	FindByLogin(ctx context.Context, username, companyUsername string) (*entity.User, error)

	// ListByCompany retrieves every user of a company.
	ListByCompany(ctx context.Context, companyUsername string) ([]*entity.User, error)

	// ListCompanies returns the distinct company identifiers.
	ListCompanies(ctx context.Context) ([]string, error)

	// Update updates an existing user in the database.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByUsername checks case-insensitively whether a username is taken.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByCompany checks case-insensitively whether a company identifier is taken.
	ExistsByCompany(ctx context.Context, companyUsername string) (bool, error)
}
