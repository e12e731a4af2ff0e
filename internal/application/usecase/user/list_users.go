// Package user contains company user administration use cases.
package user

import (
	"context"
	"fmt"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
)

// ListUsersUseCase lists the users of a company.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute returns every user of the company.
func (uc *ListUsersUseCase) Execute(ctx context.Context, companyUsername string) ([]*entity.User, error) {
	users, err := uc.userRepo.ListByCompany(ctx, companyUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
