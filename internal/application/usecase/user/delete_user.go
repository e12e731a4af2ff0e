package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// DeleteUserInput represents an Admin removing a company user.
type DeleteUserInput struct {
	Admin  *entity.User
	UserID string
}

// DeleteUserUseCase removes a user of the Admin's company.
type DeleteUserUseCase struct {
	userRepo adapter.UserRepository
}

// NewDeleteUserUseCase creates a new DeleteUserUseCase instance.
func NewDeleteUserUseCase(userRepo adapter.UserRepository) *DeleteUserUseCase {
	return &DeleteUserUseCase{userRepo: userRepo}
}

// Execute deletes the user. An Admin cannot delete their own account.
func (uc *DeleteUserUseCase) Execute(ctx context.Context, input DeleteUserInput) error {
	target, err := findManaged(ctx, uc.userRepo, input.Admin, input.UserID)
	if err != nil {
		return err
	}
	if target.ID == input.Admin.ID {
		return domainerror.NewUserError(
			domainerror.ErrCodeCannotDeleteSelf,
			"You cannot delete your own account",
			domainerror.ErrCannotDeleteSelf,
		)
	}

	if err := uc.userRepo.Delete(ctx, target.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("User deleted by admin", "company", target.CompanyUsername, "admin", input.Admin.Username, "user", target.Username)
	return nil
}
