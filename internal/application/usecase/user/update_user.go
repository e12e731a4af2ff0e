package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/auth"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// UpdateUserInput represents an Admin edit of a company user. Nil fields are kept.
type UpdateUserInput struct {
	Admin    *entity.User
	UserID   string
	Username *string
	Role     *string
	Password *string
}

// UpdateUserUseCase edits a user of the Admin's company.
type UpdateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewUpdateUserUseCase creates a new UpdateUserUseCase instance.
func NewUpdateUserUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *UpdateUserUseCase {
	return &UpdateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute applies the changes and returns the updated user.
func (uc *UpdateUserUseCase) Execute(ctx context.Context, input UpdateUserInput) (*entity.User, error) {
	target, err := findManaged(ctx, uc.userRepo, input.Admin, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		username := strings.TrimSpace(*input.Username)
		if !auth.IsValidIdentifier(username) {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeUserInvalidName,
				"Username can only contain letters, numbers, and underscores.",
				domainerror.ErrInvalidUsername,
			)
		}
		if !strings.EqualFold(username, target.Username) {
			exists, err := uc.userRepo.ExistsByUsername(ctx, username)
			if err != nil {
				return nil, fmt.Errorf("failed to check username existence: %w", err)
			}
			if exists {
				return nil, domainerror.NewUserError(
					domainerror.ErrCodeUserUsernameExists,
					"Username already exists",
					domainerror.ErrUsernameAlreadyExists,
				)
			}
		}
		target.Username = username
	}

	if input.Role != nil {
		role, ok := entity.ParseRole(*input.Role)
		if !ok {
			return nil, domainerror.NewUserError(domainerror.ErrCodeInvalidRole, "Invalid role", domainerror.ErrInvalidRole)
		}
		target.Role = role
	}

	if input.Password != nil && *input.Password != "" {
		if err := uc.passwordService.ValidatePasswordStrength(*input.Password); err != nil {
			return nil, domainerror.NewUserError(
				domainerror.ErrCodeUserWeakPassword,
				"password does not meet minimum requirements",
				domainerror.ErrWeakPassword,
			)
		}
		hash, err := uc.passwordService.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = hash
	}

	target.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return target, nil
}

// findManaged loads a user that belongs to the Admin's company. Users of other
// companies are reported as missing.
func findManaged(ctx context.Context, repo adapter.UserRepository, admin *entity.User, rawID string) (*entity.User, error) {
	missing := domainerror.NewUserError(domainerror.ErrCodeManagedUserMissing, "User not found", domainerror.ErrUserNotFound)

	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, missing
	}
	target, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, missing
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !strings.EqualFold(target.CompanyUsername, admin.CompanyUsername) {
		return nil, missing
	}
	return target, nil
}
