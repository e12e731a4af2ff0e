package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/application/usecase/auth"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// CreateUserInput represents a user created by a company Admin.
type CreateUserInput struct {
	Admin    *entity.User
	Username string
	Password string
	Role     string
}

// CreateUserUseCase adds a user to the Admin's company.
type CreateUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
}

// NewCreateUserUseCase creates a new CreateUserUseCase instance.
func NewCreateUserUseCase(userRepo adapter.UserRepository, passwordService adapter.PasswordService) *CreateUserUseCase {
	return &CreateUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
	}
}

// Execute creates the user. Company and business name are inherited from the Admin.
func (uc *CreateUserUseCase) Execute(ctx context.Context, input CreateUserInput) (*entity.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" || strings.TrimSpace(input.Role) == "" {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeUserMissingFields,
			"Username, password and role are required",
			nil,
		)
	}

	role, ok := entity.ParseRole(input.Role)
	if !ok {
		return nil, domainerror.NewUserError(domainerror.ErrCodeInvalidRole, "Invalid role", domainerror.ErrInvalidRole)
	}

	if !auth.IsValidIdentifier(username) {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeUserInvalidName,
			"Username can only contain letters, numbers, and underscores.",
			domainerror.ErrInvalidUsername,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewUserError(
			domainerror.ErrCodeUserWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

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

	hash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, hash, input.Admin.BusinessName, input.Admin.CompanyUsername, role)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created by admin",
		"company", user.CompanyUsername,
		"admin", input.Admin.Username,
		"user", user.Username,
		"role", user.Role,
	)
	return user, nil
}
