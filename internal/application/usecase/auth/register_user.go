// Package auth contains authentication-related use cases.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

var identifierRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// IsValidIdentifier reports whether s may be used as a username or company identifier.
func IsValidIdentifier(s string) bool {
	return identifierRegex.MatchString(s)
}

// RegisterUserInput represents the input for company signup.
type RegisterUserInput struct {
	Username        string
	Password        string
	BusinessName    string
	CompanyUsername string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	AccessToken string
	User        *entity.User
}

// RegisterUserUseCase claims a company identifier and creates its first Admin.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	username := strings.TrimSpace(input.Username)
	company := strings.TrimSpace(input.CompanyUsername)

	if username == "" || input.Password == "" || company == "" {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"Username, password and company username are required",
			nil,
		)
	}

	if !IsValidIdentifier(username) || !IsValidIdentifier(company) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidUsername,
			"Username and Company ID can only contain letters, numbers, and underscores.",
			domainerror.ErrInvalidUsername,
		)
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet minimum requirements",
			domainerror.ErrWeakPassword,
		)
	}

	exists, err := uc.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeUsernameExists,
			"Username already exists",
			domainerror.ErrUsernameAlreadyExists,
		)
	}

	exists, err = uc.userRepo.ExistsByCompany(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("failed to check company existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeCompanyExists,
			"Company ID already taken. Please choose another.",
			domainerror.ErrCompanyAlreadyExists,
		)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(username, passwordHash, strings.TrimSpace(input.BusinessName), company, entity.RoleAdmin)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Username, user.CompanyUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	slog.Info("Company registered", "company", company, "user", username)

	return &RegisterUserOutput{
		AccessToken: token.Token,
		User:        user,
	}, nil
}
