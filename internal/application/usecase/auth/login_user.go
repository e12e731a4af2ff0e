package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Username        string
	Password        string
	CompanyUsername string
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken string
	User        *entity.User
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	invalid := domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"Invalid credentials or Company ID",
		domainerror.ErrInvalidCredentials,
	)

	user, err := uc.userRepo.FindByLogin(ctx, strings.TrimSpace(input.Username), strings.TrimSpace(input.CompanyUsername))
	if err != nil {
		// Same answer for unknown user and wrong password
		return nil, invalid
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		return nil, invalid
	}

	token, err := uc.tokenService.GenerateAccessToken(ctx, user.ID, user.Username, user.CompanyUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginUserOutput{
		AccessToken: token.Token,
		User:        user,
	}, nil
}
