package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

// ResolveCallerUseCase turns a bearer token into the current user record.
// The user is reloaded on every call so role changes take effect immediately.
type ResolveCallerUseCase struct {
	userRepo     adapter.UserRepository
	tokenService adapter.TokenService
}

// NewResolveCallerUseCase creates a new ResolveCallerUseCase instance.
func NewResolveCallerUseCase(userRepo adapter.UserRepository, tokenService adapter.TokenService) *ResolveCallerUseCase {
	return &ResolveCallerUseCase{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

// Execute validates the token and loads its user.
func (uc *ResolveCallerUseCase) Execute(ctx context.Context, token string) (*entity.User, error) {
	claims, err := uc.tokenService.ValidateAccessToken(ctx, token)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidToken,
			"Invalid or expired token",
			domainerror.ErrInvalidToken,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerror.ErrUserNotFound) {
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeUserNotFound,
				"User not found",
				domainerror.ErrUserNotFound,
			)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
