package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

var themes = map[string]bool{"dark": true, "light": true}

// UpdateProfileInput represents the editable profile preferences. Nil fields are kept.
type UpdateProfileInput struct {
	UserID       uuid.UUID
	BusinessName *string
	Currency     *string
	Theme        *string
}

// UpdateProfileUseCase handles profile preference changes.
type UpdateProfileUseCase struct {
	userRepo adapter.UserRepository
}

// NewUpdateProfileUseCase creates a new UpdateProfileUseCase instance.
func NewUpdateProfileUseCase(userRepo adapter.UserRepository) *UpdateProfileUseCase {
	return &UpdateProfileUseCase{userRepo: userRepo}
}

// Execute applies the preferences and returns the updated user.
func (uc *UpdateProfileUseCase) Execute(ctx context.Context, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.BusinessName != nil {
		name := strings.TrimSpace(*input.BusinessName)
		if name == "" {
			return nil, invalidPreferences("businessName cannot be empty")
		}
		user.BusinessName = name
	}
	if input.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*input.Currency))
		if len(currency) != 3 {
			return nil, invalidPreferences("currency must be a 3-letter code")
		}
		user.Currency = currency
	}
	if input.Theme != nil {
		theme := strings.ToLower(strings.TrimSpace(*input.Theme))
		if !themes[theme] {
			return nil, invalidPreferences("theme must be dark or light")
		}
		user.Theme = theme
	}

	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func invalidPreferences(msg string) error {
	return domainerror.NewUserError(domainerror.ErrCodeInvalidPreferences, msg, domainerror.ErrInvalidPreferences)
}
