package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bizledger/backend/config"
	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/infra/db"
	"github.com/bizledger/backend/internal/integration/adapters"
	"github.com/bizledger/backend/internal/integration/persistence"
	"github.com/bizledger/backend/internal/integration/persistence/model"
)

type authFixture struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
	register  *RegisterUserUseCase
	login     *LoginUserUseCase
	resolve   *ResolveCallerUseCase
	profile   *UpdateProfileUseCase
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	database, err := db.NewConnection(&config.DatabaseConfig{Driver: "sqlite", URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate(model.All()...))

	f := &authFixture{
		users:     persistence.NewUserRepository(database.DB()),
		passwords: adapters.NewPasswordService(bcrypt.MinCost),
		tokens:    adapters.NewTokenService("test-secret", time.Hour),
	}
	f.register = NewRegisterUserUseCase(f.users, f.passwords, f.tokens)
	f.login = NewLoginUserUseCase(f.users, f.passwords, f.tokens)
	f.resolve = NewResolveCallerUseCase(f.users, f.tokens)
	f.profile = NewUpdateProfileUseCase(f.users)
	return f
}

func assertAuthCode(t *testing.T, err error, code domainerror.AuthErrorCode) {
	t.Helper()
	var authErr *domainerror.AuthError
	require.True(t, errors.As(err, &authErr), "expected AuthError, got %v", err)
	assert.Equal(t, code, authErr.Code)
}

func TestRegisterUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	out, err := f.register.Execute(ctx, RegisterUserInput{
		Username:        "alice",
		Password:        "correct-horse",
		CompanyUsername: "acme_co",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)
	assert.Equal(t, entity.DefaultBusinessName, out.User.BusinessName)
	assert.Equal(t, entity.DefaultCurrency, out.User.Currency)
	assert.NotEqual(t, "correct-horse", out.User.PasswordHash)

	tests := []struct {
		name  string
		input RegisterUserInput
		code  domainerror.AuthErrorCode
	}{
		{
			name:  "missing company",
			input: RegisterUserInput{Username: "bob", Password: "password1"},
			code:  domainerror.ErrCodeMissingFields,
		},
		{
			name:  "bad identifier",
			input: RegisterUserInput{Username: "bob smith", Password: "password1", CompanyUsername: "bobco"},
			code:  domainerror.ErrCodeInvalidUsername,
		},
		{
			name:  "bad company identifier",
			input: RegisterUserInput{Username: "bob", Password: "password1", CompanyUsername: "bob-co"},
			code:  domainerror.ErrCodeInvalidUsername,
		},
		{
			name:  "weak password",
			input: RegisterUserInput{Username: "bob", Password: "short", CompanyUsername: "bobco"},
			code:  domainerror.ErrCodeWeakPassword,
		},
		{
			name:  "username taken in any case",
			input: RegisterUserInput{Username: "ALICE", Password: "password1", CompanyUsername: "other"},
			code:  domainerror.ErrCodeUsernameExists,
		},
		{
			name:  "company taken in any case",
			input: RegisterUserInput{Username: "carol", Password: "password1", CompanyUsername: "ACME_CO"},
			code:  domainerror.ErrCodeCompanyExists,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.register.Execute(ctx, tt.input)
			assertAuthCode(t, err, tt.code)
		})
	}
}

func TestLoginUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	_, err := f.register.Execute(ctx, RegisterUserInput{Username: "Alice", Password: "correct-horse", CompanyUsername: "Acme"})
	require.NoError(t, err)

	t.Run("case-insensitive username and company", func(t *testing.T) {
		out, err := f.login.Execute(ctx, LoginUserInput{Username: "alice", Password: "correct-horse", CompanyUsername: "ACME"})
		require.NoError(t, err)
		assert.Equal(t, "Alice", out.User.Username)
		assert.Equal(t, "Acme", out.User.CompanyUsername)

		claims, err := f.tokens.ValidateAccessToken(ctx, out.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, out.User.ID, claims.UserID)
		assert.Equal(t, "Acme", claims.CompanyUsername)
	})

	failures := []LoginUserInput{
		{Username: "alice", Password: "wrong-horse", CompanyUsername: "acme"},
		{Username: "nobody", Password: "correct-horse", CompanyUsername: "acme"},
		{Username: "alice", Password: "correct-horse", CompanyUsername: "globex"},
	}
	for _, input := range failures {
		_, err := f.login.Execute(ctx, input)
		assertAuthCode(t, err, domainerror.ErrCodeInvalidCredentials)
		assert.Equal(t, "Invalid credentials or Company ID: invalid credentials", err.Error())
	}
}

func TestResolveCaller(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	out, err := f.register.Execute(ctx, RegisterUserInput{Username: "alice", Password: "correct-horse", CompanyUsername: "acme"})
	require.NoError(t, err)

	user, err := f.resolve.Execute(ctx, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, user.ID)

	_, err = f.resolve.Execute(ctx, "not-a-token")
	assertAuthCode(t, err, domainerror.ErrCodeInvalidToken)

	require.NoError(t, f.users.Delete(ctx, out.User.ID))
	_, err = f.resolve.Execute(ctx, out.AccessToken)
	assertAuthCode(t, err, domainerror.ErrCodeUserNotFound)
}

func TestUpdateProfile(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	out, err := f.register.Execute(ctx, RegisterUserInput{Username: "alice", Password: "correct-horse", CompanyUsername: "acme"})
	require.NoError(t, err)

	name, currency, theme := " Acme Corp ", "eur", "Light"
	user, err := f.profile.Execute(ctx, UpdateProfileInput{
		UserID:       out.User.ID,
		BusinessName: &name,
		Currency:     &currency,
		Theme:        &theme,
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", user.BusinessName)
	assert.Equal(t, "EUR", user.Currency)
	assert.Equal(t, "light", user.Theme)

	stored, err := f.users.FindByID(ctx, out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "EUR", stored.Currency)

	bad := "blue"
	_, err = f.profile.Execute(ctx, UpdateProfileInput{UserID: out.User.ID, Theme: &bad})
	var userErr *domainerror.UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, domainerror.ErrCodeInvalidPreferences, userErr.Code)
}

func TestIsValidIdentifier(t *testing.T) {
	assert.True(t, IsValidIdentifier("acme_2024"))
	assert.False(t, IsValidIdentifier(""))
	assert.False(t, IsValidIdentifier("acme co"))
	assert.False(t, IsValidIdentifier("acmé"))
}
