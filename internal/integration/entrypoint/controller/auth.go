// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/auth"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

// AuthController handles authentication and profile endpoints.
type AuthController struct {
	registerUseCase      *auth.RegisterUserUseCase
	loginUseCase         *auth.LoginUserUseCase
	updateProfileUseCase *auth.UpdateProfileUseCase
}

// NewAuthController creates a new auth controller instance.
func NewAuthController(
	registerUseCase *auth.RegisterUserUseCase,
	loginUseCase *auth.LoginUserUseCase,
	updateProfileUseCase *auth.UpdateProfileUseCase,
) *AuthController {
	return &AuthController{
		registerUseCase:      registerUseCase,
		loginUseCase:         loginUseCase,
		updateProfileUseCase: updateProfileUseCase,
	}
}

// Register handles POST /api/auth/register requests.
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Username, password and company username are required",
			Code:    string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.registerUseCase.Execute(ctx.Request.Context(), auth.RegisterUserInput{
		Username:        req.Username,
		Password:        req.Password,
		BusinessName:    req.BusinessName,
		CompanyUsername: req.CompanyUsername,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.AuthResponse{
		Token: output.AccessToken,
		User:  dto.ToUserResponse(output.User),
	})
}

// Login handles POST /api/auth/login requests.
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Username, password and company username are required",
			Code:    string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	output, err := c.loginUseCase.Execute(ctx.Request.Context(), auth.LoginUserInput{
		Username:        req.Username,
		Password:        req.Password,
		CompanyUsername: req.CompanyUsername,
	})
	if err != nil {
		c.handleAuthError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.AuthResponse{
		Token: output.AccessToken,
		User:  dto.ToUserResponse(output.User),
	})
}

// GetProfile handles GET /api/profile requests.
func (c *AuthController) GetProfile(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Access token required"})
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// UpdateProfile handles PUT /api/profile requests.
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Access token required"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid request body",
			Code:    string(domainerror.ErrCodeInvalidPreferences),
		})
		return
	}

	updated, err := c.updateProfileUseCase.Execute(ctx.Request.Context(), auth.UpdateProfileInput{
		UserID:       user.ID,
		BusinessName: req.BusinessName,
		Currency:     req.Currency,
		Theme:        req.Theme,
	})
	if err != nil {
		var userErr *domainerror.UserError
		if errors.As(err, &userErr) {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: userErr.Message, Code: string(userErr.Code)})
			return
		}
		slog.Error("Failed to update profile", "user", user.Username, "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "An internal error occurred"})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

// handleAuthError converts auth errors to HTTP responses.
func (c *AuthController) handleAuthError(ctx *gin.Context, err error) {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		ctx.JSON(getStatusCodeForAuthError(authErr.Code), dto.ErrorResponse{
			Message: authErr.Message,
			Code:    string(authErr.Code),
		})
		return
	}

	slog.Error("Auth request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "An internal error occurred",
	})
}

// getStatusCodeForAuthError maps auth error codes to HTTP status codes.
func getStatusCodeForAuthError(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeUsernameExists,
		domainerror.ErrCodeCompanyExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidUsername,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInsufficientRole,
		domainerror.ErrCodeAdminRequired:
		return http.StatusForbidden
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
