package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/user"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

// UserController handles company user administration endpoints.
type UserController struct {
	listUseCase   *user.ListUsersUseCase
	createUseCase *user.CreateUserUseCase
	updateUseCase *user.UpdateUserUseCase
	deleteUseCase *user.DeleteUserUseCase
}

// NewUserController creates a new user controller instance.
func NewUserController(
	listUseCase *user.ListUsersUseCase,
	createUseCase *user.CreateUserUseCase,
	updateUseCase *user.UpdateUserUseCase,
	deleteUseCase *user.DeleteUserUseCase,
) *UserController {
	return &UserController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /api/admin/users requests.
func (c *UserController) List(ctx *gin.Context) {
	admin, _ := middleware.GetUserFromContext(ctx)

	users, err := c.listUseCase.Execute(ctx.Request.Context(), admin.CompanyUsername)
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// Create handles POST /api/admin/users requests.
func (c *UserController) Create(ctx *gin.Context) {
	admin, _ := middleware.GetUserFromContext(ctx)

	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Username, password and role are required",
			Code:    string(domainerror.ErrCodeUserMissingFields),
		})
		return
	}

	created, err := c.createUseCase.Execute(ctx.Request.Context(), user.CreateUserInput{
		Admin:    admin,
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToUserResponse(created))
}

// Update handles PUT /api/admin/users/:id requests.
func (c *UserController) Update(ctx *gin.Context) {
	admin, _ := middleware.GetUserFromContext(ctx)

	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Invalid request body",
			Code:    string(domainerror.ErrCodeUserMissingFields),
		})
		return
	}

	updated, err := c.updateUseCase.Execute(ctx.Request.Context(), user.UpdateUserInput{
		Admin:    admin,
		UserID:   ctx.Param("id"),
		Username: req.Username,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToUserResponse(updated))
}

// Delete handles DELETE /api/admin/users/:id requests.
func (c *UserController) Delete(ctx *gin.Context) {
	admin, _ := middleware.GetUserFromContext(ctx)

	err := c.deleteUseCase.Execute(ctx.Request.Context(), user.DeleteUserInput{
		Admin:  admin,
		UserID: ctx.Param("id"),
	})
	if err != nil {
		c.handleUserError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User deleted"})
}

// handleUserError converts user errors to HTTP responses.
func (c *UserController) handleUserError(ctx *gin.Context, err error) {
	var userErr *domainerror.UserError
	if errors.As(err, &userErr) {
		ctx.JSON(getStatusCodeForUserError(userErr.Code), dto.ErrorResponse{
			Message: userErr.Message,
			Code:    string(userErr.Code),
		})
		return
	}

	slog.Error("User administration failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "An internal error occurred",
	})
}

// getStatusCodeForUserError maps user error codes to HTTP status codes.
func getStatusCodeForUserError(code domainerror.UserErrorCode) int {
	switch code {
	case domainerror.ErrCodeUserMissingFields,
		domainerror.ErrCodeInvalidRole,
		domainerror.ErrCodeUserWeakPassword,
		domainerror.ErrCodeUserInvalidName,
		domainerror.ErrCodeInvalidPreferences,
		domainerror.ErrCodeCannotDeleteSelf:
		return http.StatusBadRequest
	case domainerror.ErrCodeUserUsernameExists:
		return http.StatusConflict
	case domainerror.ErrCodeManagedUserMissing:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
