package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/inventory"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

// InventoryController handles stock endpoints.
type InventoryController struct {
	listUseCase   *inventory.ListItemsUseCase
	createUseCase *inventory.CreateItemUseCase
	updateUseCase *inventory.UpdateItemUseCase
	adjustUseCase *inventory.AdjustStockUseCase
	deleteUseCase *inventory.DeleteItemUseCase
}

// NewInventoryController creates a new inventory controller instance.
func NewInventoryController(
	listUseCase *inventory.ListItemsUseCase,
	createUseCase *inventory.CreateItemUseCase,
	updateUseCase *inventory.UpdateItemUseCase,
	adjustUseCase *inventory.AdjustStockUseCase,
	deleteUseCase *inventory.DeleteItemUseCase,
) *InventoryController {
	return &InventoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		adjustUseCase: adjustUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /api/inventory requests.
func (c *InventoryController) List(ctx *gin.Context) {
	c.list(ctx, false)
}

// LowStock handles GET /api/inventory/low-stock requests.
func (c *InventoryController) LowStock(ctx *gin.Context) {
	c.list(ctx, true)
}

func (c *InventoryController) list(ctx *gin.Context, lowStockOnly bool) {
	caller, _ := middleware.GetUserFromContext(ctx)

	items, err := c.listUseCase.Execute(ctx.Request.Context(), inventory.ListItemsInput{
		CompanyUsername: caller.CompanyUsername,
		LowStockOnly:    lowStockOnly,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInventoryItemResponses(items))
}

// Create handles POST /api/inventory requests.
func (c *InventoryController) Create(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	var req dto.CreateInventoryItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx)
		return
	}

	item, err := c.createUseCase.Execute(ctx.Request.Context(), inventory.CreateItemInput{
		CompanyUsername:   caller.CompanyUsername,
		Name:              req.Name,
		SKU:               req.SKU,
		Quantity:          req.Quantity,
		CostPrice:         req.CostPrice,
		SellingPrice:      req.SellingPrice,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToInventoryItemResponse(item))
}

// Update handles PATCH /api/inventory/:id requests.
func (c *InventoryController) Update(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	var req dto.UpdateInventoryItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx)
		return
	}

	item, err := c.updateUseCase.Execute(ctx.Request.Context(), inventory.UpdateItemInput{
		CompanyUsername: caller.CompanyUsername,
		ItemID:          ctx.Param("id"),
		Patch:           req.ToPatch(),
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// Adjust handles POST /api/inventory/:id/adjust requests.
func (c *InventoryController) Adjust(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	var req dto.AdjustStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.invalidBody(ctx)
		return
	}

	item, err := c.adjustUseCase.Execute(ctx.Request.Context(), inventory.AdjustStockInput{
		CompanyUsername: caller.CompanyUsername,
		ItemID:          ctx.Param("id"),
		Delta:           *req.Delta,
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToInventoryItemResponse(item))
}

// Delete handles DELETE /api/inventory/:id requests.
func (c *InventoryController) Delete(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	err := c.deleteUseCase.Execute(ctx.Request.Context(), inventory.DeleteItemInput{
		CompanyUsername: caller.CompanyUsername,
		ItemID:          ctx.Param("id"),
	})
	if err != nil {
		c.handleInventoryError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Item deleted"})
}

func (c *InventoryController) invalidBody(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid request body",
		Code:    string(domainerror.ErrCodeInventoryMissingFields),
	})
}

// handleInventoryError converts inventory errors to HTTP responses.
func (c *InventoryController) handleInventoryError(ctx *gin.Context, err error) {
	var invErr *domainerror.InventoryError
	if errors.As(err, &invErr) {
		status := getStatusCodeForInventoryError(invErr.Code)
		if status == http.StatusInternalServerError {
			slog.Error("Inventory request failed", "error", err)
		}
		ctx.JSON(status, dto.ErrorResponse{
			Message: invErr.Message,
			Code:    string(invErr.Code),
		})
		return
	}

	slog.Error("Inventory request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "An internal error occurred",
	})
}

// getStatusCodeForInventoryError maps inventory error codes to HTTP status codes.
func getStatusCodeForInventoryError(code domainerror.InventoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeInventoryMissingFields,
		domainerror.ErrCodeNegativeQuantity,
		domainerror.ErrCodeNegativePrice:
		return http.StatusBadRequest
	case domainerror.ErrCodeInventoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
