package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/transaction"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TransactionController handles ledger endpoints.
type TransactionController struct {
	listUseCase      *transaction.ListTransactionsUseCase
	createUseCase    *transaction.CreateTransactionUseCase
	bulkUseCase      *transaction.BulkImportTransactionsUseCase
	deleteUseCase    *transaction.DeleteTransactionUseCase
	deleteAllUseCase *transaction.DeleteAllTransactionsUseCase
	summaryUseCase   *transaction.GetSummaryUseCase
	exportUseCase    *transaction.ExportTransactionsUseCase
	maxBulkBytes     int64
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	bulkUseCase *transaction.BulkImportTransactionsUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	deleteAllUseCase *transaction.DeleteAllTransactionsUseCase,
	summaryUseCase *transaction.GetSummaryUseCase,
	exportUseCase *transaction.ExportTransactionsUseCase,
	maxBulkBytes int64,
) *TransactionController {
	return &TransactionController{
		listUseCase:      listUseCase,
		createUseCase:    createUseCase,
		bulkUseCase:      bulkUseCase,
		deleteUseCase:    deleteUseCase,
		deleteAllUseCase: deleteAllUseCase,
		summaryUseCase:   summaryUseCase,
		exportUseCase:    exportUseCase,
		maxBulkBytes:     maxBulkBytes,
	}
}

// List handles GET /api/transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		CompanyUsername: caller.CompanyUsername,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToTransactionResponses(output.Transactions))
}

// Create handles POST /api/transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	var req dto.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Missing fields",
			Code:    string(domainerror.ErrCodeMissingTransactionFields),
		})
		return
	}

	input := transaction.CreateTransactionInput{
		Caller:      caller.Identity(),
		Type:        req.Type,
		Amount:      req.Amount.String(),
		Description: req.Description,
		Date:        req.Date.String(),
	}
	if req.Category != nil {
		input.Category = *req.Category
	}
	if req.ReceiptImage != nil {
		input.ReceiptImage = *req.ReceiptImage
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(output.Transaction))
}

// Bulk handles POST /api/transactions/bulk requests. The body must be a JSON array.
func (c *TransactionController) Bulk(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	if c.maxBulkBytes > 0 {
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxBulkBytes)
	}
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			ctx.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Message: fmt.Sprintf("Request body exceeds %d bytes. Split the import into chunks.", tooLarge.Limit),
				Code:    string(domainerror.ErrCodeBulkPayloadTooLarge),
			})
			return
		}
		c.invalidBulkPayload(ctx)
		return
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '[' {
		c.invalidBulkPayload(ctx)
		return
	}

	var items []dto.BulkTransactionItem
	if err := json.Unmarshal(body, &items); err != nil {
		c.invalidBulkPayload(ctx)
		return
	}

	output, err := c.bulkUseCase.Execute(ctx.Request.Context(), transaction.BulkImportInput{
		Caller: caller.Identity(),
		Items:  dto.ToBulkItems(items),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, toBulkImportResponse(output))
}

func (c *TransactionController) invalidBulkPayload(ctx *gin.Context) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Message: "Invalid data format: Expected a non-empty array.",
		Code:    string(domainerror.ErrCodeInvalidBulkPayload),
	})
}

func toBulkImportResponse(output *transaction.BulkImportOutput) dto.BulkImportResponse {
	return dto.BulkImportResponse{
		Message:  fmt.Sprintf("Successfully imported %d transactions", output.Imported),
		Imported: output.Imported,
		Rejected: output.Rejected,
		IDs:      output.IDs(),
	}
}

// Delete handles DELETE /api/transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		CompanyUsername: caller.CompanyUsername,
		TransactionID:   ctx.Param("id"),
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Transaction deleted"})
}

// DeleteAll handles DELETE /api/transactions/all requests.
func (c *TransactionController) DeleteAll(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	output, err := c.deleteAllUseCase.Execute(ctx.Request.Context(), transaction.DeleteAllTransactionsInput{
		CompanyUsername: caller.CompanyUsername,
		RequestedBy:     caller.Username,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.DeleteAllResponse{
		Message: fmt.Sprintf("Success: Deleted %d transactions.", output.DeletedCount),
		Deleted: output.DeletedCount,
	})
}

// Summary handles GET /api/transactions/summary requests.
func (c *TransactionController) Summary(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), transaction.GetSummaryInput{
		CompanyUsername: caller.CompanyUsername,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// Export handles GET /api/transactions/export requests.
func (c *TransactionController) Export(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	output, err := c.exportUseCase.Execute(ctx.Request.Context(), transaction.ExportTransactionsInput{
		CompanyUsername: caller.CompanyUsername,
		BusinessName:    caller.BusinessName,
	})
	if err != nil {
		c.handleTransactionError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, output.FileName))
	ctx.Data(http.StatusOK, xlsxContentType, output.Content)
}

// handleTransactionError converts transaction errors to HTTP responses.
func (c *TransactionController) handleTransactionError(ctx *gin.Context, err error) {
	respondTransactionError(ctx, err)
}

func respondTransactionError(ctx *gin.Context, err error) {
	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		message := txnErr.Message
		if txnErr.Code == domainerror.ErrCodeBulkImportFailed {
			// Clients show the underlying cause.
			message = txnErr.Error()
			slog.Error("Bulk import failed", "error", err)
		}
		ctx.JSON(getStatusCodeForTransactionError(txnErr.Code), dto.ErrorResponse{
			Message: message,
			Code:    string(txnErr.Code),
		})
		return
	}

	slog.Error("Transaction request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "An internal error occurred",
	})
}

// getStatusCodeForTransactionError maps transaction error codes to HTTP status codes.
func getStatusCodeForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidTransactionAmount,
		domainerror.ErrCodeMissingTransactionFields,
		domainerror.ErrCodeInvalidBulkPayload,
		domainerror.ErrCodeNoValidTransactions:
		return http.StatusBadRequest
	case domainerror.ErrCodeBulkPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
