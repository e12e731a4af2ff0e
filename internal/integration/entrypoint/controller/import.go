package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bizledger/backend/internal/application/usecase/ingestion"
	domainerror "github.com/bizledger/backend/internal/domain/error"
	"github.com/bizledger/backend/internal/domain/valueobject"
	"github.com/bizledger/backend/internal/integration/entrypoint/dto"
	"github.com/bizledger/backend/internal/integration/entrypoint/middleware"
)

// ImportController handles spreadsheet uploads.
type ImportController struct {
	previewUseCase *ingestion.PreviewImportUseCase
	importUseCase  *ingestion.ImportFileUseCase
	maxUploadBytes int64
}

// NewImportController creates a new import controller instance.
func NewImportController(
	previewUseCase *ingestion.PreviewImportUseCase,
	importUseCase *ingestion.ImportFileUseCase,
	maxUploadBytes int64,
) *ImportController {
	return &ImportController{
		previewUseCase: previewUseCase,
		importUseCase:  importUseCase,
		maxUploadBytes: maxUploadBytes,
	}
}

// Preview handles POST /api/transactions/import/preview requests.
func (c *ImportController) Preview(ctx *gin.Context) {
	file, header, ok := c.formFile(ctx)
	if !ok {
		return
	}
	defer file.Close()

	output, err := c.previewUseCase.Execute(ctx.Request.Context(), ingestion.PreviewImportInput{
		FileName: header.Filename,
		Content:  file,
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ToImportPreviewResponse(output))
}

// Import handles POST /api/transactions/import requests.
func (c *ImportController) Import(ctx *gin.Context) {
	caller, _ := middleware.GetUserFromContext(ctx)

	file, header, ok := c.formFile(ctx)
	if !ok {
		return
	}
	defer file.Close()

	overrides, err := parseMappingField(ctx.PostForm("mapping"))
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), ingestion.ImportFileInput{
		Caller:    caller.Identity(),
		FileName:  header.Filename,
		Content:   file,
		Overrides: overrides,
	})
	if err != nil {
		c.handleImportError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.FileImportResponse{
		BulkImportResponse: toBulkImportResponse(output.Result),
		Mapping:            dto.ToMappingMap(output.Mapping),
		DataRows:           output.DataRows,
		Dropped:            output.Dropped,
	})
}

func (c *ImportController) formFile(ctx *gin.Context) (multipart.File, *multipart.FileHeader, bool) {
	if c.maxUploadBytes > 0 {
		// Multipart overhead on top of the file itself.
		ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, c.maxUploadBytes+1<<20)
	}
	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "A spreadsheet must be uploaded in the \"file\" field",
			Code:    string(domainerror.ErrCodeMissingFile),
		})
		return nil, nil, false
	}
	return file, header, true
}

// parseMappingField decodes {"field": "Header label"}. An empty label ignores the field.
func parseMappingField(raw string) (map[valueobject.ImportField]string, error) {
	if raw == "" {
		return nil, nil
	}
	var fields map[string]string
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, domainerror.NewImportError(domainerror.ErrCodeInvalidMapping, "mapping must be a JSON object of field to header", err)
	}

	overrides := make(map[valueobject.ImportField]string, len(fields))
	for name, label := range fields {
		field, ok := valueobject.ParseImportField(name)
		if !ok {
			return nil, domainerror.NewImportError(domainerror.ErrCodeInvalidMapping, "Unknown field in mapping: "+name, nil)
		}
		overrides[field] = label
	}
	return overrides, nil
}

// handleImportError converts import and transaction errors to HTTP responses.
func (c *ImportController) handleImportError(ctx *gin.Context, err error) {
	var importErr *domainerror.ImportError
	if errors.As(err, &importErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: importErr.Message,
			Code:    string(importErr.Code),
		})
		return
	}

	var txnErr *domainerror.TransactionError
	if errors.As(err, &txnErr) {
		respondTransactionError(ctx, err)
		return
	}

	slog.Error("Import request failed", "error", err)
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Message: "An internal error occurred",
	})
}
