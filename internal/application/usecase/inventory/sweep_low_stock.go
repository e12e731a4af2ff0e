package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
)

// SweepLowStockUseCase reports low-stock counts across all companies.
type SweepLowStockUseCase struct {
	repo adapter.InventoryRepository
}

// NewSweepLowStockUseCase creates a new SweepLowStockUseCase instance.
func NewSweepLowStockUseCase(repo adapter.InventoryRepository) *SweepLowStockUseCase {
	return &SweepLowStockUseCase{repo: repo}
}

// Execute logs one line per company with low-stock items and returns the reports.
func (uc *SweepLowStockUseCase) Execute(ctx context.Context) ([]entity.LowStockReport, error) {
	reports, err := uc.repo.CountLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count low stock: %w", err)
	}
	for _, r := range reports {
		slog.Warn("Low stock", "company", r.CompanyUsername, "items", r.Items)
	}
	slog.Info("Low-stock sweep completed", "companies", len(reports))
	return reports, nil
}
