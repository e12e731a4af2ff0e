package transaction

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/bizledger/backend/internal/application/adapter"
)

// GetSummaryInput represents the input for the ledger summary.
type GetSummaryInput struct {
	CompanyUsername string
}

// GetSummaryOutput holds totals, averages and a yearly projection.
type GetSummaryOutput struct {
	IncomeTotal      decimal.Decimal
	ExpenseTotal     decimal.Decimal
	NetTotal         decimal.Decimal
	IncomeCount      int
	ExpenseCount     int
	AverageIncome    decimal.Decimal
	AverageExpense   decimal.Decimal
	MonthsCovered    int
	ProjectedYearNet decimal.Decimal
}

// GetSummaryUseCase aggregates a company's ledger.
type GetSummaryUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(transactionRepo adapter.TransactionRepository) *GetSummaryUseCase {
	return &GetSummaryUseCase{transactionRepo: transactionRepo}
}

// Execute computes the summary. The projection extrapolates the average monthly
// net over the covered months to twelve months.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	totals, err := uc.transactionRepo.Totals(ctx, input.CompanyUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate transactions: %w", err)
	}

	output := &GetSummaryOutput{
		IncomeTotal:  totals.IncomeTotal,
		ExpenseTotal: totals.ExpenseTotal,
		NetTotal:     totals.NetTotal,
		IncomeCount:  totals.IncomeCount,
		ExpenseCount: totals.ExpenseCount,
	}
	if totals.IncomeCount > 0 {
		output.AverageIncome = totals.IncomeTotal.Div(decimal.NewFromInt(int64(totals.IncomeCount))).Round(2)
	}
	if totals.ExpenseCount > 0 {
		output.AverageExpense = totals.ExpenseTotal.Div(decimal.NewFromInt(int64(totals.ExpenseCount))).Round(2)
	}

	if totals.IncomeCount+totals.ExpenseCount > 0 {
		output.MonthsCovered = monthsBetween(totals.FirstDate.Year(), int(totals.FirstDate.Month()),
			totals.LastDate.Year(), int(totals.LastDate.Month()))
		output.ProjectedYearNet = totals.NetTotal.
			Div(decimal.NewFromInt(int64(output.MonthsCovered))).
			Mul(decimal.NewFromInt(12)).
			Round(2)
	}

	return output, nil
}

// monthsBetween counts calendar months from the first to the last, inclusive.
func monthsBetween(y1, m1, y2, m2 int) int {
	n := (y2-y1)*12 + (m2 - m1) + 1
	if n < 1 {
		return 1
	}
	return n
}
