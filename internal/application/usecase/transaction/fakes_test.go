package transaction

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/application/adapter"
	"github.com/bizledger/backend/internal/domain/entity"
	domainerror "github.com/bizledger/backend/internal/domain/error"
)

type memoryRepo struct {
	mu        sync.Mutex
	rows      []*entity.Transaction
	appendErr error
}

func (r *memoryRepo) List(_ context.Context, company string) ([]*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transaction
	for _, t := range r.rows {
		if strings.EqualFold(t.CompanyUsername, company) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *memoryRepo) Append(ctx context.Context, t *entity.Transaction) error {
	return r.AppendMany(ctx, t.CompanyUsername, []*entity.Transaction{t})
}

func (r *memoryRepo) AppendMany(_ context.Context, _ string, ts []*entity.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil {
		return r.appendErr
	}
	r.rows = append(r.rows, ts...)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, company string, id ulid.ULID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, t := range r.rows {
		if t.ID == id && strings.EqualFold(t.CompanyUsername, company) {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domainerror.ErrTransactionNotFound
}

func (r *memoryRepo) DeleteAll(_ context.Context, company string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.rows[:0]
	var n int64
	for _, t := range r.rows {
		if strings.EqualFold(t.CompanyUsername, company) {
			n++
			continue
		}
		kept = append(kept, t)
	}
	r.rows = kept
	return n, nil
}

func (r *memoryRepo) Totals(ctx context.Context, company string) (*entity.TransactionTotals, error) {
	rows, _ := r.List(ctx, company)
	totals := &entity.TransactionTotals{}
	for i, t := range rows {
		if i == 0 {
			totals.FirstDate = t.Date
		}
		totals.LastDate = t.Date
		if t.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(t.Amount)
			totals.IncomeCount++
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(t.Amount)
			totals.ExpenseCount++
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

type sequentialIDs struct{}

func (sequentialIDs) NewID() ulid.ULID { return ulid.Make() }

type recordingWriter struct {
	business string
	rows     []adapter.ExportRow
}

func (w *recordingWriter) WriteTransactions(out io.Writer, business string, rows []adapter.ExportRow) error {
	w.business = business
	w.rows = rows
	if business == "fail" {
		return errors.New("disk full")
	}
	_, err := out.Write([]byte("xlsx"))
	return err
}
