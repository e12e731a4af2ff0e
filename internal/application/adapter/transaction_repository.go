// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/bizledger/backend/internal/domain/entity"
)

// TransactionRepository is the tenant-partitioned transaction store.
// Mutations for one company are serialized by the implementation.
type TransactionRepository interface {
	// List returns every transaction of a company ordered by date then id.
	List(ctx context.Context, companyUsername string) ([]*entity.Transaction, error)

	// Append stores a single transaction.
	Append(ctx context.Context, transaction *entity.Transaction) error

	// AppendMany stores all transactions atomically: either every record is committed or none.
	AppendMany(ctx context.Context, companyUsername string, transactions []*entity.Transaction) error

	// Delete removes one transaction of a company. Returns ErrTransactionNotFound
	// when the id does not exist in that company.
	Delete(ctx context.Context, companyUsername string, id ulid.ULID) error

	// DeleteAll removes every transaction of a company and returns how many were removed.
	DeleteAll(ctx context.Context, companyUsername string) (int64, error)

	// Totals aggregates income and expense amounts of a company.
	Totals(ctx context.Context, companyUsername string) (*entity.TransactionTotals, error)
}
