package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

// LedgerSvcFacade defines the operations of a per-project double-entry ledger.
type LedgerSvcFacade interface {
	// Bootstrap ensures the project's ledger document exists with an empty
	// valid schema. It is idempotent and never resets existing data.
	Bootstrap(ctx context.Context, projectID string) error

	// Deficit reports whether the project is currently in funding deficit.
	Deficit(ctx context.Context, projectID string) (bool, error)

	// SetDeficit sets or clears the deficit flag. Setting a state that
	// already holds is a no-op.
	SetDeficit(ctx context.Context, projectID string, flag bool) error

	// Cash computes what is left in project cash: assets net debit minus
	// liabilities net credit.
	Cash(ctx context.Context, projectID string) (decimal.Decimal, error)

	// Add appends one or more transactions as a single atomic batch and
	// returns the identifier assigned to the first transaction.
	Add(ctx context.Context, projectID string, txns ...models.Transaction) (int64, error)
}
