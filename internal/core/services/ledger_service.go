package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pbk-app/project_bookkeeping_app/internal/apperrors"
	portsrepo "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/middleware"
	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

// ledgerDocument is the per-project document holding the ledger.
const ledgerDocument = "ledger.json"

var (
	ErrEmptyBatch     = fmt.Errorf("%w: transaction batch must not be empty", apperrors.ErrValidation)
	ErrNegativeAmount = fmt.Errorf("%w: transaction amount must not be negative", apperrors.ErrValidation)
	ErrAccountMissing = fmt.Errorf("%w: transaction accounts must be fully specified", apperrors.ErrValidation)
)

// ledgerService provides the per-project double-entry ledger operations.
// Every operation acquires the ledger document, works on it and releases it
// within the same call; no state is cached across calls.
type ledgerService struct {
	store portsrepo.DocumentStore
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(store portsrepo.DocumentStore) portssvc.LedgerSvcFacade {
	return &ledgerService{store: store}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// Bootstrap ensures the ledger document exists with an empty valid schema.
// Calling it on an already bootstrapped project changes nothing.
func (s *ledgerService) Bootstrap(ctx context.Context, projectID string) error {
	item, err := s.store.Acquire(ctx, projectID, ledgerDocument)
	if err != nil {
		return err
	}
	defer item.Close()

	var doc models.LedgerDocument
	exists, err := item.Load(&doc)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return item.Save(&models.LedgerDocument{})
}

// Deficit reports whether the deficit marker is present.
func (s *ledgerService) Deficit(ctx context.Context, projectID string) (bool, error) {
	item, err := s.store.Acquire(ctx, projectID, ledgerDocument)
	if err != nil {
		return false, err
	}
	defer item.Close()

	var doc models.LedgerDocument
	if _, err := item.Load(&doc); err != nil {
		return false, err
	}
	return doc.Deficit != nil, nil
}

// SetDeficit sets or clears the deficit marker. Requesting a state that
// already holds is a no-op, so the single-marker invariant always survives.
func (s *ledgerService) SetDeficit(ctx context.Context, projectID string, flag bool) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	item, err := s.store.Acquire(ctx, projectID, ledgerDocument)
	if err != nil {
		return err
	}
	defer item.Close()

	var doc models.LedgerDocument
	if _, err := item.Load(&doc); err != nil {
		return err
	}

	switch {
	case flag && doc.Deficit == nil:
		doc.Deficit = &models.DeficitMarker{CreatedAt: time.Now().UTC()}
	case !flag && doc.Deficit != nil:
		doc.Deficit = nil
	default:
		logger.Debug("Deficit flag already in requested state",
			slog.String("project_id", projectID), slog.Bool("deficit", flag))
		return nil
	}

	if err := item.Save(&doc); err != nil {
		return err
	}
	logger.Info("Deficit flag updated",
		slog.String("project_id", projectID), slog.Bool("deficit", flag))
	return nil
}

// Cash computes what is left in project cash from the balance table:
// assets net debit minus liabilities net credit. Accounts without balance
// rows contribute zero.
func (s *ledgerService) Cash(ctx context.Context, projectID string) (decimal.Decimal, error) {
	item, err := s.store.Acquire(ctx, projectID, ledgerDocument)
	if err != nil {
		return decimal.Zero, err
	}
	defer item.Close()

	var doc models.LedgerDocument
	if _, err := item.Load(&doc); err != nil {
		return decimal.Zero, err
	}
	if err := checkBalanceRows(doc.Balance); err != nil {
		return decimal.Zero, err
	}

	cash := decimal.Zero
	for _, row := range doc.Balance {
		switch row.Name {
		case models.AccountAssets:
			cash = cash.Add(row.Debit).Sub(row.Credit)
		case models.AccountLiabilities:
			cash = cash.Sub(row.Credit).Add(row.Debit)
		}
	}
	return cash, nil
}

// Add appends the transactions as one batch. Identifiers continue the
// document's gapless sequence; every non-head record points at the head via
// its parent attribute. The document is held for the whole batch, so readers
// observe either all of it or none of it.
func (s *ledgerService) Add(ctx context.Context, projectID string, txns ...models.Transaction) (int64, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(txns) == 0 {
		return 0, ErrEmptyBatch
	}
	for _, txn := range txns {
		if txn.Amount.IsNegative() {
			return 0, ErrNegativeAmount
		}
		if txn.Debit == "" || txn.DebitX == "" || txn.Credit == "" || txn.CreditX == "" {
			return 0, ErrAccountMissing
		}
	}

	item, err := s.store.Acquire(ctx, projectID, ledgerDocument)
	if err != nil {
		return 0, err
	}
	defer item.Close()

	var doc models.LedgerDocument
	if _, err := item.Load(&doc); err != nil {
		return 0, err
	}

	before := doc.MaxTransactionID()
	head := before + 1
	now := time.Now().UTC()

	for i, txn := range txns {
		record := models.TransactionRecord{
			ID:        before + 1 + int64(i),
			CreatedAt: now,
			Amount:    txn.Amount,
			Debit:     txn.Debit,
			DebitX:    txn.DebitX,
			Credit:    txn.Credit,
			CreditX:   txn.CreditX,
			Details:   txn.Details,
		}
		if i > 0 {
			record.Parent = head
		}
		doc.Transactions = append(doc.Transactions, record)

		if err := applyLeg(&doc, txn.Debit, txn.DebitX, txn.Amount, true); err != nil {
			return 0, err
		}
		if err := applyLeg(&doc, txn.Credit, txn.CreditX, txn.Amount, false); err != nil {
			return 0, err
		}
	}

	if err := item.Save(&doc); err != nil {
		return 0, err
	}

	logger.Info("Transactions recorded",
		slog.String("project_id", projectID),
		slog.Int64("first_id", head),
		slog.Int("count", len(txns)),
	)
	return head, nil
}

// applyLeg adds the amount to one leg of the balance table, creating the
// account row on first reference. The row is located afresh on every call,
// so a transaction debiting and crediting the same account still lands both
// updates on the one row.
func applyLeg(doc *models.LedgerDocument, name, namex string, amount decimal.Decimal, debit bool) error {
	idx := -1
	for i, row := range doc.Balance {
		if row.Name == name && row.NameX == namex {
			if idx >= 0 {
				return fmt.Errorf("%w: duplicate balance row for account %s/%s", apperrors.ErrInvariant, name, namex)
			}
			idx = i
		}
	}
	if idx < 0 {
		doc.Balance = append(doc.Balance, models.AccountBalance{
			Name:   name,
			NameX:  namex,
			Credit: decimal.Zero,
			Debit:  decimal.Zero,
		})
		idx = len(doc.Balance) - 1
	}
	if debit {
		doc.Balance[idx].Debit = doc.Balance[idx].Debit.Add(amount)
	} else {
		doc.Balance[idx].Credit = doc.Balance[idx].Credit.Add(amount)
	}
	return nil
}

// checkBalanceRows rejects a balance table holding more than one row per
// (name, sub-key) pair. Summing over duplicates would silently skew totals.
func checkBalanceRows(rows []models.AccountBalance) error {
	type key struct{ name, namex string }
	seen := make(map[key]struct{}, len(rows))
	for _, row := range rows {
		k := key{row.Name, row.NameX}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: duplicate balance row for account %s/%s", apperrors.ErrInvariant, row.Name, row.NameX)
		}
		seen[k] = struct{}{}
	}
	return nil
}
