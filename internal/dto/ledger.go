package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pbk-app/project_bookkeeping_app/internal/models"
)

// TransactionInput describes one double-entry posting to record.
type TransactionInput struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	Debit   string          `json:"debit" binding:"required"`
	DebitX  string          `json:"debitx" binding:"required"`
	Credit  string          `json:"credit" binding:"required"`
	CreditX string          `json:"creditx" binding:"required"`
	Details string          `json:"details" binding:"required"`
}

// RecordTransactionsRequest carries a batch of transactions to append to a
// project's ledger in one atomic call.
type RecordTransactionsRequest struct {
	Transactions []TransactionInput `json:"transactions" binding:"required,min=1,dive"`
}

// RecordTransactionsResponse returns the identifier of the batch head.
type RecordTransactionsResponse struct {
	FirstID int64 `json:"firstID"`
}

// SetDeficitRequest sets or clears the project deficit flag.
type SetDeficitRequest struct {
	Deficit *bool `json:"deficit" binding:"required"`
}

// DeficitResponse reports the project deficit flag.
type DeficitResponse struct {
	Deficit bool `json:"deficit"`
}

// CashResponse reports the project cash position as exact decimal text.
type CashResponse struct {
	Cash decimal.Decimal `json:"cash"`
}

// ToTransactions converts transaction inputs to their domain value form.
func ToTransactions(inputs []TransactionInput) []models.Transaction {
	txns := make([]models.Transaction, len(inputs))
	for i, in := range inputs {
		txns[i] = models.Transaction{
			Amount:  in.Amount,
			Debit:   in.Debit,
			DebitX:  in.DebitX,
			Credit:  in.Credit,
			CreditX: in.CreditX,
			Details: in.Details,
		}
	}
	return txns
}
