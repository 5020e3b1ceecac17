package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a caller-supplied description of one double-entry posting:
// a single amount moved from a credit account to a debit account. It is a
// pure input value; the persisted form is TransactionRecord.
type Transaction struct {
	Amount  decimal.Decimal `json:"amount"`
	Debit   string          `json:"dt"`      // debit account name
	DebitX  string          `json:"dtx"`     // debit account sub-key
	Credit  string          `json:"ct"`      // credit account name
	CreditX string          `json:"ctx"`     // credit account sub-key
	Details string          `json:"details"` // free-text description
}

// TransactionRecord is a transaction as stored in the ledger document.
// Records are append-only: once written they are never mutated or deleted.
// IDs are positive, unique and gapless starting at 1; Parent links every
// non-head member of a batch to the batch head (0 means no parent).
type TransactionRecord struct {
	ID        int64           `json:"id"`
	Parent    int64           `json:"parent,omitempty"`
	CreatedAt time.Time       `json:"created"`
	Amount    decimal.Decimal `json:"amount"`
	Debit     string          `json:"dt"`
	DebitX    string          `json:"dtx"`
	Credit    string          `json:"ct"`
	CreditX   string          `json:"ctx"`
	Details   string          `json:"details"`
}

// AccountBalance is one running-total row of the balance table, keyed by
// (Name, NameX). Credit and Debit only ever grow, and only as a side effect
// of appending a transaction that references the account.
type AccountBalance struct {
	Name   string          `json:"name"`
	NameX  string          `json:"namex"`
	Credit decimal.Decimal `json:"ct"`
	Debit  decimal.Decimal `json:"dt"`
}

// DeficitMarker records that a project is in funding deficit. Its presence
// on the document is the deficit flag; at most one marker exists at a time.
type DeficitMarker struct {
	CreatedAt time.Time `json:"created"`
}

// LedgerDocument is the persisted per-project ledger: the deficit marker,
// the append-only transaction log and the balance table.
type LedgerDocument struct {
	Deficit      *DeficitMarker      `json:"deficit,omitempty"`
	Transactions []TransactionRecord `json:"transactions,omitempty"`
	Balance      []AccountBalance    `json:"balance,omitempty"`
}

// Account names used by cash reporting. Sub-keys further split accounts that
// share a display name (e.g. two asset buckets for different purposes).
const (
	AccountAssets      = "assets"
	AccountLiabilities = "liabilities"
)

// MaxTransactionID returns the highest transaction identifier present in the
// document, or 0 when no transaction has ever been appended.
func (d *LedgerDocument) MaxTransactionID() int64 {
	var max int64
	for _, txn := range d.Transactions {
		if txn.ID > max {
			max = txn.ID
		}
	}
	return max
}
