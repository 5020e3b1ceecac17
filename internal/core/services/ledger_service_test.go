package services_test

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/pbk-app/project_bookkeeping_app/internal/apperrors"
	portssvc "github.com/pbk-app/project_bookkeeping_app/internal/core/ports/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/core/services"
	"github.com/pbk-app/project_bookkeeping_app/internal/models"
	"github.com/pbk-app/project_bookkeeping_app/internal/repositories/docstore"
)

const testProject = "TESTPROJ1"

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	fs    afero.Fs
	store *docstore.Store
	svc   portssvc.LedgerSvcFacade
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.fs = afero.NewMemMapFs()
	s.store = docstore.NewStore(s.fs, "data")
	s.svc = services.NewLedgerService(s.store)
	s.Require().NoError(s.svc.Bootstrap(s.ctx, testProject))
}

// loadDocument reads the raw ledger document, bypassing the service.
func (s *LedgerServiceTestSuite) loadDocument() models.LedgerDocument {
	item, err := s.store.Acquire(s.ctx, testProject, "ledger.json")
	s.Require().NoError(err)
	defer item.Close()

	var doc models.LedgerDocument
	exists, err := item.Load(&doc)
	s.Require().NoError(err)
	s.Require().True(exists)
	return doc
}

func (s *LedgerServiceTestSuite) balanceRow(doc models.LedgerDocument, name, namex string) *models.AccountBalance {
	for i := range doc.Balance {
		if doc.Balance[i].Name == name && doc.Balance[i].NameX == namex {
			return &doc.Balance[i]
		}
	}
	return nil
}

func seedTransaction() models.Transaction {
	return models.Transaction{
		Amount:  decimal.NewFromInt(100),
		Debit:   models.AccountAssets,
		DebitX:  "cash",
		Credit:  models.AccountLiabilities,
		CreditX: "capital",
		Details: "seed",
	}
}

func (s *LedgerServiceTestSuite) TestBootstrapIsIdempotent() {
	firstID, err := s.svc.Add(s.ctx, testProject, seedTransaction())
	s.Require().NoError(err)
	s.Require().EqualValues(1, firstID)

	s.Require().NoError(s.svc.Bootstrap(s.ctx, testProject))

	cash, err := s.svc.Cash(s.ctx, testProject)
	s.Require().NoError(err)
	s.True(cash.Equal(decimal.NewFromInt(100)), "bootstrap must not reset existing data, cash=%s", cash)
}

func (s *LedgerServiceTestSuite) TestSeedScenario() {
	firstID, err := s.svc.Add(s.ctx, testProject, seedTransaction())
	s.Require().NoError(err)
	s.EqualValues(1, firstID)

	cash, err := s.svc.Cash(s.ctx, testProject)
	s.Require().NoError(err)
	s.True(cash.Equal(decimal.NewFromInt(100)), "cash=%s", cash)

	doc := s.loadDocument()
	assets := s.balanceRow(doc, models.AccountAssets, "cash")
	s.Require().NotNil(assets)
	s.True(assets.Debit.Equal(decimal.NewFromInt(100)))
	s.True(assets.Credit.Equal(decimal.Zero))

	liabilities := s.balanceRow(doc, models.AccountLiabilities, "capital")
	s.Require().NotNil(liabilities)
	s.True(liabilities.Debit.Equal(decimal.Zero))
	s.True(liabilities.Credit.Equal(decimal.NewFromInt(100)))
}

func (s *LedgerServiceTestSuite) TestWithdrawalScenario() {
	_, err := s.svc.Add(s.ctx, testProject, seedTransaction())
	s.Require().NoError(err)

	id, err := s.svc.Add(s.ctx, testProject, models.Transaction{
		Amount:  decimal.NewFromInt(30),
		Debit:   models.AccountLiabilities,
		DebitX:  "capital",
		Credit:  models.AccountAssets,
		CreditX: "cash",
		Details: "withdrawal",
	})
	s.Require().NoError(err)
	s.EqualValues(2, id)

	cash, err := s.svc.Cash(s.ctx, testProject)
	s.Require().NoError(err)
	s.True(cash.Equal(decimal.NewFromInt(70)), "cash=%s", cash)
}

func (s *LedgerServiceTestSuite) TestIdentifiersAreGapless() {
	total := 0
	for _, batch := range []int{1, 3, 2, 5, 1} {
		txns := make([]models.Transaction, batch)
		for i := range txns {
			txns[i] = seedTransaction()
			txns[i].Details = gofakeit.Sentence(3)
		}
		firstID, err := s.svc.Add(s.ctx, testProject, txns...)
		s.Require().NoError(err)
		s.EqualValues(total+1, firstID)
		total += batch
	}

	doc := s.loadDocument()
	s.Require().Len(doc.Transactions, total)
	seen := make(map[int64]bool)
	for i, txn := range doc.Transactions {
		s.EqualValues(i+1, txn.ID, "ids must be gapless in append order")
		s.False(seen[txn.ID], "id %d assigned twice", txn.ID)
		seen[txn.ID] = true
	}
}

func (s *LedgerServiceTestSuite) TestBatchLinksToHead() {
	_, err := s.svc.Add(s.ctx, testProject, seedTransaction(), seedTransaction())
	s.Require().NoError(err)

	head, err := s.svc.Add(s.ctx, testProject, seedTransaction(), seedTransaction(), seedTransaction())
	s.Require().NoError(err)
	s.EqualValues(3, head)

	doc := s.loadDocument()
	for _, txn := range doc.Transactions {
		switch txn.ID {
		case 1, 3:
			s.EqualValues(0, txn.Parent, "batch heads have no parent (id %d)", txn.ID)
		case 2:
			s.EqualValues(1, txn.Parent)
		case 4, 5:
			s.EqualValues(head, txn.Parent)
		}
	}
}

func (s *LedgerServiceTestSuite) TestBalanceMatchesTransactionLog() {
	accounts := []struct{ name, namex string }{
		{models.AccountAssets, "cash"},
		{models.AccountAssets, "escrow"},
		{models.AccountLiabilities, "capital"},
		{models.AccountLiabilities, "debt"},
	}

	for i := 0; i < 40; i++ {
		from := accounts[gofakeit.Number(0, len(accounts)-1)]
		to := accounts[gofakeit.Number(0, len(accounts)-1)]
		_, err := s.svc.Add(s.ctx, testProject, models.Transaction{
			Amount:  decimal.NewFromInt(int64(gofakeit.Number(1, 500))),
			Debit:   from.name,
			DebitX:  from.namex,
			Credit:  to.name,
			CreditX: to.namex,
			Details: gofakeit.Sentence(4),
		})
		s.Require().NoError(err)
	}

	doc := s.loadDocument()
	for _, acc := range accounts {
		wantDebit, wantCredit := decimal.Zero, decimal.Zero
		for _, txn := range doc.Transactions {
			if txn.Debit == acc.name && txn.DebitX == acc.namex {
				wantDebit = wantDebit.Add(txn.Amount)
			}
			if txn.Credit == acc.name && txn.CreditX == acc.namex {
				wantCredit = wantCredit.Add(txn.Amount)
			}
		}
		row := s.balanceRow(doc, acc.name, acc.namex)
		if row == nil {
			s.True(wantDebit.IsZero() && wantCredit.IsZero(), "missing row for referenced account %s/%s", acc.name, acc.namex)
			continue
		}
		s.True(row.Debit.Equal(wantDebit), "%s/%s dt: got %s want %s", acc.name, acc.namex, row.Debit, wantDebit)
		s.True(row.Credit.Equal(wantCredit), "%s/%s ct: got %s want %s", acc.name, acc.namex, row.Credit, wantCredit)
	}

	// Cash identity: recompute directly from the balance table.
	want := decimal.Zero
	for _, row := range doc.Balance {
		switch row.Name {
		case models.AccountAssets:
			want = want.Add(row.Debit).Sub(row.Credit)
		case models.AccountLiabilities:
			want = want.Add(row.Debit).Sub(row.Credit)
		}
	}
	cash, err := s.svc.Cash(s.ctx, testProject)
	s.Require().NoError(err)
	s.True(cash.Equal(want), "cash: got %s want %s", cash, want)
}

func (s *LedgerServiceTestSuite) TestSameAccountBothLegs() {
	_, err := s.svc.Add(s.ctx, testProject, models.Transaction{
		Amount:  decimal.NewFromInt(25),
		Debit:   models.AccountAssets,
		DebitX:  "cash",
		Credit:  models.AccountAssets,
		CreditX: "cash",
		Details: "internal move",
	})
	s.Require().NoError(err)

	doc := s.loadDocument()
	s.Require().Len(doc.Balance, 1, "same account on both legs must not create a second row")
	s.True(doc.Balance[0].Debit.Equal(decimal.NewFromInt(25)))
	s.True(doc.Balance[0].Credit.Equal(decimal.NewFromInt(25)))
}

func (s *LedgerServiceTestSuite) TestDeficitToggle() {
	deficit, err := s.svc.Deficit(s.ctx, testProject)
	s.Require().NoError(err)
	s.False(deficit)

	// Clearing an absent marker is a no-op.
	s.Require().NoError(s.svc.SetDeficit(s.ctx, testProject, false))

	s.Require().NoError(s.svc.SetDeficit(s.ctx, testProject, true))
	s.Require().NoError(s.svc.SetDeficit(s.ctx, testProject, true))

	deficit, err = s.svc.Deficit(s.ctx, testProject)
	s.Require().NoError(err)
	s.True(deficit)

	doc := s.loadDocument()
	s.Require().NotNil(doc.Deficit)
	s.False(doc.Deficit.CreatedAt.IsZero())

	s.Require().NoError(s.svc.SetDeficit(s.ctx, testProject, false))
	deficit, err = s.svc.Deficit(s.ctx, testProject)
	s.Require().NoError(err)
	s.False(deficit)
}

func (s *LedgerServiceTestSuite) TestConcurrentBatchesDoNotOverlap() {
	const (
		batches   = 8
		batchSize = 5
	)

	var wg sync.WaitGroup
	heads := make([]int64, batches)
	for i := 0; i < batches; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			txns := make([]models.Transaction, batchSize)
			for j := range txns {
				txns[j] = seedTransaction()
				txns[j].Details = fmt.Sprintf("batch %d entry %d", slot, j)
			}
			head, err := s.svc.Add(s.ctx, testProject, txns...)
			if err == nil {
				heads[slot] = head
			}
		}(i)
	}
	wg.Wait()

	doc := s.loadDocument()
	s.Require().Len(doc.Transactions, batches*batchSize)

	seen := make(map[int64]bool)
	for _, txn := range doc.Transactions {
		s.False(seen[txn.ID])
		seen[txn.ID] = true
	}
	for id := int64(1); id <= batches*batchSize; id++ {
		s.True(seen[id], "id %d missing from contiguous range", id)
	}

	// Each batch stays internally contiguous and linked to its head.
	for _, head := range heads {
		s.Require().NotZero(head)
		for _, txn := range doc.Transactions {
			if txn.ID > head && txn.ID < head+batchSize {
				s.EqualValues(head, txn.Parent)
			}
		}
	}
}

func (s *LedgerServiceTestSuite) TestAddValidation() {
	_, err := s.svc.Add(s.ctx, testProject)
	s.ErrorIs(err, apperrors.ErrValidation)

	negative := seedTransaction()
	negative.Amount = decimal.NewFromInt(-5)
	_, err = s.svc.Add(s.ctx, testProject, negative)
	s.ErrorIs(err, apperrors.ErrValidation)

	incomplete := seedTransaction()
	incomplete.CreditX = ""
	_, err = s.svc.Add(s.ctx, testProject, incomplete)
	s.ErrorIs(err, apperrors.ErrValidation)

	// Nothing was appended by the rejected calls.
	doc := s.loadDocument()
	s.Empty(doc.Transactions)
}

func (s *LedgerServiceTestSuite) TestCorruptDocumentSurfaces() {
	path := filepath.Join("data", testProject, "ledger.json")
	s.Require().NoError(afero.WriteFile(s.fs, path, []byte(`{"balance": [{"ct": "abc"}]}`), 0o644))

	_, err := s.svc.Cash(s.ctx, testProject)
	s.ErrorIs(err, apperrors.ErrCorrupt)

	_, err = s.svc.Add(s.ctx, testProject, seedTransaction())
	s.ErrorIs(err, apperrors.ErrCorrupt)
}

func (s *LedgerServiceTestSuite) TestDuplicateBalanceRowsRejected() {
	path := filepath.Join("data", testProject, "ledger.json")
	content := `{"balance": [
		{"name": "assets", "namex": "cash", "ct": "0", "dt": "10"},
		{"name": "assets", "namex": "cash", "ct": "0", "dt": "20"}
	]}`
	s.Require().NoError(afero.WriteFile(s.fs, path, []byte(content), 0o644))

	_, err := s.svc.Cash(s.ctx, testProject)
	s.ErrorIs(err, apperrors.ErrInvariant)

	_, err = s.svc.Add(s.ctx, testProject, seedTransaction())
	s.ErrorIs(err, apperrors.ErrInvariant)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
