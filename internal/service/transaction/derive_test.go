package transaction_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarlazuardi/erp-ledger/internal/coa"
	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
	"github.com/aarlazuardi/erp-ledger/internal/service/journal"
	"github.com/aarlazuardi/erp-ledger/internal/service/transaction"
)

func baseTx(ft ledger.FinanceType, category string) ledger.Transaction {
	return ledger.Transaction{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		FinanceType: ft,
		Amount:      decimal.NewFromInt(45000000),
		Date:        time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC),
		Category:    category,
		Status:      ledger.StatusPosted,
		CashFlow:    ledger.CashFlowOperating,
	}
}

func accountPair(t *testing.T, draft ledger.JournalDraft) (debit, credit string) {
	t.Helper()
	require.Len(t, draft.Lines, 2)
	return draft.Lines[0].AccountCode, draft.Lines[1].AccountCode
}

func TestDeriveDraft_Income(t *testing.T) {
	t.Run("posted sale debits cash", func(t *testing.T) {
		tx := baseTx(ledger.FinanceIncome, "Sales - Produk A")
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		debit, credit := accountPair(t, draft)
		assert.Equal(t, coa.CodeCash, debit)
		assert.Equal(t, coa.CodeSalesRevenue, credit)
		assert.True(t, draft.Lines[0].Debit.Equal(tx.Amount))
		assert.True(t, draft.Lines[1].Credit.Equal(tx.Amount))
		assert.Equal(t, tx.ID, draft.ReferenceID)
	})

	t.Run("pending income debits receivable", func(t *testing.T) {
		tx := baseTx(ledger.FinanceIncome, "Sales")
		tx.Status = ledger.StatusPending
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		debit, _ := accountPair(t, draft)
		assert.Equal(t, coa.CodeAccountsReceivable, debit)
	})

	t.Run("service income credits other revenue", func(t *testing.T) {
		tx := baseTx(ledger.FinanceIncome, "Jasa Konsultasi")
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		_, credit := accountPair(t, draft)
		assert.Equal(t, coa.CodeOtherRevenue, credit)
	})
}

func TestDeriveDraft_Expense(t *testing.T) {
	cases := []struct {
		name     string
		category string
		cashFlow ledger.CashFlowCategory
		status   ledger.TransactionStatus
		debit    string
		credit   string
	}{
		{"cost of goods sold pays cash", "Cost of Goods Sold", ledger.CashFlowOperating, ledger.StatusPosted, coa.CodeCOGS, coa.CodeCash},
		{"hpp category", "HPP Bahan Baku", ledger.CashFlowOperating, ledger.StatusPosted, coa.CodeCOGS, coa.CodeCash},
		{"tax expense", "Pajak Penghasilan", ledger.CashFlowOperating, ledger.StatusPosted, coa.CodeTaxExpense, coa.CodeCash},
		{"depreciation by category", "Penyusutan Mesin", ledger.CashFlowNonCash, ledger.StatusPosted, coa.CodeDepreciationExpense, coa.CodeAccumDepreciation},
		{"non-cash defaults to depreciation", "Lain-lain", ledger.CashFlowNonCash, ledger.StatusPosted, coa.CodeDepreciationExpense, coa.CodeAccumDepreciation},
		{"pending expense credits payable", "Beban Gaji", ledger.CashFlowOperating, ledger.StatusPending, coa.CodeOperatingExpense, coa.CodeAccountsPayable},
		{"default operating expense", "Beban Listrik", ledger.CashFlowOperating, ledger.StatusPosted, coa.CodeOperatingExpense, coa.CodeCash},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := baseTx(ledger.FinanceExpense, tc.category)
			tx.CashFlow = tc.cashFlow
			tx.Status = tc.status
			draft, err := transaction.DeriveDraft(tx)
			require.NoError(t, err)
			debit, credit := accountPair(t, draft)
			assert.Equal(t, tc.debit, debit)
			assert.Equal(t, tc.credit, credit)
		})
	}
}

func TestDeriveDraft_BalanceSheetTypes(t *testing.T) {
	t.Run("inventory asset", func(t *testing.T) {
		tx := baseTx(ledger.FinanceAsset, "Persediaan Barang")
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		debit, credit := accountPair(t, draft)
		assert.Equal(t, coa.CodeInventory, debit)
		assert.Equal(t, coa.CodeOwnersEquity, credit)
	})

	t.Run("fixed asset outside operating", func(t *testing.T) {
		tx := baseTx(ledger.FinanceAsset, "Kendaraan")
		tx.CashFlow = ledger.CashFlowInvesting
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		debit, _ := accountPair(t, draft)
		assert.Equal(t, coa.CodeFixedAssets, debit)
	})

	t.Run("trade payable liability", func(t *testing.T) {
		tx := baseTx(ledger.FinanceLiability, "Hutang Usaha")
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		debit, credit := accountPair(t, draft)
		assert.Equal(t, coa.CodeOwnersEquity, debit)
		assert.Equal(t, coa.CodeAccountsPayable, credit)
	})

	t.Run("loan liability", func(t *testing.T) {
		tx := baseTx(ledger.FinanceLiability, "Pinjaman Bank")
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		_, credit := accountPair(t, draft)
		assert.Equal(t, coa.CodeLoansPayable, credit)
	})

	t.Run("equity contribution", func(t *testing.T) {
		tx := baseTx(ledger.FinanceEquity, "Modal Disetor")
		draft, err := transaction.DeriveDraft(tx)
		require.NoError(t, err)
		debit, credit := accountPair(t, draft)
		assert.Equal(t, coa.CodeCash, debit)
		assert.Equal(t, coa.CodeOwnersEquity, credit)
	})
}

func TestDeriveDraft_PresetPath(t *testing.T) {
	tx := baseTx(ledger.FinanceIncome, "Jasa") // would pick OtherRevenue heuristically
	tx.PresetKey = "cash-sale"
	draft, err := transaction.DeriveDraft(tx)
	require.NoError(t, err)
	debit, credit := accountPair(t, draft)
	assert.Equal(t, coa.CodeCash, debit)
	assert.Equal(t, coa.CodeSalesRevenue, credit)

	// Transaction memo wins over the template description
	tx.Description = "invoice 7"
	draft, err = transaction.DeriveDraft(tx)
	require.NoError(t, err)
	assert.Equal(t, "invoice 7", draft.Memo)
}

func TestDeriveDraft_InvalidType(t *testing.T) {
	tx := baseTx("bogus", "x")
	_, err := transaction.DeriveDraft(tx)
	assert.ErrorIs(t, err, errs.ErrInvalid)
}

// Every draft the heuristic produces must pass ledger validation unchanged.
func TestDeriveDraft_AlwaysBalanced(t *testing.T) {
	for _, ft := range []ledger.FinanceType{
		ledger.FinanceIncome, ledger.FinanceExpense, ledger.FinanceAsset,
		ledger.FinanceLiability, ledger.FinanceEquity,
	} {
		for _, cf := range []ledger.CashFlowCategory{
			ledger.CashFlowOperating, ledger.CashFlowInvesting,
			ledger.CashFlowFinancing, ledger.CashFlowNonCash,
		} {
			tx := baseTx(ft, "Umum")
			tx.CashFlow = cf
			draft, err := transaction.DeriveDraft(tx)
			require.NoError(t, err)
			assert.NoError(t, journal.ValidateDraft(draft), "type=%s flow=%s", ft, cf)
		}
	}
}
