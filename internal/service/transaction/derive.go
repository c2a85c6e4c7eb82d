package transaction

import (
	"fmt"
	"strings"

	"github.com/aarlazuardi/erp-ledger/internal/coa"
	"github.com/aarlazuardi/erp-ledger/internal/errs"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

// DeriveDraft maps a normalized transaction onto a balanced two-line journal
// draft. It is a pure function: no storage access, no clock.
//
// A resolvable preset key short-circuits all category heuristics and uses the
// preset's fixed account pair. Without a preset, accounts are chosen from the
// transaction's finance type, category text, cash-flow tag and status.
func DeriveDraft(tx ledger.Transaction) (ledger.JournalDraft, error) {
	memo := tx.Description
	var debit, credit string

	if preset, ok := coa.LookupPreset(tx.PresetKey); ok {
		debit = preset.Template.DebitAccount
		credit = preset.Template.CreditAccount
		if memo == "" {
			memo = preset.Template.Description
		}
	} else {
		category := strings.ToLower(tx.Category)
		switch tx.FinanceType {
		case ledger.FinanceIncome:
			debit, credit = deriveIncome(tx, category)
		case ledger.FinanceExpense:
			debit, credit = deriveExpense(tx, category)
		case ledger.FinanceAsset:
			// The equity leg keeps the ledger mechanically balanced; the
			// balance sheet classifies these from the transaction itself.
			debit = deriveAssetAccount(tx, category)
			credit = coa.CodeOwnersEquity
		case ledger.FinanceLiability:
			debit = coa.CodeOwnersEquity
			credit = deriveLiabilityAccount(category)
		case ledger.FinanceEquity:
			debit = coa.CodeCash
			credit = coa.CodeOwnersEquity
		default:
			return ledger.JournalDraft{}, fmt.Errorf("%w: finance type %q", errs.ErrInvalid, tx.FinanceType)
		}
	}

	for _, code := range []string{debit, credit} {
		if !coa.Exists(code) {
			return ledger.JournalDraft{}, fmt.Errorf("%w: account %q not in chart", errs.ErrConfig, code)
		}
	}

	return ledger.JournalDraft{
		Date:        tx.Date,
		Memo:        memo,
		ReferenceID: tx.ID,
		Lines: []ledger.JournalLine{
			{AccountCode: debit, Debit: tx.Amount, Description: memo},
			{AccountCode: credit, Credit: tx.Amount, Description: memo},
		},
	}, nil
}

func deriveIncome(tx ledger.Transaction, category string) (debit, credit string) {
	debit = coa.CodeCash
	if tx.Status == ledger.StatusPending || tx.CashFlow == ledger.CashFlowNonCash {
		debit = coa.CodeAccountsReceivable
	}
	credit = coa.CodeSalesRevenue
	if strings.Contains(category, "lain") || strings.Contains(category, "jasa") {
		credit = coa.CodeOtherRevenue
	}
	return debit, credit
}

func deriveExpense(tx ledger.Transaction, category string) (debit, credit string) {
	switch {
	case strings.Contains(category, "hpp"), strings.Contains(category, "cogs"), strings.Contains(category, "cost of goods"):
		debit = coa.CodeCOGS
	case strings.Contains(category, "pajak"):
		debit = coa.CodeTaxExpense
	case strings.Contains(category, "penyusutan"):
		debit = coa.CodeDepreciationExpense
	case tx.CashFlow == ledger.CashFlowNonCash:
		debit = coa.CodeDepreciationExpense
	default:
		debit = coa.CodeOperatingExpense
	}
	switch {
	case tx.CashFlow == ledger.CashFlowNonCash:
		credit = coa.CodeAccumDepreciation
	case tx.Status == ledger.StatusPending:
		credit = coa.CodeAccountsPayable
	default:
		credit = coa.CodeCash
	}
	return debit, credit
}

func deriveAssetAccount(tx ledger.Transaction, category string) string {
	switch {
	case strings.Contains(category, "persediaan"):
		return coa.CodeInventory
	case strings.Contains(category, "penyusutan"):
		return coa.CodeAccumDepreciation
	case tx.CashFlow == ledger.CashFlowOperating:
		return coa.CodeInventory
	default:
		return coa.CodeFixedAssets
	}
}

func deriveLiabilityAccount(category string) string {
	if strings.Contains(category, "usaha") || strings.Contains(category, "supplier") {
		return coa.CodeAccountsPayable
	}
	return coa.CodeLoansPayable
}
