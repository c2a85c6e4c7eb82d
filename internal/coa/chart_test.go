package coa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aarlazuardi/erp-ledger/internal/ledger"
)

func TestLookup(t *testing.T) {
	cash, ok := Lookup(CodeCash)
	require.True(t, ok)
	assert.Equal(t, ledger.AccountTypeAsset, cash.Type)
	assert.True(t, cash.IsCash)

	re, ok := Lookup(CodeRetainedEarnings)
	require.True(t, ok)
	assert.True(t, re.IsRetainedEarnings)

	_, ok = Lookup("9999")
	assert.False(t, ok)
}

func TestChartIsWellFormed(t *testing.T) {
	seen := map[string]bool{}
	for _, a := range All() {
		require.NotEmpty(t, a.Code)
		require.NotEmpty(t, a.Name)
		assert.True(t, a.Type.Valid(), "account %s has invalid type %q", a.Code, a.Type)
		assert.False(t, seen[a.Code], "duplicate account code %s", a.Code)
		seen[a.Code] = true
	}
}

func TestPresetsReferenceKnownAccounts(t *testing.T) {
	for _, p := range Presets() {
		assert.True(t, Exists(p.Template.DebitAccount), "preset %s debit account %s missing", p.Key, p.Template.DebitAccount)
		assert.True(t, Exists(p.Template.CreditAccount), "preset %s credit account %s missing", p.Key, p.Template.CreditAccount)
		assert.True(t, p.FinanceType.Valid(), "preset %s finance type", p.Key)
		assert.True(t, p.CashFlow.Valid(), "preset %s cash flow", p.Key)
	}
}

func TestLookupPreset(t *testing.T) {
	p, ok := LookupPreset("cash-sale")
	require.True(t, ok)
	assert.Equal(t, CodeCash, p.Template.DebitAccount)
	assert.Equal(t, CodeSalesRevenue, p.Template.CreditAccount)

	_, ok = LookupPreset("no-such-preset")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate())
}
