package memory

import (
	"github.com/aarlazuardi/erp-ledger/internal/service/adjustment"
	"github.com/aarlazuardi/erp-ledger/internal/service/journal"
	"github.com/aarlazuardi/erp-ledger/internal/service/transaction"
)

// Compile-time interface assertions documenting which interfaces Store satisfies.
var (
	_ journal.Repo       = (*Store)(nil)
	_ journal.Writer     = (*Store)(nil)
	_ transaction.Repo   = (*Store)(nil)
	_ transaction.Writer = (*Store)(nil)
	_ adjustment.Repo    = (*Store)(nil)
	_ adjustment.Writer  = (*Store)(nil)
)
