package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aarlazuardi/erp-ledger/internal/config"
	"github.com/aarlazuardi/erp-ledger/internal/httpapi"
	"github.com/aarlazuardi/erp-ledger/internal/ledger"
	"github.com/aarlazuardi/erp-ledger/internal/service/journal"
	"github.com/aarlazuardi/erp-ledger/internal/service/transaction"
	pgstore "github.com/aarlazuardi/erp-ledger/internal/storage/postgres"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a small set of sample transactions (requires DATABASE_URL)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if cfg.DatabaseURL == "" {
				return errors.New("seed requires DATABASE_URL")
			}
			ctx := cmd.Context()
			pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer pg.Close()
			userID, err := seedDev(ctx, pg)
			if err != nil {
				return err
			}
			printDevSeedBanner(userID)
			return nil
		},
	}
}

// seedDev creates a fresh user with a handful of transactions covering the
// common shapes: preset sale, heuristic expense, pending receivable and an
// owner contribution. Journal entries are derived through the normal path.
func seedDev(ctx context.Context, store httpapi.Store) (uuid.UUID, error) {
	jsvc := journal.New(store, store)
	txSvc := transaction.New(store, store, jsvc)

	userID := uuid.New()
	now := time.Now()
	inputs := []transaction.CreateInput{
		{
			PresetKey: "owner-contribution",
			Amount:    decimal.NewFromInt(50000000),
			Date:      now.AddDate(0, -2, 0),
		},
		{
			PresetKey: "cash-sale",
			Amount:    decimal.NewFromInt(45000000),
			Date:      now.AddDate(0, -1, -3),
		},
		{
			FinanceType: ledger.FinanceExpense,
			Amount:      decimal.NewFromInt(12000000),
			Date:        now.AddDate(0, -1, -2),
			Category:    "HPP Bahan Baku",
			Status:      ledger.StatusPosted,
			CashFlow:    ledger.CashFlowOperating,
		},
		{
			FinanceType: ledger.FinanceIncome,
			Amount:      decimal.NewFromInt(15000000),
			Date:        now.AddDate(0, 0, -5),
			Category:    "Jasa Konsultasi",
			Status:      ledger.StatusPending,
			CashFlow:    ledger.CashFlowOperating,
		},
		{
			FinanceType: ledger.FinanceExpense,
			Amount:      decimal.NewFromInt(4500000),
			Date:        now.AddDate(0, 0, -4),
			Category:    "Beban Gaji",
			Status:      ledger.StatusPosted,
			CashFlow:    ledger.CashFlowOperating,
		},
	}
	for _, in := range inputs {
		if _, err := txSvc.Create(ctx, userID, in); err != nil {
			return uuid.Nil, err
		}
	}
	return userID, nil
}

// printDevSeedBanner prints the seeded user id to stdout for easy copy/paste.
func printDevSeedBanner(userID uuid.UUID) {
	fmt.Println("==================== DEV SEED ====================")
	fmt.Printf("user_id: %s\n", userID.String())
	fmt.Println("==================================================")
}
