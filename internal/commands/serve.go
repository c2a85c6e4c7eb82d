package commands

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aarlazuardi/erp-ledger/internal/coa"
	"github.com/aarlazuardi/erp-ledger/internal/config"
	"github.com/aarlazuardi/erp-ledger/internal/httpapi"
	"github.com/aarlazuardi/erp-ledger/internal/storage/memory"
	pgstore "github.com/aarlazuardi/erp-ledger/internal/storage/postgres"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := cfg.Logger()
	slog.SetDefault(logger)

	if err := coa.Validate(); err != nil {
		logger.Error("static catalog check failed", "err", err)
		return err
	}

	var store httpapi.Store
	var closeFn func()

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			return err
		}
		closeFn = pg.Close
		store = pg
		logger.Info("storage backend: postgres")
		if cfg.DevSeed {
			if userID, err := seedDev(ctx, pg); err != nil {
				logger.Error("dev seed failed", "err", err)
			} else {
				logger.Info("DEV seed (postgres)", "user_id", userID.String())
				printDevSeedBanner(userID)
			}
		}
	} else {
		mem := memory.New()
		store = mem
		logger.Info("storage backend: memory")
		// Memory store always gets a dev seed so the API is usable at once
		if userID, err := seedDev(ctx, mem); err != nil {
			logger.Error("dev seed failed", "err", err)
		} else {
			logger.Info("DEV seed (memory)", "user_id", userID.String())
			printDevSeedBanner(userID)
		}
	}

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: httpapi.New(store, logger, httpapi.AuthConfig{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
		}).Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("erp service listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}
	if closeFn != nil {
		closeFn()
	}
	return nil
}
