package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/config"
	"github.com/tmurzenkov/circulation-service/internal/cli"
	"github.com/tmurzenkov/circulation-service/internal/repository"
	"github.com/tmurzenkov/circulation-service/internal/service"
	"github.com/tmurzenkov/circulation-service/migrations"
	"github.com/tmurzenkov/circulation-service/pkg/hash"
	"github.com/tmurzenkov/circulation-service/pkg/logger"
	"github.com/tmurzenkov/circulation-service/pkg/postgres"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "circulation")
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	defer db.Close()

	accountRepo, err := repository.NewAccountRepository(db, log)
	if err != nil {
		log.Fatal("account repo", zap.Error(err))
	}
	bookRepo, err := repository.NewBookRepository(db, log)
	if err != nil {
		log.Fatal("book repo", zap.Error(err))
	}
	ledgerRepo, err := repository.NewLedgerRepository(db, log)
	if err != nil {
		log.Fatal("ledger repo", zap.Error(err))
	}

	hasher := hash.New()
	registry := service.NewRegistry(accountRepo, hasher, log)
	catalog := service.NewCatalog(bookRepo, ledgerRepo, log)
	lending := service.NewLending(ledgerRepo, log)
	gate := service.NewAccessGate()

	menu := cli.New(registry, catalog, lending, gate, log)
	if err := menu.Run(ctx); err != nil {
		log.Error("menu loop", zap.Error(err))
	}
	log.Info("shutdown finished")
}
