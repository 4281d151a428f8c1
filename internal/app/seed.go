package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/config"
	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/repository"
	"github.com/tmurzenkov/circulation-service/internal/service"
	"github.com/tmurzenkov/circulation-service/migrations"
	"github.com/tmurzenkov/circulation-service/pkg/hash"
	"github.com/tmurzenkov/circulation-service/pkg/logger"
	"github.com/tmurzenkov/circulation-service/pkg/postgres"
)

type seedBook struct {
	title  string
	author string
	year   int
}

var seedBooks = []seedBook{
	{"Harry Potter and the Philosopher's Stone", "J.K. Rowling", 1997},
	{"To Kill a Mockingbird", "Harper Lee", 1960},
	{"1984", "George Orwell", 1949},
}

// Seed creates the default admin account and a handful of sample books.
// Re-running it is harmless: existing accounts are left alone and books are
// only inserted into an empty catalog.
func Seed(cfg *config.Config, adminPassword string) {
	log := logger.NewLogger(cfg.Log, "seed")
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

	registry := service.NewRegistry(accountRepo, hash.New(), log)
	catalog := service.NewCatalog(bookRepo, ledgerRepo, log)

	if _, err := registry.Register(ctx, "admin", adminPassword, model.RoleAdmin); err != nil {
		if !errors.Is(err, errs.ErrDuplicateUsername) {
			log.Fatal("seed admin", zap.Error(err))
		}
		log.Info("admin account already present")
	}

	books, err := catalog.ListAll(ctx)
	if err != nil {
		log.Fatal("list books", zap.Error(err))
	}
	if len(books) > 0 {
		log.Info("catalog not empty, skipping sample books", zap.Int("count", len(books)))
		return
	}
	for _, b := range seedBooks {
		if _, err := catalog.AddBook(ctx, b.title, b.author, b.year); err != nil {
			log.Fatal("seed book", zap.String("title", b.title), zap.Error(err))
		}
	}
	log.Info("seeded sample books", zap.Int("count", len(seedBooks)))
}
