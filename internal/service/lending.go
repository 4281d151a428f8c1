package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/repository"
)

// Lending is the borrow/return state machine. Per book the states are
// Available (no holder, no open entry) and Borrowed (holder set, exactly one
// open entry); the repository keeps the two sides in lockstep inside one
// transaction.
type Lending struct {
	log    *zap.Logger
	ledger repository.LedgerRepository
}

func NewLending(ledger repository.LedgerRepository, log *zap.Logger) *Lending {
	return &Lending{
		log:    log,
		ledger: ledger,
	}
}

// Borrow checks preconditions in order: blocked account, book existence,
// book availability. Nothing is written when any of them fails.
func (s *Lending) Borrow(ctx context.Context, account model.Account, bookID int) error {
	if account.Blocked {
		return errs.ErrAccountBlocked
	}
	if err := s.ledger.Borrow(ctx, account.ID, bookID); err != nil {
		return err
	}
	s.log.Info("borrowed", zap.Int("accountID", account.ID), zap.Int("bookID", bookID))
	return nil
}

// Return closes the caller's open loan. A missing book, an available book and
// a book held by someone else are indistinguishable to the caller: all are
// ErrNotReturnable.
func (s *Lending) Return(ctx context.Context, account model.Account, bookID int) error {
	if account.Blocked {
		return errs.ErrAccountBlocked
	}
	if err := s.ledger.Return(ctx, account.ID, bookID); err != nil {
		return err
	}
	s.log.Info("returned", zap.Int("accountID", account.ID), zap.Int("bookID", bookID))
	return nil
}

func (s *Lending) CountOpenFor(ctx context.Context, accountID int) (int, error) {
	return s.ledger.CountOpenFor(ctx, accountID)
}

func (s *Lending) HistoryFor(ctx context.Context, accountID int) ([]model.LedgerEntry, error) {
	return s.ledger.HistoryFor(ctx, accountID)
}
