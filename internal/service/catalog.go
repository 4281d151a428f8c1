package service

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/repository"
	"github.com/tmurzenkov/circulation-service/pkg/validate"
)

// Catalog owns book records. The holder pointer on a book is a cache of the
// ledger's open entry; all regular holder changes go through the Lending
// service, the only exception being the admin override in EditBook.
type Catalog struct {
	log      *zap.Logger
	books    repository.BookRepository
	ledger   repository.LedgerRepository
	validate *validate.Validator
}

func NewCatalog(books repository.BookRepository, ledger repository.LedgerRepository, log *zap.Logger) *Catalog {
	return &Catalog{
		log:      log,
		books:    books,
		ledger:   ledger,
		validate: validate.New(),
	}
}

func (s *Catalog) AddBook(ctx context.Context, title, author string, year int) (model.Book, error) {
	req := model.AddBookRequest{Title: title, Author: author, Year: year}
	if err := s.validate.Validate(req); err != nil {
		return model.Book{}, errors.Wrap(errs.ErrValidation, err.Error())
	}
	return s.books.Create(ctx, title, author, year)
}

// EditBook applies a partial update. Changing the holder here is an admin
// override: it rewrites the ledger as well (closes the open entry, opens a
// new one for the assigned holder), so the holder pointer and the ledger
// never diverge.
func (s *Catalog) EditBook(ctx context.Context, id int, upd model.BookUpdate) error {
	holder := upd.Holder
	upd.Holder = nil
	if err := s.books.Update(ctx, id, upd); err != nil {
		return err
	}
	if holder == nil {
		return nil
	}
	s.log.Warn("holder override", zap.Int("bookID", id), zap.Any("holder", *holder))
	return s.ledger.OverrideHolder(ctx, id, *holder)
}

func (s *Catalog) DeleteBook(ctx context.Context, id int) error {
	return s.books.Delete(ctx, id)
}

func (s *Catalog) GetBook(ctx context.Context, id int) (model.Book, error) {
	return s.books.Get(ctx, id)
}

func (s *Catalog) ListAvailable(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx, true)
}

func (s *Catalog) ListAll(ctx context.Context) ([]model.Book, error) {
	return s.books.List(ctx, false)
}

func (s *Catalog) ListBorrowedBy(ctx context.Context, accountID int) ([]model.Book, error) {
	return s.books.ListByHolder(ctx, accountID)
}

func (s *Catalog) Search(ctx context.Context, term string) ([]model.Book, error) {
	return s.books.Search(ctx, term)
}
