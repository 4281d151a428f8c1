package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
)

type BookRepository interface {
	Create(ctx context.Context, title, author string, year int) (model.Book, error)
	Get(ctx context.Context, id int) (model.Book, error)
	List(ctx context.Context, availableOnly bool) ([]model.Book, error)
	ListByHolder(ctx context.Context, accountID int) ([]model.Book, error)
	Search(ctx context.Context, term string) ([]model.Book, error)
	Update(ctx context.Context, id int, upd model.BookUpdate) error
	Delete(ctx context.Context, id int) error
}

type bookRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewBookRepository(db *sqlx.DB, log *zap.Logger) (*bookRepository, error) {
	return &bookRepository{
		db:  db,
		log: log.Named("book-repo"),
	}, nil
}

const bookColumns = `id, title, author, year, user_id`

func (r *bookRepository) Create(ctx context.Context, title, author string, year int) (model.Book, error) {
	q, args, err := qb.Insert(booksTableName).
		Columns("title", "author", "year").
		Values(title, author, year).
		Suffix("returning " + bookColumns).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		r.log.Error("Create", zap.String("q", q), zap.Error(err))
		return model.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) Get(ctx context.Context, id int) (model.Book, error) {
	q, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}

	var book model.Book
	if err := r.db.GetContext(ctx, &book, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, errs.ErrNotFound
		}
		return model.Book{}, err
	}
	return book, nil
}

func (r *bookRepository) List(ctx context.Context, availableOnly bool) ([]model.Book, error) {
	b := qb.Select(bookColumns).
		From(booksTableName).
		OrderBy("id")
	if availableOnly {
		b = b.Where(sq.Eq{"user_id": nil})
	}

	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func (r *bookRepository) ListByHolder(ctx context.Context, accountID int) ([]model.Book, error) {
	q, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(sq.Eq{"user_id": accountID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

// Search matches the term case-insensitively against id, title, author and
// year, OR-combined.
func (r *bookRepository) Search(ctx context.Context, term string) ([]model.Book, error) {
	pattern := "%" + term + "%"
	or := sq.Or{
		sq.ILike{"title": pattern},
		sq.ILike{"author": pattern},
		sq.Expr("cast(year as text) like ?", pattern),
		sq.Expr("cast(id as text) like ?", pattern),
	}

	q, args, err := qb.Select(bookColumns).
		From(booksTableName).
		Where(or).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("Search", zap.String("query", q), zap.Any("args", args))

	var books []model.Book
	if err := r.db.SelectContext(ctx, &books, q, args...); err != nil {
		return nil, err
	}
	return books, nil
}

func buildBookUpdate(id int, upd model.BookUpdate) (string, []interface{}, error) {
	b := qb.Update(booksTableName).Where(sq.Eq{"id": id})
	changed := false
	if upd.Title != nil {
		b = b.Set("title", *upd.Title)
		changed = true
	}
	if upd.Author != nil {
		b = b.Set("author", *upd.Author)
		changed = true
	}
	if upd.Year != nil {
		b = b.Set("year", *upd.Year)
		changed = true
	}
	if upd.Holder != nil {
		b = b.Set("user_id", *upd.Holder)
		changed = true
	}
	if !changed {
		// no-op assignment, so a missing id still comes back as not found
		b = b.Set("title", sq.Expr("title"))
	}
	return b.ToSql()
}

func (r *bookRepository) Update(ctx context.Context, id int, upd model.BookUpdate) error {
	q, args, err := buildBookUpdate(id, upd)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *bookRepository) Delete(ctx context.Context, id int) error {
	q, args, err := qb.Delete(booksTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}
