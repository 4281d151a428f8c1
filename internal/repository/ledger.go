package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
)

type LedgerRepository interface {
	Borrow(ctx context.Context, accountID, bookID int) error
	Return(ctx context.Context, accountID, bookID int) error
	OverrideHolder(ctx context.Context, bookID int, holder sql.NullInt32) error
	CountOpenFor(ctx context.Context, accountID int) (int, error)
	HistoryFor(ctx context.Context, accountID int) ([]model.LedgerEntry, error)
	OpenEntry(ctx context.Context, bookID int) (model.LedgerEntry, error)
}

type ledgerRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewLedgerRepository(db *sqlx.DB, log *zap.Logger) (*ledgerRepository, error) {
	return &ledgerRepository{
		db:  db,
		log: log.Named("ledger-repo"),
	}, nil
}

const entryColumns = `id, entry_uid, book_id, user_id, borrowed_at, returned_at`

// Borrow sets the holder and appends the open ledger row in one transaction.
// The book row is locked first, so two concurrent borrowers of the same book
// cannot both pass the holder check.
func (r *ledgerRepository) Borrow(ctx context.Context, accountID, bookID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var holder sql.NullInt32
	err = tx.QueryRowContext(ctx,
		`select user_id from books where id = $1 for update`, bookID).Scan(&holder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}
	if holder.Valid {
		return errs.ErrAlreadyBorrowed
	}

	if _, err := tx.ExecContext(ctx,
		`update books set user_id = $1 where id = $2`, accountID, bookID); err != nil {
		return err
	}

	q, args, err := qb.Insert(transactionsTableName).
		Columns("entry_uid", "book_id", "user_id").
		Values(uuid.New(), bookID, accountID).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		r.log.Error("Borrow append", zap.String("q", q), zap.Any("args", args), zap.Error(err))
		return err
	}

	return tx.Commit()
}

// Return clears the holder and closes the open ledger row in one transaction.
// A book that does not exist, is not borrowed, or is held by someone else all
// surface as ErrNotReturnable.
func (r *ledgerRepository) Return(ctx context.Context, accountID, bookID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var holder sql.NullInt32
	err = tx.QueryRowContext(ctx,
		`select user_id from books where id = $1 for update`, bookID).Scan(&holder)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotReturnable
		}
		return err
	}
	if !holder.Valid || int(holder.Int32) != accountID {
		return errs.ErrNotReturnable
	}

	if _, err := tx.ExecContext(ctx,
		`update books set user_id = null where id = $1`, bookID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
	update transactions set returned_at = now()
	where book_id = $1 and user_id = $2 and returned_at is null`,
		bookID, accountID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// holder pointer and ledger disagree; refuse rather than fake a close
		return errs.ErrNotReturnable
	}

	return tx.Commit()
}

// OverrideHolder is the admin escape hatch behind book editing. It rewrites
// the holder pointer and keeps the ledger in lockstep: the current open entry
// is closed, and a fresh one is opened when a new holder is assigned.
func (r *ledgerRepository) OverrideHolder(ctx context.Context, bookID int, holder sql.NullInt32) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var current sql.NullInt32
	err = tx.QueryRowContext(ctx,
		`select user_id from books where id = $1 for update`, bookID).Scan(&current)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.ErrNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`update books set user_id = $1 where id = $2`, holder, bookID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
	update transactions set returned_at = now()
	where book_id = $1 and returned_at is null`, bookID); err != nil {
		return err
	}

	if holder.Valid {
		q, args, err := qb.Insert(transactionsTableName).
			Columns("entry_uid", "book_id", "user_id").
			Values(uuid.New(), bookID, holder.Int32).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, q, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *ledgerRepository) CountOpenFor(ctx context.Context, accountID int) (int, error) {
	q := `
	select count(*) from transactions
	where user_id = $1 and returned_at is null
`
	var count int
	if err := r.db.QueryRowContext(ctx, q, accountID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ledgerRepository) HistoryFor(ctx context.Context, accountID int) ([]model.LedgerEntry, error) {
	q, args, err := qb.Select(entryColumns).
		From(transactionsTableName).
		Where(sq.Eq{"user_id": accountID}).
		OrderBy("borrowed_at").
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []model.LedgerEntry
	if err := r.db.SelectContext(ctx, &items, q, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *ledgerRepository) OpenEntry(ctx context.Context, bookID int) (model.LedgerEntry, error) {
	q, args, err := qb.Select(entryColumns).
		From(transactionsTableName).
		Where(sq.Eq{"book_id": bookID}).
		Where("returned_at is null").
		ToSql()
	if err != nil {
		return model.LedgerEntry{}, err
	}

	var entry model.LedgerEntry
	if err := r.db.GetContext(ctx, &entry, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.LedgerEntry{}, errs.ErrNotFound
		}
		return model.LedgerEntry{}, err
	}
	return entry, nil
}
