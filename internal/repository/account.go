package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
)

type AccountRepository interface {
	Create(ctx context.Context, username, passwordHash string, role model.Role) (model.Account, error)
	GetByID(ctx context.Context, id int) (model.Account, error)
	GetByUsername(ctx context.Context, username string) (model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	Update(ctx context.Context, id int, upd model.AccountUpdate) error
	SetStatus(ctx context.Context, id int, upd model.StatusUpdate) error
	SetPassword(ctx context.Context, id int, passwordHash string) error
	Delete(ctx context.Context, id int) (int, error)
}

type accountRepository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewAccountRepository(db *sqlx.DB, log *zap.Logger) (*accountRepository, error) {
	return &accountRepository{
		db:  db,
		log: log.Named("account-repo"),
	}, nil
}

const accountColumns = `id, username, password, role, name, surname, activated, blocked`

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

func (r *accountRepository) Create(ctx context.Context, username, passwordHash string, role model.Role) (model.Account, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("username", "password", "role").
		Values(username, passwordHash, role).
		Suffix("returning " + accountColumns).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}

	var acc model.Account
	if err := r.db.GetContext(ctx, &acc, q, args...); err != nil {
		if isUniqueViolation(err) {
			return model.Account{}, errs.ErrDuplicateUsername
		}
		r.log.Error("Create", zap.String("q", q), zap.Error(err))
		return model.Account{}, err
	}
	return acc, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int) (model.Account, error) {
	q, args, err := qb.Select(accountColumns).
		From(usersTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}

	var acc model.Account
	if err := r.db.GetContext(ctx, &acc, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, errs.ErrNotFound
		}
		return model.Account{}, err
	}
	return acc, nil
}

func (r *accountRepository) GetByUsername(ctx context.Context, username string) (model.Account, error) {
	q, args, err := qb.Select(accountColumns).
		From(usersTableName).
		Where(sq.Eq{"username": username}).
		ToSql()
	if err != nil {
		return model.Account{}, err
	}

	var acc model.Account
	if err := r.db.GetContext(ctx, &acc, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, errs.ErrNotFound
		}
		return model.Account{}, err
	}
	return acc, nil
}

func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	q, args, err := qb.Select(accountColumns).
		From(usersTableName).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}

	var accs []model.Account
	if err := r.db.SelectContext(ctx, &accs, q, args...); err != nil {
		return nil, err
	}
	return accs, nil
}

func buildAccountUpdate(id int, upd model.AccountUpdate) (string, []interface{}, error) {
	b := qb.Update(usersTableName).Where(sq.Eq{"id": id})
	changed := false
	if upd.Username != nil {
		b = b.Set("username", *upd.Username)
		changed = true
	}
	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
		changed = true
	}
	if upd.Surname != nil {
		b = b.Set("surname", *upd.Surname)
		changed = true
	}
	if upd.Role != nil {
		b = b.Set("role", *upd.Role)
		changed = true
	}
	if !changed {
		// no-op assignment, so a missing id still comes back as not found
		b = b.Set("username", sq.Expr("username"))
	}
	return b.ToSql()
}

func (r *accountRepository) Update(ctx context.Context, id int, upd model.AccountUpdate) error {
	q, args, err := buildAccountUpdate(id, upd)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return errs.ErrDuplicateUsername
		}
		return err
	}
	return requireRow(res)
}

func buildStatusUpdate(id int, upd model.StatusUpdate) (string, []interface{}, error) {
	b := qb.Update(usersTableName).Where(sq.Eq{"id": id})
	changed := false
	if upd.Activated != nil {
		b = b.Set("activated", *upd.Activated)
		changed = true
	}
	if upd.Blocked != nil {
		b = b.Set("blocked", *upd.Blocked)
		changed = true
	}
	if !changed {
		b = b.Set("activated", sq.Expr("activated"))
	}
	return b.ToSql()
}

func (r *accountRepository) SetStatus(ctx context.Context, id int, upd model.StatusUpdate) error {
	q, args, err := buildStatusUpdate(id, upd)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *accountRepository) SetPassword(ctx context.Context, id int, passwordHash string) error {
	q, args, err := qb.Update(usersTableName).
		Set("password", passwordHash).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the account in one transaction. Its open loans are closed
// first, so the held books go back to available and no open ledger row is
// left pointing at a gone account; the row delete then clears the holder
// pointers via the set-null foreign key. Closed history stays behind
// untouched, and the closed-loan count is reported to the caller.
func (r *accountRepository) Delete(ctx context.Context, id int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, `
	update transactions set returned_at = now()
	where user_id = $1 and returned_at is null`, id)
	if err != nil {
		return 0, err
	}
	closed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	del, args, err := qb.Delete(usersTableName).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return 0, err
	}
	res, err = tx.ExecContext(ctx, del, args...)
	if err != nil {
		return 0, err
	}
	if err := requireRow(res); err != nil {
		return 0, err
	}
	return int(closed), tx.Commit()
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
