package cli

import (
	"context"

	"github.com/tmurzenkov/circulation-service/internal/model"
	"github.com/tmurzenkov/circulation-service/internal/service"
)

type RegistryService interface {
	Register(ctx context.Context, username, password string, role model.Role) (model.Account, error)
	Authenticate(ctx context.Context, username, password string) (model.Account, error)
	Get(ctx context.Context, id int) (model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	SetStatus(ctx context.Context, id int, upd model.StatusUpdate) error
	EditProfile(ctx context.Context, id int, upd model.AccountUpdate) error
	ChangeCredential(ctx context.Context, id int, newPassword string) error
	Delete(ctx context.Context, id int) (int, error)
}

type CatalogService interface {
	AddBook(ctx context.Context, title, author string, year int) (model.Book, error)
	EditBook(ctx context.Context, id int, upd model.BookUpdate) error
	DeleteBook(ctx context.Context, id int) error
	GetBook(ctx context.Context, id int) (model.Book, error)
	ListAvailable(ctx context.Context) ([]model.Book, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	ListBorrowedBy(ctx context.Context, accountID int) ([]model.Book, error)
	Search(ctx context.Context, term string) ([]model.Book, error)
}

type LendingService interface {
	Borrow(ctx context.Context, account model.Account, bookID int) error
	Return(ctx context.Context, account model.Account, bookID int) error
	CountOpenFor(ctx context.Context, accountID int) (int, error)
	HistoryFor(ctx context.Context, accountID int) ([]model.LedgerEntry, error)
}

type AccessService interface {
	Authorize(account model.Account, capability service.Capability) error
}

var (
	_ RegistryService = (*service.Registry)(nil)
	_ CatalogService  = (*service.Catalog)(nil)
	_ LendingService  = (*service.Lending)(nil)
	_ AccessService   = (*service.AccessGate)(nil)
)
