package service_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tmurzenkov/circulation-service/internal/errs"
	"github.com/tmurzenkov/circulation-service/internal/model"
	repo_mocks "github.com/tmurzenkov/circulation-service/internal/repository/mocks"
	"github.com/tmurzenkov/circulation-service/internal/service"
)

func TestCatalog_AddBook(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *repo_mocks.MockBookRepository)

	var tests = []struct {
		name         string
		title        string
		author       string
		year         int
		mockBehavior mockBehavior
		wantErr      error
	}{
		{
			name:   "ok",
			title:  "1984",
			author: "George Orwell",
			year:   1949,
			mockBehavior: func(r *repo_mocks.MockBookRepository) {
				r.EXPECT().
					Create(context.Background(), "1984", "George Orwell", 1949).
					Return(model.Book{ID: 1, Title: "1984", Author: "George Orwell", Year: 1949}, nil)
			},
		},
		{
			name:         "missing title",
			title:        "",
			author:       "George Orwell",
			year:         1949,
			mockBehavior: func(r *repo_mocks.MockBookRepository) {},
			wantErr:      errs.ErrValidation,
		},
		{
			name:         "year out of range",
			title:        "1984",
			author:       "George Orwell",
			year:         99999,
			mockBehavior: func(r *repo_mocks.MockBookRepository) {},
			wantErr:      errs.ErrValidation,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			books := repo_mocks.NewMockBookRepository(c)
			ledger := repo_mocks.NewMockLedgerRepository(c)
			tt.mockBehavior(books)

			s := service.NewCatalog(books, ledger, zap.NewExample().Named("test"))
			book, err := s.AddBook(context.Background(), tt.title, tt.author, tt.year)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 1, book.ID)
			require.True(t, book.Available())
		})
	}
}

func TestCatalog_EditBook_PlainFields(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	books := repo_mocks.NewMockBookRepository(c)
	ledger := repo_mocks.NewMockLedgerRepository(c)

	title := "Animal Farm"
	upd := model.BookUpdate{Title: &title}
	books.EXPECT().Update(context.Background(), 1, upd).Return(nil)

	s := service.NewCatalog(books, ledger, zap.NewExample().Named("test"))
	require.NoError(t, s.EditBook(context.Background(), 1, upd))
}

// The holder override must rewrite the ledger too, never just the pointer.
func TestCatalog_EditBook_HolderOverride(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	books := repo_mocks.NewMockBookRepository(c)
	ledger := repo_mocks.NewMockLedgerRepository(c)

	holder := sql.NullInt32{Int32: 7, Valid: true}
	books.EXPECT().Update(context.Background(), 1, model.BookUpdate{}).Return(nil)
	ledger.EXPECT().OverrideHolder(context.Background(), 1, holder).Return(nil)

	s := service.NewCatalog(books, ledger, zap.NewExample().Named("test"))
	require.NoError(t, s.EditBook(context.Background(), 1, model.BookUpdate{Holder: &holder}))
}

func TestCatalog_EditBook_NotFound(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	books := repo_mocks.NewMockBookRepository(c)
	ledger := repo_mocks.NewMockLedgerRepository(c)

	title := "whatever"
	upd := model.BookUpdate{Title: &title}
	books.EXPECT().Update(context.Background(), 404, upd).Return(errs.ErrNotFound)

	s := service.NewCatalog(books, ledger, zap.NewExample().Named("test"))
	require.ErrorIs(t, s.EditBook(context.Background(), 404, upd), errs.ErrNotFound)
}

func TestCatalog_Search(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	books := repo_mocks.NewMockBookRepository(c)
	ledger := repo_mocks.NewMockLedgerRepository(c)

	books.EXPECT().Search(context.Background(), "orwell").
		Return([]model.Book{{ID: 1, Title: "1984", Author: "George Orwell", Year: 1949}}, nil)

	s := service.NewCatalog(books, ledger, zap.NewExample().Named("test"))
	found, err := s.Search(context.Background(), "orwell")
	require.NoError(t, err)
	require.Len(t, found, 1)
}
