package model

import (
	"database/sql"
	"time"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleMember || r == RoleAdmin
}

type Account struct {
	ID        int            `json:"id" db:"id"`
	Username  string         `json:"username" db:"username"`
	Password  string         `json:"-" db:"password"`
	Role      Role           `json:"role" db:"role"`
	Name      sql.NullString `json:"name" db:"name"`
	Surname   sql.NullString `json:"surname" db:"surname"`
	Activated bool           `json:"activated" db:"activated"`
	Blocked   bool           `json:"blocked" db:"blocked"`
}

type Book struct {
	ID     int           `json:"id" db:"id"`
	Title  string        `json:"title" db:"title"`
	Author string        `json:"author" db:"author"`
	Year   int           `json:"year" db:"year"`
	Holder sql.NullInt32 `json:"holder" db:"user_id"`
}

// Available reports whether the book has no current holder.
func (b Book) Available() bool {
	return !b.Holder.Valid
}

type LedgerEntry struct {
	ID         int          `json:"-" db:"id"`
	EntryUid   string       `json:"entryUid" db:"entry_uid"`
	BookID     int          `json:"bookId" db:"book_id"`
	AccountID  int          `json:"accountId" db:"user_id"`
	BorrowedAt time.Time    `json:"borrowedAt" db:"borrowed_at"`
	ReturnedAt sql.NullTime `json:"returnedAt" db:"returned_at"`
}

// Open reports whether the loan has not been returned yet.
func (e LedgerEntry) Open() bool {
	return !e.ReturnedAt.Valid
}

// AccountUpdate is a partial update: nil fields are left unchanged.
type AccountUpdate struct {
	Username *string
	Name     *string
	Surname  *string
	Role     *Role
}

// StatusUpdate flips account flags: nil fields are left unchanged.
type StatusUpdate struct {
	Activated *bool
	Blocked   *bool
}

// BookUpdate is a partial update: nil fields are left unchanged.
// Holder carries three states: nil (unchanged), invalid (clear the holder),
// valid (assign the holder).
type BookUpdate struct {
	Title  *string
	Author *string
	Year   *int
	Holder *sql.NullInt32
}

type RegisterRequest struct {
	Username string `validate:"required,min=3,max=64"`
	Password string `validate:"required,min=4"`
	Role     Role   `validate:"required,oneof=member admin"`
}

type AddBookRequest struct {
	Title  string `validate:"required"`
	Author string `validate:"required"`
	Year   int    `validate:"required,gte=0,lte=2100"`
}
