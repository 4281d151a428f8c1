package errs

import (
	"errors"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyBorrowed    = errors.New("book is already borrowed")
	ErrAccountBlocked     = errors.New("account is blocked")
	ErrNotReturnable      = errors.New("book cannot be returned by this account")
	ErrValidation         = errors.New("invalid input")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrNotAllowed         = errors.New("operation is not allowed")
)
