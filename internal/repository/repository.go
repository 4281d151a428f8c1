package repository

import (
	sq "github.com/Masterminds/squirrel"
)

//go:generate go run github.com/golang/mock/mockgen -source=account.go -destination=mocks/account.go
//go:generate go run github.com/golang/mock/mockgen -source=book.go -destination=mocks/book.go
//go:generate go run github.com/golang/mock/mockgen -source=ledger.go -destination=mocks/ledger.go

const (
	usersTableName        = `users`
	booksTableName        = `books`
	transactionsTableName = `transactions`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
