package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_store.go -package=book

// Store defines the contract for book data storage. Every write is a single
// transaction; a missing id is reported as ErrNotFound.
type Store interface {
	Scan(ctx context.Context, s Scan) ([]Book, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	Insert(ctx context.Context, in Input) (Book, error)
	UpdateByID(ctx context.Context, id int64, in Input) (Book, error)
	DeleteByID(ctx context.Context, id int64) error
}
