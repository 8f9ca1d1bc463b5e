package book

import (
	"context"
)

type Repository interface {
	Save(ctx context.Context, b *Book) error

	FindByID(ctx context.Context, bookID int64) (*Book, error)

	FindAll(ctx context.Context) ([]*Book, error)

	UpdateDetails(ctx context.Context, bookID int64, title, author string) error

	Delete(ctx context.Context, bookID int64) error
}
