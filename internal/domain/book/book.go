package book

import (
	"fmt"
	"strings"
	"time"

	"lending-engine/internal/pkg/apperrors"
)

// Book is a catalog entry. Copies counts the units currently available for
// loan; the lending engine is the only writer of that field after creation.
type Book struct {
	ID        int64
	Title     string
	Author    string
	Copies    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBook(title, author string, copies int) (*Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	if title == "" {
		return nil, apperrors.NewValidationError("title", "cannot be empty")
	}
	if author == "" {
		return nil, apperrors.NewValidationError("author", "cannot be empty")
	}
	if copies < 0 {
		return nil, fmt.Errorf("%w: copies cannot be negative", apperrors.ErrInvalidArgument)
	}

	return &Book{
		Title:  title,
		Author: author,
		Copies: copies,
	}, nil
}
