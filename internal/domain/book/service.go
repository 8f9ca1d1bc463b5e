package book

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lending-engine/internal/pkg/apperrors"
)

type CatalogService interface {
	AddBook(ctx context.Context, title, author string, copies int) (*Book, error)
	GetBook(ctx context.Context, bookID int64) (*Book, error)
	ListBooks(ctx context.Context) ([]*Book, error)
	UpdateBookDetails(ctx context.Context, bookID int64, title, author string) error
	DeleteBook(ctx context.Context, bookID int64) error
}

var _ CatalogService = (*catalogService)(nil)

type catalogService struct {
	repo   Repository
	logger *slog.Logger
}

func NewCatalogService(repo Repository, logger *slog.Logger) CatalogService {
	if repo == nil {
		panic("book repository cannot be nil")
	}
	return &catalogService{
		repo:   repo,
		logger: logger.With(slog.String("component", "catalogService")),
	}
}

func (s *catalogService) AddBook(ctx context.Context, title, author string, copies int) (*Book, error) {
	s.logger.InfoContext(ctx, "Attempting to add new book", slog.String("title", title))

	b, err := NewBook(title, author, copies)
	if err != nil {
		s.logger.WarnContext(ctx, "Book validation failed", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, b); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new book", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new book: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully added new book", slog.Int64("bookID", b.ID))
	return b, nil
}

func (s *catalogService) GetBook(ctx context.Context, bookID int64) (*Book, error) {
	b, err := s.repo.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Book not found", slog.Int64("bookID", bookID))
			return nil, fmt.Errorf("%w: book with ID %d not found", apperrors.ErrNotFound, bookID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding book", slog.Int64("bookID", bookID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get book %d: %w", bookID, err)
	}
	return b, nil
}

func (s *catalogService) ListBooks(ctx context.Context) ([]*Book, error) {
	books, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing books", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *catalogService) UpdateBookDetails(ctx context.Context, bookID int64, title, author string) error {
	s.logger.InfoContext(ctx, "Attempting to update book details", slog.Int64("bookID", bookID))

	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" {
		return apperrors.NewValidationError("title", "cannot be empty")
	}
	if author == "" {
		return apperrors.NewValidationError("author", "cannot be empty")
	}

	if err := s.repo.UpdateDetails(ctx, bookID, title, author); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Book not found for update", slog.Int64("bookID", bookID))
			return fmt.Errorf("%w: book with ID %d not found", apperrors.ErrNotFound, bookID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to update book details", slog.Int64("bookID", bookID), slog.Any("error", err))
		return fmt.Errorf("failed to update book %d: %w", bookID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated book details", slog.Int64("bookID", bookID))
	return nil
}

func (s *catalogService) DeleteBook(ctx context.Context, bookID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete book", slog.Int64("bookID", bookID))

	err := s.repo.Delete(ctx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Book not found for delete", slog.Int64("bookID", bookID))
			return fmt.Errorf("%w: book with ID %d not found", apperrors.ErrNotFound, bookID)
		}
		if errors.Is(err, apperrors.ErrReferentialConstraint) {
			s.logger.WarnContext(ctx, "Book delete blocked by existing loans", slog.Int64("bookID", bookID))
			return fmt.Errorf("%w: book %d has loan records", apperrors.ErrReferentialConstraint, bookID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to delete book", slog.Int64("bookID", bookID), slog.Any("error", err))
		return fmt.Errorf("failed to delete book %d: %w", bookID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted book", slog.Int64("bookID", bookID))
	return nil
}
