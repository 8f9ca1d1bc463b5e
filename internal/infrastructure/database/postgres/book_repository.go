package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"lending-engine/internal/domain/book"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
)

type BookRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ book.Repository = (*BookRepository)(nil)

func NewBookRepository(db DBPool, logger *slog.Logger) *BookRepository {
	if db == nil {
		panic("DBPool cannot be nil for BookRepository")
	}
	return &BookRepository{
		db:     db,
		logger: logger.With("component", "BookRepository"),
	}
}

func (r *BookRepository) Save(ctx context.Context, b *book.Book) error {
	if b == nil {
		return fmt.Errorf("%w: book cannot be nil", apperrors.ErrInvalidArgument)
	}

	if b.ID == 0 {
		return r.insertBook(ctx, b)
	}
	return r.updateBook(ctx, b)
}

func (r *BookRepository) insertBook(ctx context.Context, b *book.Book) error {
	r.logger.InfoContext(ctx, "Attempting to insert new book", slog.String("title", b.Title))

	query := `
        INSERT INTO books (title, author, copies, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		b.Title,
		b.Author,
		b.Copies,
	).Scan(
		&b.ID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert book", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert book: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Book inserted successfully", slog.Int64("bookID", b.ID))
	return nil
}

func (r *BookRepository) updateBook(ctx context.Context, b *book.Book) error {
	r.logger.InfoContext(ctx, "Attempting to update book", slog.Int64("bookID", b.ID))

	query := `
        UPDATE books
        SET title = $1,
            author = $2,
            copies = $3,
            updated_at = NOW()
        WHERE id = $4`

	cmdTag, err := r.db.Exec(ctx, query, b.Title, b.Author, b.Copies, b.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update book", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update book: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, book likely not found", slog.Int64("bookID", b.ID))
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Book updated successfully", slog.Int64("bookID", b.ID))
	return nil
}

func (r *BookRepository) FindByID(ctx context.Context, bookID int64) (*book.Book, error) {
	query := `
        SELECT id, title, author, copies, created_at, updated_at
        FROM books
        WHERE id = $1`

	status := "success"
	startTime := time.Now()

	var b book.Book
	err := r.db.QueryRow(ctx, query, bookID).Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Copies,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("FindBookByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Book not found", slog.Int64("bookID", bookID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan book by ID", slog.Int64("bookID", bookID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get book by ID: %w", apperrors.ErrDatabase, err)
	}

	return &b, nil
}

func (r *BookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	query := `
        SELECT id, title, author, copies, created_at, updated_at
        FROM books
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query books", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query books: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	books := make([]*book.Book, 0)
	for rows.Next() {
		var b book.Book
		err := rows.Scan(
			&b.ID,
			&b.Title,
			&b.Author,
			&b.Copies,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan book row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan book row: %w", apperrors.ErrDatabase, err)
		}
		books = append(books, &b)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating book rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating book rows: %w", apperrors.ErrDatabase, err)
	}

	return books, nil
}

func (r *BookRepository) UpdateDetails(ctx context.Context, bookID int64, title, author string) error {
	r.logger.InfoContext(ctx, "Attempting to update book details", slog.Int64("bookID", bookID))

	query := `UPDATE books SET title = $1, author = $2, updated_at = NOW() WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, title, author, bookID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute update book details", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update book details: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update details affected zero rows, book likely not found", slog.Int64("bookID", bookID))
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Book details updated successfully", slog.Int64("bookID", bookID))
	return nil
}

func (r *BookRepository) Delete(ctx context.Context, bookID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete book", slog.Int64("bookID", bookID))

	query := `DELETE FROM books WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, bookID)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrReferentialConstraint) {
			r.logger.WarnContext(ctx, "Book delete blocked by dependent loans", slog.Int64("bookID", bookID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to execute delete book", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete book: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, book likely not found", slog.Int64("bookID", bookID))
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Book deleted successfully", slog.Int64("bookID", bookID))
	return nil
}
