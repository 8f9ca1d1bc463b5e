package postgres

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"lending-engine/internal/domain/book"
	"lending-engine/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

const pgxmockExpectationsNotMetMsg = "there were unfulfilled expectations"

func setupBookRepo(t *testing.T) (context.Context, *BookRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mockPool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to open a stub database connection: %v", err)
	}

	ctx := context.Background()
	repo := NewBookRepository(mockPool, logger)

	return ctx, repo, mockPool
}

func TestInsertBookWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	b := &book.Book{Title: "The Go Programming Language", Author: "Donovan", Copies: 3}

	query := `
        INSERT INTO books (title, author, copies, created_at, updated_at)
        VALUES ($1, $2, $3, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(
		b.Title,
		b.Author,
		b.Copies,
	).WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
		AddRow(int64(1), now, now))

	err := repo.Save(ctx, b)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestSaveExistingBookWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	b := &book.Book{ID: 1, Title: "The Go Programming Language", Author: "Donovan", Copies: 3}

	query := `
        UPDATE books
        SET title = $1,
            author = $2,
            copies = $3,
            updated_at = NOW()
        WHERE id = $4`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(
		b.Title,
		b.Author,
		b.Copies,
		b.ID,
	).WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := repo.Save(ctx, b)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindBookByIDWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, title, author, copies, created_at, updated_at
        FROM books
        WHERE id = $1`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author", "copies", "created_at", "updated_at"}).
			AddRow(int64(1), "The Go Programming Language", "Donovan", 3, now, now))

	b, err := repo.FindByID(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), b.ID)
	assert.Equal(t, 3, b.Copies)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindBookByIDWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, title, author, copies, created_at, updated_at
        FROM books
        WHERE id = $1`

	mockPool.ExpectQuery(regexp.QuoteMeta(query)).WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestFindAllBooks(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	query := `
        SELECT id, title, author, copies, created_at, updated_at
        FROM books
        ORDER BY id ASC`

	now := time.Now()
	mockPool.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "author", "copies", "created_at", "updated_at"}).
			AddRow(int64(1), "The Go Programming Language", "Donovan", 3, now, now).
			AddRow(int64(2), "Learning Go", "Bodner", 1, now, now))

	books, err := repo.FindAll(ctx)
	assert.NoError(t, err)
	assert.Len(t, books, 2)
	assert.Equal(t, int64(2), books[1].ID)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestUpdateBookDetailsWhenNotFound(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	query := `UPDATE books SET title = $1, author = $2, updated_at = NOW() WHERE id = $3`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs("New Title", "New Author", int64(99)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := repo.UpdateDetails(ctx, 99, "New Title", "New Author")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteBookWhenBlockedByLoans(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	query := `DELETE FROM books WHERE id = $1`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnError(&pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "loans_book_id_fkey"})

	err := repo.Delete(ctx, 1)
	assert.ErrorIs(t, err, apperrors.ErrReferentialConstraint)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}

func TestDeleteBookWhenSuccess(t *testing.T) {
	ctx, repo, mockPool := setupBookRepo(t)
	defer mockPool.Close()

	query := `DELETE FROM books WHERE id = $1`

	mockPool.ExpectExec(regexp.QuoteMeta(query)).WithArgs(int64(1)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err := repo.Delete(ctx, 1)
	assert.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet(), pgxmockExpectationsNotMetMsg)
}
