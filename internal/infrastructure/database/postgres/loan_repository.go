package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"lending-engine/internal/domain/lending"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
)

type LoanRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ lending.Repository = (*LoanRepository)(nil)

func NewLoanRepository(db DBPool, logger *slog.Logger) *LoanRepository {
	if db == nil {
		panic("DBPool cannot be nil for LoanRepository")
	}
	return &LoanRepository{db: db, logger: logger.With("component", "LoanRepository")}
}

func (r *LoanRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to begin transaction", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return tx, nil
}

func (r *LoanRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Commit(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to commit transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		r.logger.ErrorContext(ctx, "Failed to rollback transaction", "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return nil
}

func (r *LoanRepository) GetBookCopiesForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (int, error) {
	query := `
        SELECT copies
        FROM books
        WHERE id = $1
        FOR UPDATE`

	var copies int
	err := tx.QueryRow(ctx, query, bookID).Scan(&copies)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Book not found for update", "book_id", bookID)
			return 0, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to lock book row", "book_id", bookID, "error", err)
		return 0, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return copies, nil
}

func (r *LoanRepository) DecrementBookCopiesInTx(ctx context.Context, tx pgx.Tx, bookID int64) error {
	sql := `UPDATE books SET copies = copies - 1, updated_at = NOW() WHERE id = $1 AND copies > 0`

	cmdTag, err := tx.Exec(ctx, sql, bookID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to decrement book copies", "book_id", bookID, "error", err)
		return translateDBError(err, r.logger)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Decrement affected zero rows, no copies left", "book_id", bookID)
		return apperrors.ErrExhausted
	}
	return nil
}

func (r *LoanRepository) IncrementBookCopiesInTx(ctx context.Context, tx pgx.Tx, bookID int64) error {
	sql := `UPDATE books SET copies = copies + 1, updated_at = NOW() WHERE id = $1`

	cmdTag, err := tx.Exec(ctx, sql, bookID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to increment book copies", "book_id", bookID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() != 1 {
		r.logger.ErrorContext(ctx, "Increment affected zero rows, book missing", "book_id", bookID)
		return fmt.Errorf("%w: book %d missing while returning loan", apperrors.ErrDatabase, bookID)
	}
	return nil
}

func (r *LoanRepository) InsertLoanInTx(ctx context.Context, tx pgx.Tx, bookID, memberID int64, loanDate time.Time) (*lending.Loan, error) {
	loanSQL := `
        INSERT INTO loans (book_id, member_id, loan_date, return_date, created_at, updated_at)
        VALUES ($1, $2, $3, NULL, NOW(), NOW())
        RETURNING id, book_id, member_id, loan_date, return_date, created_at, updated_at`

	var l lending.Loan
	err := tx.QueryRow(ctx, loanSQL, bookID, memberID, loanDate).Scan(
		&l.ID, &l.BookID, &l.MemberID, &l.LoanDate, &l.ReturnDate,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrReferentialConstraint) {
			r.logger.WarnContext(ctx, "Loan insert rejected by foreign key", "book_id", bookID, "member_id", memberID)
			return nil, translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert loan", "book_id", bookID, "member_id", memberID, "error", err)
		return nil, fmt.Errorf("%w: failed to insert loan: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Loan created in DB", "loan_id", l.ID)
	return &l, nil
}

func (r *LoanRepository) GetLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*lending.Loan, error) {
	query := `
        SELECT id, book_id, member_id, loan_date, return_date, created_at, updated_at
        FROM loans
        WHERE id = $1
        FOR UPDATE`

	var l lending.Loan
	err := tx.QueryRow(ctx, query, loanID).Scan(
		&l.ID, &l.BookID, &l.MemberID, &l.LoanDate, &l.ReturnDate,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found for update", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to lock loan row", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &l, nil
}

func (r *LoanRepository) MarkLoanReturnedInTx(ctx context.Context, tx pgx.Tx, loanID int64, returnDate time.Time) error {
	sql := `
        UPDATE loans
        SET return_date = $1, updated_at = NOW()
        WHERE id = $2 AND return_date IS NULL`

	cmdTag, err := tx.Exec(ctx, sql, returnDate, loanID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to mark loan returned", "loan_id", loanID, "error", err)
		return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Mark returned affected zero rows, loan already closed", "loan_id", loanID)
		return apperrors.ErrAlreadyReturned
	}
	return nil
}

func (r *LoanRepository) GetLoanByID(ctx context.Context, loanID int64) (*lending.Loan, error) {
	query := `
        SELECT id, book_id, member_id, loan_date, return_date, created_at, updated_at
        FROM loans
        WHERE id = $1`

	status := "success"
	startTime := time.Now()

	var l lending.Loan
	err := r.db.QueryRow(ctx, query, loanID).Scan(
		&l.ID, &l.BookID, &l.MemberID, &l.LoanDate, &l.ReturnDate,
		&l.CreatedAt, &l.UpdatedAt,
	)

	if err != nil {
		status = "error"
	}
	monitoring.RecordDBQuery("GetLoanByID", status, time.Since(startTime))

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Loan not found", "loan_id", loanID)
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to get loan by ID", "loan_id", loanID, "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	return &l, nil
}

func (r *LoanRepository) FindAllViews(ctx context.Context) ([]*lending.LoanView, error) {
	query := `
        SELECT l.id, b.id AS book_id, b.title, m.id AS member_id, m.name, l.loan_date, l.return_date
        FROM loans l
        JOIN books b ON l.book_id = b.id
        JOIN members m ON l.member_id = m.id
        ORDER BY l.id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query loan views", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	views := make([]*lending.LoanView, 0)
	for rows.Next() {
		var v lending.LoanView
		err := rows.Scan(
			&v.LoanID, &v.BookID, &v.BookTitle, &v.MemberID, &v.MemberName,
			&v.LoanDate, &v.ReturnDate,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan loan view row", "error", err)
			return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
		}
		views = append(views, &v)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating loan view rows", "error", err)
		return nil, fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
	}

	return views, nil
}
