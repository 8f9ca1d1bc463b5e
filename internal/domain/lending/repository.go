package lending

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
)

type Repository interface {
	// GetBookCopiesForUpdate locks the book row for the duration of the
	// transaction and returns its current copies count.
	GetBookCopiesForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (int, error)

	// DecrementBookCopiesInTx is guarded with copies > 0; zero rows affected
	// is reported as apperrors.ErrExhausted.
	DecrementBookCopiesInTx(ctx context.Context, tx pgx.Tx, bookID int64) error

	IncrementBookCopiesInTx(ctx context.Context, tx pgx.Tx, bookID int64) error

	InsertLoanInTx(ctx context.Context, tx pgx.Tx, bookID, memberID int64, loanDate time.Time) (*Loan, error)

	GetLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error)

	// MarkLoanReturnedInTx is guarded with return_date IS NULL; zero rows
	// affected is reported as apperrors.ErrAlreadyReturned.
	MarkLoanReturnedInTx(ctx context.Context, tx pgx.Tx, loanID int64, returnDate time.Time) error

	GetLoanByID(ctx context.Context, loanID int64) (*Loan, error)

	FindAllViews(ctx context.Context) ([]*LoanView, error)

	BeginTx(ctx context.Context) (pgx.Tx, error)

	CommitTx(ctx context.Context, tx pgx.Tx) error

	RollbackTx(ctx context.Context, tx pgx.Tx) error
}
