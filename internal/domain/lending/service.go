package lending

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lending-engine/internal/event"
	"lending-engine/internal/infrastructure/monitoring"
	"lending-engine/internal/pkg/apperrors"
)

// LendingService is the transaction engine that keeps book copy counts and
// loan records mutually consistent. It is the sole writer of Book.Copies and
// Loan.ReturnDate.
type LendingService interface {
	// Issue lends one copy of the book to the member and returns the new
	// loan's ID. The copy decrement and the loan insert commit together or
	// not at all.
	Issue(ctx context.Context, bookID, memberID int64) (int64, error)

	// Return closes an open loan and gives the copy back to the book. The
	// second Return on the same loan fails with apperrors.ErrAlreadyReturned.
	Return(ctx context.Context, loanID int64) error

	GetLoan(ctx context.Context, loanID int64) (*Loan, error)
}

var _ LendingService = (*lendingService)(nil)

type lendingService struct {
	repo   Repository
	pub    event.Publisher
	logger *slog.Logger
	now    func() time.Time
}

func NewLendingService(repo Repository, pub event.Publisher, logger *slog.Logger) LendingService {
	if repo == nil {
		panic("lending repository cannot be nil")
	}
	if pub == nil {
		pub = event.NewNoopPublisher(logger)
	}
	return &lendingService{
		repo:   repo,
		pub:    pub,
		logger: logger.With(slog.String("component", "lendingService")),
		now:    time.Now,
	}
}

func (s *lendingService) Issue(ctx context.Context, bookID, memberID int64) (loanID int64, err error) {
	s.logger.InfoContext(ctx, "Issuing book", slog.Int64("bookID", bookID), slog.Int64("memberID", memberID))

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return 0, fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}

	defer func() {
		monitoring.RecordIssue(issueOutcome(err))
		if p := recover(); p != nil {
			s.logger.ErrorContext(ctx, "Panic during issue, rolling back", slog.Int64("bookID", bookID), slog.Any("error", p))
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	// Fixed ordering: the book row is checked and decremented before the
	// loan row exists. The row lock holds off concurrent issues of the
	// same book until commit.
	copies, err := s.repo.GetBookCopiesForUpdate(ctx, tx, bookID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Book not found", slog.Int64("bookID", bookID))
			return 0, fmt.Errorf("%w: book with ID %d not found", apperrors.ErrNotFound, bookID)
		}
		s.logger.ErrorContext(ctx, "Failed to lock book row", slog.Int64("bookID", bookID), slog.Any("error", err))
		return 0, fmt.Errorf("%w: could not read book %d: %v", apperrors.ErrInternalServer, bookID, err)
	}

	if copies <= 0 {
		s.logger.WarnContext(ctx, "No copies available", slog.Int64("bookID", bookID))
		return 0, fmt.Errorf("%w: book %d has no copies available", apperrors.ErrExhausted, bookID)
	}

	if err = s.repo.DecrementBookCopiesInTx(ctx, tx, bookID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to decrement copies", slog.Int64("bookID", bookID), slog.Any("error", err))
		if errors.Is(err, apperrors.ErrExhausted) {
			return 0, fmt.Errorf("%w: book %d has no copies available", apperrors.ErrExhausted, bookID)
		}
		return 0, fmt.Errorf("%w: could not decrement copies for book %d: %v", apperrors.ErrInternalServer, bookID, err)
	}

	// Member existence is not pre-checked here; a missing member surfaces
	// from the loans.member_id foreign key when the insert runs.
	loan, err := s.repo.InsertLoanInTx(ctx, tx, bookID, memberID, s.today())
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to insert loan", slog.Int64("bookID", bookID), slog.Int64("memberID", memberID), slog.Any("error", err))
		if errors.Is(err, apperrors.ErrReferentialConstraint) {
			return 0, fmt.Errorf("%w: member %d is not registered", apperrors.ErrReferentialConstraint, memberID)
		}
		return 0, fmt.Errorf("%w: could not insert loan: %v", apperrors.ErrInternalServer, err)
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit issue transaction", slog.Int64("bookID", bookID), slog.Any("error", err))
		return 0, fmt.Errorf("%w: could not commit transaction: %v", apperrors.ErrInternalServer, err)
	}

	s.publishIssued(ctx, loan)
	s.logger.InfoContext(ctx, "Book issued", slog.Int64("loanID", loan.ID), slog.Int64("bookID", bookID), slog.Int64("memberID", memberID))
	return loan.ID, nil
}

func (s *lendingService) Return(ctx context.Context, loanID int64) (err error) {
	s.logger.InfoContext(ctx, "Returning loan", slog.Int64("loanID", loanID))

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", slog.Any("error", err))
		return fmt.Errorf("%w: could not begin transaction: %v", apperrors.ErrInternalServer, err)
	}

	defer func() {
		monitoring.RecordReturn(returnOutcome(err))
		if p := recover(); p != nil {
			s.logger.ErrorContext(ctx, "Panic during return, rolling back", slog.Int64("loanID", loanID), slog.Any("error", p))
			_ = s.repo.RollbackTx(ctx, tx)
			panic(p)
		} else if err != nil {
			_ = s.repo.RollbackTx(ctx, tx)
		}
	}()

	// Fixed ordering: the loan row is checked and closed before the book's
	// copy count moves. The row lock holds off a concurrent return of the
	// same loan until commit.
	loan, err := s.repo.GetLoanForUpdate(ctx, tx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", slog.Int64("loanID", loanID))
			return fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to lock loan row", slog.Int64("loanID", loanID), slog.Any("error", err))
		return fmt.Errorf("%w: could not read loan %d: %v", apperrors.ErrInternalServer, loanID, err)
	}

	if !loan.Open() {
		s.logger.WarnContext(ctx, "Loan already returned", slog.Int64("loanID", loanID))
		return fmt.Errorf("%w: loan %d was already returned on %s", apperrors.ErrAlreadyReturned, loanID, loan.ReturnDate.Format(time.DateOnly))
	}

	returnDate := s.today()
	if err = s.repo.MarkLoanReturnedInTx(ctx, tx, loanID, returnDate); err != nil {
		s.logger.ErrorContext(ctx, "Failed to mark loan returned", slog.Int64("loanID", loanID), slog.Any("error", err))
		if errors.Is(err, apperrors.ErrAlreadyReturned) {
			return fmt.Errorf("%w: loan %d was already returned", apperrors.ErrAlreadyReturned, loanID)
		}
		return fmt.Errorf("%w: could not mark loan %d returned: %v", apperrors.ErrInternalServer, loanID, err)
	}

	if err = s.repo.IncrementBookCopiesInTx(ctx, tx, loan.BookID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to increment copies", slog.Int64("bookID", loan.BookID), slog.Any("error", err))
		return fmt.Errorf("%w: could not increment copies for book %d: %v", apperrors.ErrInternalServer, loan.BookID, err)
	}

	if err = s.repo.CommitTx(ctx, tx); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit return transaction", slog.Int64("loanID", loanID), slog.Any("error", err))
		return fmt.Errorf("%w: could not commit transaction: %v", apperrors.ErrInternalServer, err)
	}

	s.publishReturned(ctx, loan, returnDate)
	s.logger.InfoContext(ctx, "Loan returned", slog.Int64("loanID", loanID), slog.Int64("bookID", loan.BookID))
	return nil
}

func (s *lendingService) GetLoan(ctx context.Context, loanID int64) (*Loan, error) {
	loan, err := s.repo.GetLoanByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Loan not found", slog.Int64("loanID", loanID))
			return nil, fmt.Errorf("%w: loan with ID %d not found", apperrors.ErrNotFound, loanID)
		}
		s.logger.ErrorContext(ctx, "Failed to get loan", slog.Int64("loanID", loanID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get loan %d: %v", apperrors.ErrInternalServer, loanID, err)
	}
	return loan, nil
}

// today returns the clock's calendar day at midnight UTC. Truncating the
// instant instead would shift the date for callers east of UTC.
func (s *lendingService) today() time.Time {
	y, m, d := s.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Notification is best-effort: a publish failure never fails the committed
// operation.
func (s *lendingService) publishIssued(ctx context.Context, loan *Loan) {
	ev := event.LoanIssuedEvent{
		LoanID:    loan.ID,
		BookID:    loan.BookID,
		MemberID:  loan.MemberID,
		LoanDate:  loan.LoanDate,
		Timestamp: s.now(),
	}
	if err := s.pub.PublishLoanIssued(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Loan issued, but failed to publish event", slog.Int64("loanID", loan.ID), slog.Any("error", err))
	}
}

func (s *lendingService) publishReturned(ctx context.Context, loan *Loan, returnDate time.Time) {
	ev := event.LoanReturnedEvent{
		LoanID:     loan.ID,
		BookID:     loan.BookID,
		MemberID:   loan.MemberID,
		ReturnDate: returnDate,
		Timestamp:  s.now(),
	}
	if err := s.pub.PublishLoanReturned(ctx, ev); err != nil {
		s.logger.ErrorContext(ctx, "Loan returned, but failed to publish event", slog.Int64("loanID", loan.ID), slog.Any("error", err))
	}
}

func issueOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrNotFound):
		return "failure_not_found"
	case errors.Is(err, apperrors.ErrExhausted):
		return "failure_exhausted"
	case errors.Is(err, apperrors.ErrReferentialConstraint):
		return "failure_unknown_member"
	default:
		return "failure_internal"
	}
}

func returnOutcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, apperrors.ErrNotFound):
		return "failure_not_found"
	case errors.Is(err, apperrors.ErrAlreadyReturned):
		return "failure_already_returned"
	default:
		return "failure_internal"
	}
}
