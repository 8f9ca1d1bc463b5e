package lending

import (
	"time"
)

// Loan records a single borrowing of one book copy by one member. A loan with
// a nil ReturnDate is open; once ReturnDate is set it never changes again.
type Loan struct {
	ID         int64
	BookID     int64
	MemberID   int64
	LoanDate   time.Time
	ReturnDate *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (l *Loan) Open() bool {
	return l.ReturnDate == nil
}

// LoanView is the read-side projection of a loan joined with the book title
// and member name, for presentation.
type LoanView struct {
	LoanID     int64
	BookID     int64
	BookTitle  string
	MemberID   int64
	MemberName string
	LoanDate   time.Time
	ReturnDate *time.Time
}
