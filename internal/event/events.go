package event

import (
	"context"
	"time"
)

// Events emitted after a lending transaction commits. Presentation
// collaborators subscribe and re-query the read side; nothing in here is
// consumed by the engine itself.

type LoanIssuedEvent struct {
	LoanID    int64     `json:"loanId"`
	BookID    int64     `json:"bookId"`
	MemberID  int64     `json:"memberId"`
	LoanDate  time.Time `json:"loanDate"`
	Timestamp time.Time `json:"timestamp"`
}

type LoanReturnedEvent struct {
	LoanID     int64     `json:"loanId"`
	BookID     int64     `json:"bookId"`
	MemberID   int64     `json:"memberId"`
	ReturnDate time.Time `json:"returnDate"`
	Timestamp  time.Time `json:"timestamp"`
}

type Publisher interface {
	PublishLoanIssued(ctx context.Context, event LoanIssuedEvent) error
	PublishLoanReturned(ctx context.Context, event LoanReturnedEvent) error
}
