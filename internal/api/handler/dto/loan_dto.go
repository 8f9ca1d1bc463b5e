package dto

import (
	"fmt"
	"time"

	"lending-engine/internal/domain/lending"
)

type IssueLoanRequest struct {
	BookID   int64 `json:"bookId"`
	MemberID int64 `json:"memberId"`
}

func (r *IssueLoanRequest) Validate() error {
	if r.BookID <= 0 {
		return fmt.Errorf("bookId must be a positive number")
	}
	if r.MemberID <= 0 {
		return fmt.Errorf("memberId must be a positive number")
	}
	return nil
}

type LoanResponse struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"bookId"`
	MemberID   int64   `json:"memberId"`
	LoanDate   string  `json:"loanDate"`
	ReturnDate *string `json:"returnDate,omitempty"`
}

func NewLoanResponse(l *lending.Loan) LoanResponse {
	if l == nil {
		return LoanResponse{}
	}
	return LoanResponse{
		ID:         l.ID,
		BookID:     l.BookID,
		MemberID:   l.MemberID,
		LoanDate:   l.LoanDate.Format(time.DateOnly),
		ReturnDate: formatReturnDate(l.ReturnDate),
	}
}

type LoanViewResponse struct {
	LoanID     int64   `json:"loanId"`
	BookID     int64   `json:"bookId"`
	BookTitle  string  `json:"bookTitle"`
	MemberID   int64   `json:"memberId"`
	MemberName string  `json:"memberName"`
	LoanDate   string  `json:"loanDate"`
	ReturnDate *string `json:"returnDate,omitempty"`
}

func NewLoanViewResponse(v *lending.LoanView) LoanViewResponse {
	if v == nil {
		return LoanViewResponse{}
	}
	return LoanViewResponse{
		LoanID:     v.LoanID,
		BookID:     v.BookID,
		BookTitle:  v.BookTitle,
		MemberID:   v.MemberID,
		MemberName: v.MemberName,
		LoanDate:   v.LoanDate.Format(time.DateOnly),
		ReturnDate: formatReturnDate(v.ReturnDate),
	}
}

func NewLoanViewListResponse(views []*lending.LoanView) []LoanViewResponse {
	out := make([]LoanViewResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewLoanViewResponse(v))
	}
	return out
}

type IssueLoanResponse struct {
	LoanID int64 `json:"loanId"`
}

func formatReturnDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	s := d.Format(time.DateOnly)
	return &s
}
