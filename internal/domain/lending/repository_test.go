package lending

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (_m *MockRepository) GetBookCopiesForUpdate(ctx context.Context, tx pgx.Tx, bookID int64) (int, error) {
	ret := _m.Called(ctx, tx, bookID)

	var r0 int
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, int64) int); ok {
		r0 = rf(ctx, tx, bookID)
	} else {
		r0 = ret.Get(0).(int)
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, pgx.Tx, int64) error); ok {
		r1 = rf(ctx, tx, bookID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) DecrementBookCopiesInTx(ctx context.Context, tx pgx.Tx, bookID int64) error {
	ret := _m.Called(ctx, tx, bookID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, int64) error); ok {
		r0 = rf(ctx, tx, bookID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) IncrementBookCopiesInTx(ctx context.Context, tx pgx.Tx, bookID int64) error {
	ret := _m.Called(ctx, tx, bookID)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, int64) error); ok {
		r0 = rf(ctx, tx, bookID)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) InsertLoanInTx(ctx context.Context, tx pgx.Tx, bookID int64, memberID int64, loanDate time.Time) (*Loan, error) {
	ret := _m.Called(ctx, tx, bookID, memberID, loanDate)

	var r0 *Loan
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, int64, int64, time.Time) *Loan); ok {
		r0 = rf(ctx, tx, bookID, memberID, loanDate)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Loan)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, pgx.Tx, int64, int64, time.Time) error); ok {
		r1 = rf(ctx, tx, bookID, memberID, loanDate)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) GetLoanForUpdate(ctx context.Context, tx pgx.Tx, loanID int64) (*Loan, error) {
	ret := _m.Called(ctx, tx, loanID)

	var r0 *Loan
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, int64) *Loan); ok {
		r0 = rf(ctx, tx, loanID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Loan)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, pgx.Tx, int64) error); ok {
		r1 = rf(ctx, tx, loanID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) MarkLoanReturnedInTx(ctx context.Context, tx pgx.Tx, loanID int64, returnDate time.Time) error {
	ret := _m.Called(ctx, tx, loanID, returnDate)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx, int64, time.Time) error); ok {
		r0 = rf(ctx, tx, loanID, returnDate)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) GetLoanByID(ctx context.Context, loanID int64) (*Loan, error) {
	ret := _m.Called(ctx, loanID)

	var r0 *Loan
	if rf, ok := ret.Get(0).(func(context.Context, int64) *Loan); ok {
		r0 = rf(ctx, loanID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*Loan)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, loanID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) FindAllViews(ctx context.Context) ([]*LoanView, error) {
	ret := _m.Called(ctx)

	var r0 []*LoanView
	if rf, ok := ret.Get(0).(func(context.Context) []*LoanView); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).([]*LoanView)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	ret := _m.Called(ctx)

	var r0 pgx.Tx
	if rf, ok := ret.Get(0).(func(context.Context) pgx.Tx); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(pgx.Tx)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

func (_m *MockRepository) CommitTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx) error); ok {
		r0 = rf(ctx, tx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

func (_m *MockRepository) RollbackTx(ctx context.Context, tx pgx.Tx) error {
	ret := _m.Called(ctx, tx)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, pgx.Tx) error); ok {
		r0 = rf(ctx, tx)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}
