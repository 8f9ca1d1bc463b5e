package member

import (
	"context"
)

type Repository interface {
	Save(ctx context.Context, m *Member) error

	FindByID(ctx context.Context, memberID int64) (*Member, error)

	FindAll(ctx context.Context) ([]*Member, error)

	UpdateEmail(ctx context.Context, memberID int64, email string) error

	// Delete fails with apperrors.ErrReferentialConstraint while the member
	// still has loan records referencing it.
	Delete(ctx context.Context, memberID int64) error
}
