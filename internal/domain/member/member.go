package member

import (
	"strings"
	"time"

	"lending-engine/internal/pkg/apperrors"
)

type Member struct {
	ID        int64
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewMember(name, email string) (*Member, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, apperrors.NewValidationError("name", "cannot be empty")
	}
	if email == "" {
		return nil, apperrors.NewValidationError("email", "cannot be empty")
	}

	return &Member{
		Name:  name,
		Email: email,
	}, nil
}
