package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"lending-engine/internal/domain/member"
	"lending-engine/internal/pkg/apperrors"
)

type MemberRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ member.Repository = (*MemberRepository)(nil)

func NewMemberRepository(db DBPool, logger *slog.Logger) *MemberRepository {
	if db == nil {
		panic("DBPool cannot be nil for MemberRepository")
	}
	return &MemberRepository{
		db:     db,
		logger: logger.With("component", "MemberRepository"),
	}
}

func (r *MemberRepository) Save(ctx context.Context, m *member.Member) error {
	if m == nil {
		return fmt.Errorf("%w: member cannot be nil", apperrors.ErrInvalidArgument)
	}

	if m.ID == 0 {
		return r.insertMember(ctx, m)
	}
	return r.updateMember(ctx, m)
}

func (r *MemberRepository) insertMember(ctx context.Context, m *member.Member) error {
	r.logger.InfoContext(ctx, "Attempting to insert new member", slog.String("name", m.Name))

	query := `
        INSERT INTO members (name, email, created_at, updated_at)
        VALUES ($1, $2, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		m.Name,
		m.Email,
	).Scan(
		&m.ID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert member due to unique constraint violation", slog.String("email", m.Email))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert member", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert member: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Member inserted successfully", slog.Int64("memberID", m.ID))
	return nil
}

func (r *MemberRepository) updateMember(ctx context.Context, m *member.Member) error {
	r.logger.InfoContext(ctx, "Attempting to update member", slog.Int64("memberID", m.ID))

	query := `
        UPDATE members
        SET name = $1,
            email = $2,
            updated_at = NOW()
        WHERE id = $3`

	cmdTag, err := r.db.Exec(ctx, query, m.Name, m.Email, m.ID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update member", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update member: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update affected zero rows, member likely not found", slog.Int64("memberID", m.ID))
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Member updated successfully", slog.Int64("memberID", m.ID))
	return nil
}

func (r *MemberRepository) FindByID(ctx context.Context, memberID int64) (*member.Member, error) {
	query := `
        SELECT id, name, email, created_at, updated_at
        FROM members
        WHERE id = $1`

	var m member.Member
	err := r.db.QueryRow(ctx, query, memberID).Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.CreatedAt,
		&m.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Member not found", slog.Int64("memberID", memberID))
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan member by ID", slog.Int64("memberID", memberID), slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get member by ID: %w", apperrors.ErrDatabase, err)
	}

	return &m, nil
}

func (r *MemberRepository) FindAll(ctx context.Context) ([]*member.Member, error) {
	query := `
        SELECT id, name, email, created_at, updated_at
        FROM members
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query members", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query members: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	members := make([]*member.Member, 0)
	for rows.Next() {
		var m member.Member
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Email,
			&m.CreatedAt,
			&m.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan member row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan member row: %w", apperrors.ErrDatabase, err)
		}
		members = append(members, &m)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating member rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating member rows: %w", apperrors.ErrDatabase, err)
	}

	return members, nil
}

func (r *MemberRepository) UpdateEmail(ctx context.Context, memberID int64, email string) error {
	r.logger.InfoContext(ctx, "Attempting to update member email", slog.Int64("memberID", memberID))

	query := `UPDATE members SET email = $1, updated_at = NOW() WHERE id = $2`

	cmdTag, err := r.db.Exec(ctx, query, email, memberID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to execute update member email", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update member email: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Update email affected zero rows, member likely not found", slog.Int64("memberID", memberID))
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Member email updated successfully", slog.Int64("memberID", memberID))
	return nil
}

func (r *MemberRepository) Delete(ctx context.Context, memberID int64) error {
	r.logger.InfoContext(ctx, "Attempting to delete member", slog.Int64("memberID", memberID))

	query := `DELETE FROM members WHERE id = $1`

	cmdTag, err := r.db.Exec(ctx, query, memberID)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrReferentialConstraint) {
			r.logger.WarnContext(ctx, "Member delete blocked by dependent loans", slog.Int64("memberID", memberID))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to execute delete member", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete member: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		r.logger.WarnContext(ctx, "Delete affected zero rows, member likely not found", slog.Int64("memberID", memberID))
		return apperrors.ErrNotFound
	}

	r.logger.InfoContext(ctx, "Member deleted successfully", slog.Int64("memberID", memberID))
	return nil
}
