package member

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"lending-engine/internal/pkg/apperrors"
)

type MemberService interface {
	RegisterMember(ctx context.Context, name, email string) (*Member, error)
	GetMember(ctx context.Context, memberID int64) (*Member, error)
	ListMembers(ctx context.Context) ([]*Member, error)
	UpdateMemberEmail(ctx context.Context, memberID int64, email string) error
	DeleteMember(ctx context.Context, memberID int64) error
}

var _ MemberService = (*memberService)(nil)

type memberService struct {
	repo   Repository
	logger *slog.Logger
}

func NewMemberService(repo Repository, logger *slog.Logger) MemberService {
	if repo == nil {
		panic("member repository cannot be nil")
	}
	return &memberService{
		repo:   repo,
		logger: logger.With(slog.String("component", "memberService")),
	}
}

func (s *memberService) RegisterMember(ctx context.Context, name, email string) (*Member, error) {
	s.logger.InfoContext(ctx, "Attempting to register new member")

	m, err := NewMember(name, email)
	if err != nil {
		s.logger.WarnContext(ctx, "Member validation failed", slog.Any("error", err))
		return nil, err
	}

	if err := s.repo.Save(ctx, m); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new member", slog.Any("error", err))
		return nil, fmt.Errorf("failed to save new member: %w", err)
	}

	s.logger.InfoContext(ctx, "Successfully registered new member", slog.Int64("memberID", m.ID))
	return m, nil
}

func (s *memberService) GetMember(ctx context.Context, memberID int64) (*Member, error) {
	m, err := s.repo.FindByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Member not found", slog.Int64("memberID", memberID))
			return nil, fmt.Errorf("%w: member with ID %d not found", apperrors.ErrNotFound, memberID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding member", slog.Int64("memberID", memberID), slog.Any("error", err))
		return nil, fmt.Errorf("failed to get member %d: %w", memberID, err)
	}
	return m, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]*Member, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing members", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *memberService) UpdateMemberEmail(ctx context.Context, memberID int64, email string) error {
	s.logger.InfoContext(ctx, "Attempting to update member email", slog.Int64("memberID", memberID))

	email = strings.TrimSpace(email)
	if email == "" {
		return apperrors.NewValidationError("email", "cannot be empty")
	}

	if err := s.repo.UpdateEmail(ctx, memberID, email); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Member not found for update", slog.Int64("memberID", memberID))
			return fmt.Errorf("%w: member with ID %d not found", apperrors.ErrNotFound, memberID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to update member email", slog.Int64("memberID", memberID), slog.Any("error", err))
		return fmt.Errorf("failed to update member %d: %w", memberID, err)
	}

	s.logger.InfoContext(ctx, "Successfully updated member email", slog.Int64("memberID", memberID))
	return nil
}

func (s *memberService) DeleteMember(ctx context.Context, memberID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete member", slog.Int64("memberID", memberID))

	err := s.repo.Delete(ctx, memberID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Member not found for delete", slog.Int64("memberID", memberID))
			return fmt.Errorf("%w: member with ID %d not found", apperrors.ErrNotFound, memberID)
		}
		if errors.Is(err, apperrors.ErrReferentialConstraint) {
			s.logger.WarnContext(ctx, "Member delete blocked by loan records", slog.Int64("memberID", memberID))
			return fmt.Errorf("%w: member %d has loan records", apperrors.ErrReferentialConstraint, memberID)
		}
		s.logger.ErrorContext(ctx, "Repository failed to delete member", slog.Int64("memberID", memberID), slog.Any("error", err))
		return fmt.Errorf("failed to delete member %d: %w", memberID, err)
	}

	s.logger.InfoContext(ctx, "Successfully deleted member", slog.Int64("memberID", memberID))
	return nil
}
