package query

import (
	"context"
	"fmt"
	"log/slog"

	"lending-engine/internal/domain/book"
	"lending-engine/internal/domain/lending"
	"lending-engine/internal/domain/member"
)

// Service is the read side: listing projections for presentation, always
// reading the latest committed state. It holds no state and enforces no
// invariants.
type Service interface {
	ListBooks(ctx context.Context) ([]*book.Book, error)
	ListMembers(ctx context.Context) ([]*member.Member, error)
	ListLoans(ctx context.Context) ([]*lending.LoanView, error)
}

var _ Service = (*queryService)(nil)

type queryService struct {
	books   book.Repository
	members member.Repository
	loans   lending.Repository
	logger  *slog.Logger
}

func NewService(books book.Repository, members member.Repository, loans lending.Repository, logger *slog.Logger) Service {
	if books == nil || members == nil || loans == nil {
		panic("query service repositories cannot be nil")
	}
	return &queryService{
		books:   books,
		members: members,
		loans:   loans,
		logger:  logger.With(slog.String("component", "queryService")),
	}
}

func (s *queryService) ListBooks(ctx context.Context) ([]*book.Book, error) {
	books, err := s.books.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list books", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	return books, nil
}

func (s *queryService) ListMembers(ctx context.Context) ([]*member.Member, error) {
	members, err := s.members.FindAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list members", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	return members, nil
}

func (s *queryService) ListLoans(ctx context.Context) ([]*lending.LoanView, error) {
	views, err := s.loans.FindAllViews(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list loans", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return views, nil
}
