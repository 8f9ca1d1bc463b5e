package book

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lending-engine/internal/pkg/apperrors"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

func TestAddBook(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()

	mockRepo.On("Save", ctx, mock.AnythingOfType("*book.Book")).Run(func(args mock.Arguments) {
		args.Get(1).(*Book).ID = 1
	}).Return(nil)

	result, err := service.AddBook(ctx, "The Go Programming Language", "Donovan", 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.ID)
	assert.Equal(t, "The Go Programming Language", result.Title)
	assert.Equal(t, 3, result.Copies)
	mockRepo.AssertExpectations(t)
}

func TestAddBookValidation(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()

	testCases := []struct {
		name   string
		title  string
		author string
		copies int
		errIs  error
	}{
		{"empty title", "", "Donovan", 3, apperrors.ErrValidation},
		{"empty author", "The Go Programming Language", "   ", 3, apperrors.ErrValidation},
		{"negative copies", "The Go Programming Language", "Donovan", -1, apperrors.ErrInvalidArgument},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AddBook(ctx, tc.title, tc.author, tc.copies)
			assert.ErrorIs(t, err, tc.errIs)
		})
	}

	mockRepo.AssertNotCalled(t, "Save", ctx, mock.Anything)
}

func TestGetBook(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()
	expected := &Book{ID: 1, Title: "The Go Programming Language", Author: "Donovan", Copies: 3}

	mockRepo.On("FindByID", ctx, int64(1)).Return(expected, nil)

	result, err := service.GetBook(ctx, 1)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestGetBookNotFound(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()

	mockRepo.On("FindByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound)

	_, err := service.GetBook(ctx, 99)

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertExpectations(t)
}

func TestListBooks(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()
	expected := []*Book{{ID: 1}, {ID: 2}}

	mockRepo.On("FindAll", ctx).Return(expected, nil)

	result, err := service.ListBooks(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, result)
	mockRepo.AssertExpectations(t)
}

func TestUpdateBookDetails(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()

	mockRepo.On("UpdateDetails", ctx, int64(1), "New Title", "New Author").Return(nil)

	err := service.UpdateBookDetails(ctx, 1, " New Title ", "New Author")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdateBookDetailsEmptyTitle(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()

	err := service.UpdateBookDetails(ctx, 1, "  ", "New Author")

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	mockRepo.AssertNotCalled(t, "UpdateDetails", ctx, int64(1), mock.Anything, mock.Anything)
}

func TestDeleteBook(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(nil)

	err := service.DeleteBook(ctx, 1)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestDeleteBookWithLoanRecords(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()

	mockRepo.On("Delete", ctx, int64(1)).Return(apperrors.ErrReferentialConstraint)

	err := service.DeleteBook(ctx, 1)

	assert.ErrorIs(t, err, apperrors.ErrReferentialConstraint)
	mockRepo.AssertExpectations(t)
}

func TestDeleteBookRepositoryError(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewCatalogService(mockRepo, logger)

	ctx := context.Background()
	dbErr := errors.New("connection reset")

	mockRepo.On("Delete", ctx, int64(1)).Return(dbErr)

	err := service.DeleteBook(ctx, 1)

	assert.ErrorIs(t, err, dbErr)
	mockRepo.AssertExpectations(t)
}
