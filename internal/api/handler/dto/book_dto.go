package dto

import (
	"fmt"
	"strings"
	"time"

	"lending-engine/internal/domain/book"
)

type CreateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	Copies int    `json:"copies"`
}

func (r *CreateBookRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if strings.TrimSpace(r.Author) == "" {
		return fmt.Errorf("author cannot be empty")
	}
	if r.Copies < 0 {
		return fmt.Errorf("copies cannot be negative")
	}
	return nil
}

type UpdateBookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

func (r *UpdateBookRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if strings.TrimSpace(r.Author) == "" {
		return fmt.Errorf("author cannot be empty")
	}
	return nil
}

type BookResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Copies    int       `json:"copies"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewBookResponse(b *book.Book) BookResponse {
	if b == nil {
		return BookResponse{}
	}
	return BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Copies:    b.Copies,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func NewBookListResponse(books []*book.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}
