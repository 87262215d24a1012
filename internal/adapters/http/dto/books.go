package dto

import (
	"github.com/jsamuelsen/book-rental/internal/app"
	"github.com/jsamuelsen/book-rental/internal/domain"
)

// CreateBookRequest is the body of POST /api/v1/books.
type CreateBookRequest struct {
	Title     string `json:"title"      validate:"required,notempty,max=200"`
	Author    string `json:"author"     validate:"max=200"`
	Genre     string `json:"genre"      validate:"max=100"`
	AgeRating int    `json:"age_rating" validate:"gte=0,lte=150"`
}

// ToInput converts the request to the service input.
func (r CreateBookRequest) ToInput() app.CreateBookInput {
	return app.CreateBookInput{
		Title:     r.Title,
		Author:    r.Author,
		Genre:     r.Genre,
		AgeRating: r.AgeRating,
	}
}

// BookResponse is a catalogue entry.
type BookResponse struct {
	BookID    int64  `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Genre     string `json:"genre"`
	AgeRating int    `json:"age_rating"`
}

// NewBookResponse converts a domain book.
func NewBookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		BookID:    b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Genre:     b.Genre,
		AgeRating: b.AgeRating,
	}
}

// NewBookListResponse converts a list of books.
func NewBookListResponse(books []domain.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = NewBookResponse(&books[i])
	}

	return out
}
