package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

// BookService orchestrates catalogue use cases.
type BookService struct {
	books  ports.BookRepository
	logger *slog.Logger
}

// BookServiceConfig contains the dependencies of the book service.
type BookServiceConfig struct {
	Books  ports.BookRepository
	Logger *slog.Logger
}

// NewBookService creates a new book service with the provided dependencies.
func NewBookService(cfg BookServiceConfig) *BookService {
	if cfg.Books == nil {
		panic("app: BookService requires a BookRepository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &BookService{books: cfg.Books, logger: logger}
}

// CreateBookInput holds the fields of a new catalogue entry.
type CreateBookInput struct {
	Title     string
	Author    string
	Genre     string
	AgeRating int
}

// CreateBook validates and stores a new book.
func (s *BookService) CreateBook(ctx context.Context, input CreateBookInput) (*domain.Book, error) {
	book := &domain.Book{
		Title:     input.Title,
		Author:    input.Author,
		Genre:     input.Genre,
		AgeRating: input.AgeRating,
	}

	if err := book.Validate(); err != nil {
		return nil, err
	}

	if err := s.books.Insert(ctx, book); err != nil {
		s.logger.ErrorContext(ctx, "failed to store book", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "book created",
		slog.Int64("book_id", book.ID),
		slog.String("title", book.Title),
		slog.Int("age_rating", book.AgeRating),
	)

	return book, nil
}

// GetBook returns the book with the given id.
func (s *BookService) GetBook(ctx context.Context, id int64) (*domain.Book, error) {
	if id <= 0 {
		return nil, domain.NewValidationErrorWithValue("book_id", "must be positive", id)
	}

	return s.books.Get(ctx, id)
}

// ListBooks returns the whole catalogue ordered by id.
func (s *BookService) ListBooks(ctx context.Context) ([]domain.Book, error) {
	return s.books.List(ctx)
}
