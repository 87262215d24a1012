package memory

import (
	"context"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

// BookStore is an in-memory ports.BookRepository.
type BookStore struct {
	*store[domain.Book]
}

var _ ports.BookRepository = (*BookStore)(nil)

// NewBookStore creates an empty book store.
func NewBookStore() *BookStore {
	return &BookStore{newStore("book",
		func(b *domain.Book) int64 { return b.ID },
		func(b *domain.Book, id int64) { b.ID = id },
		nil,
	)}
}

// Get returns the book with the given id.
func (s *BookStore) Get(ctx context.Context, id int64) (*domain.Book, error) {
	return s.get(ctx, id)
}

// List returns all books ordered by id.
func (s *BookStore) List(ctx context.Context) ([]domain.Book, error) {
	return s.list(ctx)
}

// Insert stores book under the next free id.
func (s *BookStore) Insert(ctx context.Context, book *domain.Book) error {
	return s.insert(ctx, book)
}

// Len returns the number of stored books.
func (s *BookStore) Len() int {
	return s.count()
}
