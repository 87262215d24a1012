// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrConflict, etc.)
package ports

import (
	"context"

	"github.com/jsamuelsen/book-rental/internal/domain"
)

// BookRepository stores the book catalogue.
type BookRepository interface {
	// Get returns the book with the given id.
	// Returns *domain.NotFoundError if it does not exist.
	Get(ctx context.Context, id int64) (*domain.Book, error)

	// List returns every book ordered by id.
	List(ctx context.Context) ([]domain.Book, error)

	// Insert assigns the next id to book and stores it.
	// Returns domain.ErrConflict if the book already carries an id.
	Insert(ctx context.Context, book *domain.Book) error
}

// UserRepository stores registered users.
type UserRepository interface {
	// Get returns the user with the given id.
	// Returns *domain.NotFoundError if it does not exist.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// List returns every user ordered by id.
	List(ctx context.Context) ([]domain.User, error)

	// Insert assigns the next id to user and stores it.
	Insert(ctx context.Context, user *domain.User) error
}

// RentalRepository stores accepted rentals.
type RentalRepository interface {
	// Get returns the rental with the given id.
	// Returns *domain.NotFoundError if it does not exist.
	Get(ctx context.Context, id int64) (*domain.Rental, error)

	// List returns every rental ordered by id.
	List(ctx context.Context) ([]domain.Rental, error)

	// Insert assigns the next id to rental and stores it.
	Insert(ctx context.Context, rental *domain.Rental) error
}
