package memory

import (
	"context"
	"slices"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

// RentalStore is an in-memory ports.RentalRepository.
type RentalStore struct {
	*store[domain.Rental]
}

var _ ports.RentalRepository = (*RentalStore)(nil)

// NewRentalStore creates an empty rental store.
func NewRentalStore() *RentalStore {
	return &RentalStore{newStore("rental",
		func(r *domain.Rental) int64 { return r.ID },
		func(r *domain.Rental, id int64) { r.ID = id },
		cloneRental,
	)}
}

// Get returns the rental with the given id.
func (s *RentalStore) Get(ctx context.Context, id int64) (*domain.Rental, error) {
	return s.get(ctx, id)
}

// List returns all rentals ordered by id.
func (s *RentalStore) List(ctx context.Context) ([]domain.Rental, error) {
	return s.list(ctx)
}

// Insert stores rental under the next free id.
func (s *RentalStore) Insert(ctx context.Context, rental *domain.Rental) error {
	return s.insert(ctx, rental)
}

// Len returns the number of stored rentals.
func (s *RentalStore) Len() int {
	return s.count()
}

// cloneRental copies the item slice so callers cannot mutate stored rows.
func cloneRental(r domain.Rental) domain.Rental {
	r.Items = slices.Clone(r.Items)
	return r
}
