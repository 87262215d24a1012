package memory

import (
	"context"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

// UserStore is an in-memory ports.UserRepository.
type UserStore struct {
	*store[domain.User]
}

var _ ports.UserRepository = (*UserStore)(nil)

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{newStore("user",
		func(u *domain.User) int64 { return u.ID },
		func(u *domain.User, id int64) { u.ID = id },
		nil,
	)}
}

// Get returns the user with the given id.
func (s *UserStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.get(ctx, id)
}

// List returns all users ordered by id.
func (s *UserStore) List(ctx context.Context) ([]domain.User, error) {
	return s.list(ctx)
}

// Insert stores user under the next free id.
func (s *UserStore) Insert(ctx context.Context, user *domain.User) error {
	return s.insert(ctx, user)
}

// Len returns the number of stored users.
func (s *UserStore) Len() int {
	return s.count()
}
