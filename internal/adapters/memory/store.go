// Package memory provides in-memory implementations of the repository ports.
// Data lives for the lifetime of the process.
package memory

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"sync"

	"github.com/jsamuelsen/book-rental/internal/domain"
)

// store is a generic id-keyed table guarded by a RWMutex.
// Ids are assigned sequentially starting at 1.
type store[T any] struct {
	entity string
	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
	closed bool

	id    func(*T) int64
	setID func(*T, int64)
	clone func(T) T
}

func newStore[T any](entity string, id func(*T) int64, setID func(*T, int64), clone func(T) T) *store[T] {
	if clone == nil {
		clone = func(v T) T { return v }
	}

	return &store[T]{
		entity: entity,
		rows:   make(map[int64]T),
		nextID: 1,
		id:     id,
		setID:  setID,
		clone:  clone,
	}
}

func (s *store[T]) get(ctx context.Context, id int64) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.rows[id]
	if !ok {
		return nil, domain.NewNotFoundError(s.entity, strconv.FormatInt(id, 10))
	}

	out := s.clone(row)

	return &out, nil
}

func (s *store[T]) list(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(s.rows))
	out := make([]T, 0, len(ids))

	for _, id := range ids {
		out = append(out, s.clone(s.rows[id]))
	}

	return out, nil
}

func (s *store[T]) insert(ctx context.Context, row *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.NewUnavailableError(s.entity+" store", "closed")
	}

	if existing := s.id(row); existing != 0 {
		return domain.NewConflictError(s.entity, "already stored with id "+strconv.FormatInt(existing, 10))
	}

	s.setID(row, s.nextID)
	s.rows[s.nextID] = s.clone(*row)
	s.nextID++

	return nil
}

func (s *store[T]) count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.rows)
}

// Name implements ports.HealthChecker.
func (s *store[T]) Name() string {
	return s.entity + "-store"
}

// Check implements ports.HealthChecker. A closed store reports unavailable.
func (s *store[T]) Check(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return domain.NewUnavailableError(s.entity+" store", "closed")
	}

	return nil
}

// Close rejects further inserts and fails readiness. Reads keep working
// so in-flight requests can drain.
func (s *store[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true

	return nil
}
