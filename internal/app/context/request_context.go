package context

import (
	"context"
	"fmt"
	"sync"
)

type ctxKey struct{}

// RequestContext provides request-scoped lazy loading and action collection.
type RequestContext struct {
	cache     sync.Map // memoized lookups keyed by entity and id
	actions   []Action
	mu        sync.Mutex // protects actions and committed
	committed bool
}

// New creates an empty RequestContext.
func New() *RequestContext {
	return &RequestContext{}
}

// FromContext extracts RequestContext, returns nil if not present.
func FromContext(ctx context.Context) *RequestContext {
	if ctx == nil {
		return nil
	}

	if rc, ok := ctx.Value(ctxKey{}).(*RequestContext); ok {
		return rc
	}

	return nil
}

// WithContext stores RequestContext in the context.
func WithContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, ctxKey{}, rc)
}

// Ensure returns the RequestContext carried by ctx, attaching a new one if absent.
func Ensure(ctx context.Context) (context.Context, *RequestContext) {
	if rc := FromContext(ctx); rc != nil {
		return ctx, rc
	}

	rc := New()

	return WithContext(ctx, rc), rc
}

// GetOrFetch returns the cached value for key or runs fetchFn with ctx and caches it.
// Errors are not cached.
func (rc *RequestContext) GetOrFetch(ctx context.Context, key string, fetchFn func(ctx context.Context) (any, error)) (any, error) {
	if cached, ok := rc.cache.Load(key); ok {
		return cached, nil
	}

	value, err := fetchFn(ctx)
	if err != nil {
		return nil, err
	}

	actual, _ := rc.cache.LoadOrStore(key, value)

	return actual, nil
}

// Fetch is the typed form of GetOrFetch.
func Fetch[T any](ctx context.Context, rc *RequestContext, key string, fetchFn func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, err := rc.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetchFn(ctx)
	})
	if err != nil {
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("cached value for %q is %T", key, value)
	}

	return typed, nil
}
