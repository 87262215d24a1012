// Package context provides request-scoped memoization and staged writes.
//
// # Lazy Memoization
//
// Lookups repeated within one request hit the repository once:
//
//	ctx, rc := context.Ensure(ctx)
//	book, err := context.Fetch(ctx, rc, "book:7", func(ctx context.Context) (*domain.Book, error) {
//	    return books.Get(ctx, 7)
//	})
//
// # Staged Writes
//
// Writes are collected and executed together once every check has passed:
//
//	_ = rc.AddAction(&insertRentalAction{...})
//	if err := rc.Commit(ctx); err != nil {
//	    // executed actions were rolled back
//	}
package context
