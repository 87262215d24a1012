package context

import (
	"context"
	"errors"
	"fmt"
)

// Action represents a staged write operation.
type Action interface {
	// Execute performs the action.
	Execute(ctx context.Context) error

	// Rollback undoes the action if possible.
	Rollback(ctx context.Context) error

	// Description returns a human-readable description for logging.
	Description() string
}

// AddAction stages an action for later execution.
func (rc *RequestContext) AddAction(action Action) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	rc.actions = append(rc.actions, action)

	return nil
}

// Commit executes all staged actions in order.
// On failure, executed actions are rolled back in reverse order and any
// rollback errors are joined to the returned error.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}

	for i, action := range rc.actions {
		if err := action.Execute(ctx); err != nil {
			errs := []error{fmt.Errorf("action %q failed: %w", action.Description(), err)}

			for j := i - 1; j >= 0; j-- {
				if rbErr := rc.actions[j].Rollback(ctx); rbErr != nil {
					errs = append(errs, fmt.Errorf("rollback %q: %w", rc.actions[j].Description(), rbErr))
				}
			}

			return errors.Join(errs...)
		}
	}

	rc.committed = true

	return nil
}

// Actions returns a copy of staged actions.
func (rc *RequestContext) Actions() []Action {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	result := make([]Action, len(rc.actions))
	copy(result, rc.actions)

	return result
}
