package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/platform/logging"
	"github.com/jsamuelsen/book-rental/internal/platform/telemetry"
)

// Write use cases run as Validate -> Perform -> Verify -> Archive -> Respond.
// Nothing is persisted until Verify has accepted the performed result, so a
// rejected or failed request never leaves partial state behind.

// ExecutionStep represents a step in the transactional pattern.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

func newStepError(step ExecutionStep, message string, cause error) error {
	return &ExecutionError{Step: step, Message: message, Cause: cause}
}

// Executor runs operations using the transactional pattern.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given fallback logger.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the functions for each step of the transactional pattern.
// Nil steps are skipped.
type Operation[I, P, V, O any] struct {
	// Name identifies this operation in logs and spans.
	Name string

	// Validate checks inputs before any lookups.
	Validate func(ctx context.Context, input I) error

	// Perform gathers data and computes the outcome.
	Perform func(ctx context.Context, input I) (P, error)

	// Verify accepts or rejects the performed outcome.
	Verify func(ctx context.Context, input I, performed P) (V, error)

	// Archive persists the verified state.
	Archive func(ctx context.Context, input I, verified V) error

	// Respond shapes the result for the caller.
	Respond func(ctx context.Context, input I, verified V) (O, error)
}

// runStep wraps one step in a span and step-level logging.
func runStep[T any](
	ctx context.Context,
	logger *slog.Logger,
	opName string,
	step ExecutionStep,
	message string,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	ctx, span := telemetry.StartSpan(ctx, opName+"."+string(step),
		attribute.String("operation", opName),
		attribute.String("step", string(step)),
	)

	logger.Log(ctx, logging.LevelTrace, "step started", slog.String("step", string(step)))

	out, err := fn(ctx)

	telemetry.EndSpan(span, err)

	if err != nil {
		logger.Log(ctx, levelFor(err), "step failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
		)

		var zero T

		if step == StepRespond {
			return zero, err
		}

		return zero, newStepError(step, message, err)
	}

	logger.Log(ctx, logging.LevelTrace, "step finished", slog.String("step", string(step)))

	return out, nil
}

// levelFor logs expected business outcomes below error level.
func levelFor(err error) slog.Level {
	switch {
	case domain.IsValidation(err), domain.IsInvalidFormat(err), domain.IsNotFound(err), domain.IsIneligible(err):
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// Execute runs an operation through the full transactional pattern.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	logger, ok := logging.Lookup(ctx)
	if !ok {
		logger = exec.logger
	}

	logger = logger.With(slog.String("operation", op.Name))
	start := time.Now()

	if op.Validate != nil {
		_, err := runStep(ctx, logger, op.Name, StepValidate, "input validation failed",
			func(ctx context.Context) (struct{}, error) { return struct{}{}, op.Validate(ctx, input) })
		if err != nil {
			return zero, err
		}
	}

	var performed P

	if op.Perform != nil {
		var err error

		performed, err = runStep(ctx, logger, op.Name, StepPerform, "operation failed",
			func(ctx context.Context) (P, error) { return op.Perform(ctx, input) })
		if err != nil {
			return zero, err
		}
	}

	var verified V

	if op.Verify != nil {
		var err error

		verified, err = runStep(ctx, logger, op.Name, StepVerify, "verification failed",
			func(ctx context.Context) (V, error) { return op.Verify(ctx, input, performed) })
		if err != nil {
			return zero, err
		}
	}

	if op.Archive != nil {
		_, err := runStep(ctx, logger, op.Name, StepArchive, "state persistence failed",
			func(ctx context.Context) (struct{}, error) { return struct{}{}, op.Archive(ctx, input, verified) })
		if err != nil {
			return zero, err
		}
	}

	result := zero

	if op.Respond != nil {
		var err error

		result, err = runStep(ctx, logger, op.Name, StepRespond, "",
			func(ctx context.Context) (O, error) { return op.Respond(ctx, input, verified) })
		if err != nil {
			return zero, err
		}
	}

	logger.InfoContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
