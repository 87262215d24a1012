package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/platform/logging"
)

func TestExecute_RunsStepsInOrder(t *testing.T) {
	var steps []string

	op := Operation[int, int, int, string]{
		Name: "double",
		Validate: func(context.Context, int) error {
			steps = append(steps, "validate")
			return nil
		},
		Perform: func(_ context.Context, in int) (int, error) {
			steps = append(steps, "perform")
			return in * 2, nil
		},
		Verify: func(_ context.Context, _ int, p int) (int, error) {
			steps = append(steps, "verify")
			return p + 1, nil
		},
		Archive: func(context.Context, int, int) error {
			steps = append(steps, "archive")
			return nil
		},
		Respond: func(_ context.Context, _ int, v int) (string, error) {
			steps = append(steps, "respond")
			if v == 7 {
				return "seven", nil
			}

			return "other", nil
		},
	}

	out, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 3)

	require.NoError(t, err)
	assert.Equal(t, "seven", out)
	assert.Equal(t, []string{"validate", "perform", "verify", "archive", "respond"}, steps)
}

func TestExecute_NilStepsSkipped(t *testing.T) {
	op := Operation[string, string, string, string]{
		Name: "noop",
	}

	out, err := Execute(context.Background(), NewExecutor(nil), op, "in")

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExecute_StopsAtFailingStep(t *testing.T) {
	archived := false
	rejection := domain.EligibilityResult{
		Age:        12,
		Violations: []domain.Violation{{BookTitle: "Dune", AgeRating: 16, UserAge: 12}},
	}.Err()

	op := Operation[int, int, int, int]{
		Name:    "rent",
		Perform: func(context.Context, int) (int, error) { return 1, nil },
		Verify:  func(context.Context, int, int) (int, error) { return 0, rejection },
		Archive: func(context.Context, int, int) error {
			archived = true
			return nil
		},
	}

	_, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 0)

	require.Error(t, err)
	assert.True(t, domain.IsIneligible(err))
	assert.False(t, archived, "archive must not run after a failed verify")

	step, ok := GetExecutionStep(err)
	require.True(t, ok)
	assert.Equal(t, StepVerify, step)
}

func TestExecute_RespondErrorNotWrapped(t *testing.T) {
	boom := errors.New("encode failed")

	op := Operation[int, int, int, int]{
		Name:    "respond",
		Respond: func(context.Context, int, int) (int, error) { return 0, boom },
	}

	_, err := Execute(context.Background(), NewExecutor(discardLogger()), op, 0)

	require.ErrorIs(t, err, boom)

	_, ok := GetExecutionStep(err)
	assert.False(t, ok)
}

func TestExecute_LogLevels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"not found is a warning", domain.NewNotFoundError("book", "9"), "WARN"},
		{"validation is a warning", domain.NewValidationError("items", "must contain at least one book"), "WARN"},
		{"format is a warning", domain.NewFormatError("personal_id_nbr", "each character must be a digit"), "WARN"},
		{"unexpected is an error", errors.New("disk full"), "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: logging.LevelTrace}))
			ctx := logging.WithContext(context.Background(), logger)

			op := Operation[int, int, int, int]{
				Name:     "probe",
				Validate: func(context.Context, int) error { return tt.err },
			}

			_, err := Execute(ctx, NewExecutor(nil), op, 0)
			require.Error(t, err)

			assert.Contains(t, buf.String(), "level="+tt.level+" msg=\"step failed\"")
			assert.Contains(t, buf.String(), "operation=probe")
		})
	}
}

func TestExecutionError(t *testing.T) {
	cause := errors.New("store closed")
	err := &ExecutionError{Step: StepArchive, Message: "state persistence failed", Cause: cause}

	assert.Equal(t, "archive failed: state persistence failed: store closed", err.Error())
	require.ErrorIs(t, err, cause)

	bare := &ExecutionError{Step: StepValidate, Message: "input validation failed"}
	assert.Equal(t, "validate failed: input validation failed", bare.Error())
}
