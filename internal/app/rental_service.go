package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	appctx "github.com/jsamuelsen/book-rental/internal/app/context"
	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/platform/metrics"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

const (
	// DefaultMaxLines caps the lines of one rental when the config leaves it unset.
	DefaultMaxLines = 20

	// bookLookupLimit bounds concurrent book lookups within one request.
	bookLookupLimit = 8
)

// RentalService checks age eligibility and records accepted rentals.
type RentalService struct {
	users    ports.UserRepository
	books    ports.BookRepository
	rentals  ports.RentalRepository
	executor *Executor
	logger   *slog.Logger
	clock    Clock
	metrics  *metrics.Metrics
	maxLines int
}

// RentalServiceConfig contains the dependencies of the rental service.
type RentalServiceConfig struct {
	Users    ports.UserRepository
	Books    ports.BookRepository
	Rentals  ports.RentalRepository
	Executor *Executor
	Logger   *slog.Logger
	Clock    Clock
	Metrics  *metrics.Metrics
	MaxLines int
}

// NewRentalService creates a new rental service with the provided dependencies.
func NewRentalService(cfg RentalServiceConfig) *RentalService {
	if cfg.Users == nil || cfg.Books == nil || cfg.Rentals == nil {
		panic("app: RentalService requires user, book and rental repositories")
	}

	svc := &RentalService{
		users:    cfg.Users,
		books:    cfg.Books,
		rentals:  cfg.Rentals,
		executor: cfg.Executor,
		logger:   cfg.Logger,
		clock:    cfg.Clock,
		metrics:  cfg.Metrics,
		maxLines: cfg.MaxLines,
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	if svc.executor == nil {
		svc.executor = NewExecutor(svc.logger)
	}

	if svc.clock == nil {
		svc.clock = time.Now
	}

	if svc.maxLines <= 0 {
		svc.maxLines = DefaultMaxLines
	}

	return svc
}

// RentalLineInput is one requested book and its number of copies.
type RentalLineInput struct {
	BookID   int64
	Quantity int
}

// CreateRentalInput is a rental request. A nil RentalDate means today.
type CreateRentalInput struct {
	UserID     int64
	Lines      []RentalLineInput
	RentalDate *time.Time
}

// rentalAssessment carries the resolved request between executor steps.
type rentalAssessment struct {
	user   *domain.User
	lines  []domain.RentalLine
	result domain.EligibilityResult
	rental *domain.Rental
}

// CreateRental resolves the user and books, evaluates age eligibility on
// today's date and stores the rental only when every book is allowed.
// A refusal returns *domain.EligibilityError listing all violations.
func (s *RentalService) CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error) {
	start := time.Now()
	ctx, rc := appctx.Ensure(ctx)

	op := Operation[CreateRentalInput, *rentalAssessment, *rentalAssessment, *domain.Rental]{
		Name:     "create_rental",
		Validate: s.validate,
		Perform: func(ctx context.Context, in CreateRentalInput) (*rentalAssessment, error) {
			return s.assess(ctx, rc, in)
		},
		Verify: s.verify,
		Archive: func(ctx context.Context, in CreateRentalInput, a *rentalAssessment) error {
			return s.archive(ctx, rc, in, a)
		},
		Respond: func(_ context.Context, _ CreateRentalInput, a *rentalAssessment) (*domain.Rental, error) {
			return a.rental, nil
		},
	}

	rental, err := Execute(ctx, s.executor, op, input)

	s.metrics.ObserveCreateLatency(time.Since(start))

	if outcome, ok := decisionOutcome(err); ok {
		s.metrics.IncrementDecision(outcome)
	}

	return rental, err
}

func decisionOutcome(err error) (string, bool) {
	switch {
	case err == nil:
		return metrics.OutcomeAccepted, true
	case domain.IsIneligible(err):
		return metrics.OutcomeRejected, true
	case domain.IsValidation(err), domain.IsInvalidFormat(err), domain.IsNotFound(err):
		return metrics.OutcomeInvalid, true
	default:
		return "", false
	}
}

func (s *RentalService) validate(_ context.Context, in CreateRentalInput) error {
	if in.UserID <= 0 {
		return domain.NewValidationErrorWithValue("user_id", "must be positive", in.UserID)
	}

	if len(in.Lines) == 0 {
		return domain.NewValidationError("items", "must contain at least one book")
	}

	if len(in.Lines) > s.maxLines {
		return domain.NewValidationErrorWithValue("items",
			fmt.Sprintf("must contain at most %d books", s.maxLines), len(in.Lines))
	}

	for i, line := range in.Lines {
		if line.BookID <= 0 {
			return domain.NewValidationErrorWithValue(fmt.Sprintf("items[%d].book_id", i), "must be positive", line.BookID)
		}

		if line.Quantity < 1 {
			return domain.NewValidationErrorWithValue(fmt.Sprintf("items[%d].quantity", i), "must be at least 1", line.Quantity)
		}
	}

	return nil
}

func (s *RentalService) assess(ctx context.Context, rc *appctx.RequestContext, in CreateRentalInput) (*rentalAssessment, error) {
	user, books, err := Parallel2(ctx,
		func(ctx context.Context) (*domain.User, error) {
			return appctx.Fetch(ctx, rc, fmt.Sprintf("user:%d", in.UserID), func(ctx context.Context) (*domain.User, error) {
				return s.users.Get(ctx, in.UserID)
			})
		},
		func(ctx context.Context) (map[int64]*domain.Book, error) {
			return s.fetchBooks(ctx, rc, in.Lines)
		},
	)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.RentalLine, len(in.Lines))
	for i, line := range in.Lines {
		lines[i] = domain.RentalLine{Book: *books[line.BookID], Quantity: line.Quantity}
	}

	dob, err := user.IdentityNumber.DateOfBirth()
	if err != nil {
		s.metrics.IncrementIdentityReject("create_rental")
		return nil, err
	}

	return &rentalAssessment{
		user:   user,
		lines:  lines,
		result: domain.EvaluateEligibility(dob, s.clock(), lines),
	}, nil
}

// fetchBooks resolves each distinct book id once.
func (s *RentalService) fetchBooks(ctx context.Context, rc *appctx.RequestContext, lines []RentalLineInput) (map[int64]*domain.Book, error) {
	ids := make([]int64, 0, len(lines))
	seen := make(map[int64]struct{}, len(lines))

	for _, line := range lines {
		if _, ok := seen[line.BookID]; ok {
			continue
		}

		seen[line.BookID] = struct{}{}
		ids = append(ids, line.BookID)
	}

	fns := make([]func(context.Context) (*domain.Book, error), len(ids))
	for i, id := range ids {
		fns[i] = func(ctx context.Context) (*domain.Book, error) {
			return appctx.Fetch(ctx, rc, fmt.Sprintf("book:%d", id), func(ctx context.Context) (*domain.Book, error) {
				return s.books.Get(ctx, id)
			})
		}
	}

	found, err := ParallelLimit(ctx, bookLookupLimit, fns...)
	if err != nil {
		return nil, err
	}

	books := make(map[int64]*domain.Book, len(found))
	for i, book := range found {
		books[ids[i]] = book
	}

	return books, nil
}

func (s *RentalService) verify(ctx context.Context, in CreateRentalInput, a *rentalAssessment) (*rentalAssessment, error) {
	if a.result.Accepted() {
		return a, nil
	}

	for _, v := range a.result.Violations {
		s.metrics.IncrementViolation(v.AgeRating)
	}

	s.logger.InfoContext(ctx, "rental refused",
		slog.Int64("user_id", in.UserID),
		slog.Int("user_age", a.result.Age),
		slog.Int("violations", len(a.result.Violations)),
	)

	return nil, a.result.Err()
}

func (s *RentalService) archive(ctx context.Context, rc *appctx.RequestContext, in CreateRentalInput, a *rentalAssessment) error {
	now := s.clock().UTC()

	rentalDate := now
	if in.RentalDate != nil {
		rentalDate = in.RentalDate.UTC()
	}

	items := make([]domain.RentalItem, len(a.lines))
	for i, line := range a.lines {
		items[i] = domain.RentalItem{BookID: line.Book.ID, Quantity: line.Quantity}
	}

	a.rental = &domain.Rental{
		UserID:     a.user.ID,
		Items:      items,
		RentalDate: rentalDate,
		CreatedAt:  now,
	}

	if err := rc.AddAction(&insertRentalAction{rentals: s.rentals, rental: a.rental}); err != nil {
		return err
	}

	if err := rc.Commit(ctx); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "rental accepted",
		slog.Int64("rental_id", a.rental.ID),
		slog.Int64("user_id", a.rental.UserID),
		slog.Int("copies", a.rental.TotalQuantity()),
	)

	return nil
}

// GetRental returns the rental with the given id.
func (s *RentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	if id <= 0 {
		return nil, domain.NewValidationErrorWithValue("rental_id", "must be positive", id)
	}

	return s.rentals.Get(ctx, id)
}

// ListRentals returns every accepted rental ordered by id.
func (s *RentalService) ListRentals(ctx context.Context) ([]domain.Rental, error) {
	return s.rentals.List(ctx)
}

// insertRentalAction stores an accepted rental on commit.
type insertRentalAction struct {
	rentals ports.RentalRepository
	rental  *domain.Rental
}

func (a *insertRentalAction) Execute(ctx context.Context) error {
	return a.rentals.Insert(ctx, a.rental)
}

// Rollback is a no-op; the insert is the last staged write of a request.
func (a *insertRentalAction) Rollback(context.Context) error {
	return nil
}

func (a *insertRentalAction) Description() string {
	return fmt.Sprintf("insert rental for user %d", a.rental.UserID)
}
