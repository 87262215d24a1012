package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/platform/metrics"
	"github.com/jsamuelsen/book-rental/internal/ports"
)

// Clock returns the current time. Tests pin it to a fixed date.
type Clock func() time.Time

// UserService orchestrates user registration and lookup.
type UserService struct {
	users   ports.UserRepository
	logger  *slog.Logger
	clock   Clock
	metrics *metrics.Metrics
}

// UserServiceConfig contains the dependencies of the user service.
type UserServiceConfig struct {
	Users   ports.UserRepository
	Logger  *slog.Logger
	Clock   Clock
	Metrics *metrics.Metrics
}

// NewUserService creates a new user service with the provided dependencies.
func NewUserService(cfg UserServiceConfig) *UserService {
	if cfg.Users == nil {
		panic("app: UserService requires a UserRepository")
	}

	svc := &UserService{
		users:   cfg.Users,
		logger:  cfg.Logger,
		clock:   cfg.Clock,
		metrics: cfg.Metrics,
	}

	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	if svc.clock == nil {
		svc.clock = time.Now
	}

	return svc
}

// CreateUserInput holds the fields of a registration request.
type CreateUserInput struct {
	FirstName      string
	SecondName     string
	IdentityNumber string
}

// UserView is a user together with the date of birth and age derived from
// the identity number.
type UserView struct {
	User        domain.User
	DateOfBirth domain.DateOfBirth
	Age         int
}

// CreateUser registers a user. The identity number must decode to a valid
// date of birth before anything is stored.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserView, error) {
	if input.FirstName == "" {
		return nil, domain.NewValidationError("first_name", "must not be empty")
	}

	id, err := domain.ParseIdentityNumber(input.IdentityNumber)
	if err != nil {
		if domain.IsInvalidFormat(err) {
			s.metrics.IncrementIdentityReject("create_user")
		}

		return nil, err
	}

	user := &domain.User{
		FirstName:      input.FirstName,
		SecondName:     input.SecondName,
		IdentityNumber: id,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to store user", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "user created",
		slog.Int64("user_id", user.ID),
		slog.Any("personal_id_nbr", user.IdentityNumber),
	)

	return s.view(user)
}

// GetUser returns the user with the given id and its derived age.
func (s *UserService) GetUser(ctx context.Context, id int64) (*UserView, error) {
	if id <= 0 {
		return nil, domain.NewValidationErrorWithValue("user_id", "must be positive", id)
	}

	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.view(user)
}

// ListUsers returns every registered user ordered by id.
func (s *UserService) ListUsers(ctx context.Context) ([]UserView, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]UserView, 0, len(users))

	for i := range users {
		v, err := s.view(&users[i])
		if err != nil {
			return nil, err
		}

		views = append(views, *v)
	}

	return views, nil
}

func (s *UserService) view(user *domain.User) (*UserView, error) {
	dob, err := user.IdentityNumber.DateOfBirth()
	if err != nil {
		return nil, fmt.Errorf("user %d: %w", user.ID, err)
	}

	return &UserView{
		User:        *user,
		DateOfBirth: dob,
		Age:         domain.AgeOn(dob, s.clock()),
	}, nil
}
