package app

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/mocks"
	"github.com/jsamuelsen/book-rental/internal/platform/metrics"
)

func newUserService(t *testing.T, repo *mocks.MockUserRepository) (*UserService, *metrics.Metrics) {
	t.Helper()

	m := metrics.New(prometheus.NewRegistry())

	return NewUserService(UserServiceConfig{
		Users:   repo,
		Logger:  discardLogger(),
		Clock:   fixedClock,
		Metrics: m,
	}), m
}

func TestUserService_CreateUser(t *testing.T) {
	repo := mocks.NewMockUserRepository(t)
	repo.EXPECT().Insert(mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(_ context.Context, user *domain.User) { user.ID = 1 }).
		Return(nil)

	svc, _ := newUserService(t, repo)

	view, err := svc.CreateUser(context.Background(), CreateUserInput{
		FirstName:      "Alice",
		SecondName:     "Doe",
		IdentityNumber: "95032708202",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), view.User.ID)
	assert.Equal(t, "Alice Doe", view.User.FullName())
	assert.Equal(t, "1995-03-27", view.DateOfBirth.String())
	assert.Equal(t, 29, view.Age)
}

func TestUserService_CreateUser_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		input    CreateUserInput
		errCheck func(error) bool
		rejects  float64
	}{
		{
			name:     "missing first name",
			input:    CreateUserInput{IdentityNumber: "95032708202"},
			errCheck: domain.IsValidation,
		},
		{
			name:     "short identity number",
			input:    CreateUserInput{FirstName: "Bob", IdentityNumber: "9503270"},
			errCheck: domain.IsInvalidFormat,
			rejects:  1,
		},
		{
			name:     "non-digit identity number",
			input:    CreateUserInput{FirstName: "Bob", IdentityNumber: "95O32708202"},
			errCheck: domain.IsInvalidFormat,
			rejects:  1,
		},
		{
			name:     "impossible date",
			input:    CreateUserInput{FirstName: "Bob", IdentityNumber: "95023108202"},
			errCheck: domain.IsInvalidFormat,
			rejects:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newUserService(t, mocks.NewMockUserRepository(t))

			view, err := svc.CreateUser(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, tt.errCheck(err), "unexpected error type: %v", err)
			assert.Nil(t, view)
			assert.InDelta(t, tt.rejects, testutil.ToFloat64(m.IdentityRejects.WithLabelValues("create_user")), 0)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	repo := mocks.NewMockUserRepository(t)
	repo.EXPECT().Get(mock.Anything, int64(2)).Return(&domain.User{
		ID:             2,
		FirstName:      "Tom",
		IdentityNumber: "10250112345",
	}, nil)
	repo.EXPECT().Get(mock.Anything, int64(1050)).Return(nil, domain.NewNotFoundError("user", "1050"))

	svc, _ := newUserService(t, repo)

	view, err := svc.GetUser(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "2010-05-01", view.DateOfBirth.String())
	assert.Equal(t, 14, view.Age)

	_, err = svc.GetUser(context.Background(), 1050)
	assert.True(t, domain.IsNotFound(err))

	_, err = svc.GetUser(context.Background(), -1)
	assert.True(t, domain.IsValidation(err))
}

func TestUserService_ListUsers(t *testing.T) {
	repo := mocks.NewMockUserRepository(t)
	repo.EXPECT().List(mock.Anything).Return([]domain.User{
		{ID: 1, FirstName: "Alice", IdentityNumber: "95032708202"},
		{ID: 2, FirstName: "Tom", IdentityNumber: "10250112345"},
	}, nil)

	svc, _ := newUserService(t, repo)

	views, err := svc.ListUsers(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 29, views[0].Age)
	assert.Equal(t, 14, views[1].Age)
}
