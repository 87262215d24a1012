package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/book-rental/internal/adapters/http/dto"
	"github.com/jsamuelsen/book-rental/internal/adapters/memory"
	"github.com/jsamuelsen/book-rental/internal/app"
	"github.com/jsamuelsen/book-rental/internal/platform/metrics"
)

func today() time.Time {
	return time.Date(2024, time.June, 15, 9, 0, 0, 0, time.UTC)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	books := memory.NewBookStore()
	users := memory.NewUserStore()
	rentals := memory.NewRentalStore()
	m := metrics.New(prometheus.NewRegistry())

	router := gin.New()
	api := router.Group("/api/v1")

	NewBookHandler(app.NewBookService(app.BookServiceConfig{Books: books})).RegisterBookRoutes(api)
	NewUserHandler(app.NewUserService(app.UserServiceConfig{
		Users: users, Clock: today, Metrics: m,
	})).RegisterUserRoutes(api)
	NewRentalHandler(app.NewRentalService(app.RentalServiceConfig{
		Users: users, Books: books, Rentals: rentals, Clock: today, Metrics: m, MaxLines: 5,
	})).RegisterRentalRoutes(api)

	return router
}

func do(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func TestUserHandler_CreateAndGet(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/users", map[string]string{
		"first_name": "Alice", "second_name": "Doe", "personal_id_nbr": "95032708202",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[dto.UserResponse](t, w)
	assert.NotContains(t, w.Body.String(), "95032708202")

	w = do(t, router, http.MethodGet, "/api/v1/users/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	got := decode[dto.UserResponse](t, w)
	assert.Equal(t, created, got)
	assert.Equal(t, "Alice", got.FirstName)
	assert.Equal(t, "Doe", got.SecondName)
	assert.Equal(t, "1995-03-27", got.DateOfBirth)
	assert.Equal(t, 29, got.Age)

	w = do(t, router, http.MethodGet, "/api/v1/users", nil)
	assert.Len(t, decode[[]dto.UserResponse](t, w), 1)
}

func TestUserHandler_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"missing user", http.MethodGet, "/api/v1/users/1050", nil, http.StatusNotFound, dto.ErrorCodeNotFound},
		{"bad id", http.MethodGet, "/api/v1/users/abc", nil, http.StatusBadRequest, dto.ErrorCodeValidation},
		{"malformed identity number", http.MethodPost, "/api/v1/users",
			map[string]string{"first_name": "Bob", "personal_id_nbr": "9503270820"}, http.StatusBadRequest, dto.ErrorCodeInvalidFormat},
		{"missing first name", http.MethodPost, "/api/v1/users",
			map[string]string{"personal_id_nbr": "95032708202"}, http.StatusBadRequest, dto.ErrorCodeValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, tt.method, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, decode[dto.ErrorResponse](t, w).Error.Code)
		})
	}
}

func TestBookHandler(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/books", map[string]any{
		"title": "XXX", "author": "YYY", "genre": "non-fiction", "age_rating": 0,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	book := decode[dto.BookResponse](t, w)
	assert.Equal(t, int64(1), book.BookID)

	w = do(t, router, http.MethodGet, "/api/v1/books/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, book, decode[dto.BookResponse](t, w))

	w = do(t, router, http.MethodGet, "/api/v1/books/1050", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/books", map[string]any{"title": "Bad", "age_rating": -3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/books", nil)
	assert.Len(t, decode[[]dto.BookResponse](t, w), 1)
}

func seedCatalogue(t *testing.T, router *gin.Engine) {
	t.Helper()

	for _, b := range []map[string]any{
		{"title": "Dune", "age_rating": 16},
		{"title": "Matilda", "age_rating": 0},
		{"title": "It", "age_rating": 18},
	} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/books", b).Code)
	}

	for _, u := range []map[string]string{
		{"first_name": "Alice", "personal_id_nbr": "95032708202"},
		{"first_name": "Tom", "personal_id_nbr": "10250112345"},
	} {
		require.Equal(t, http.StatusCreated, do(t, router, http.MethodPost, "/api/v1/users", u).Code)
	}
}

func TestRentalHandler_Accepted(t *testing.T) {
	router := newTestRouter(t)
	seedCatalogue(t, router)

	w := do(t, router, http.MethodPost, "/api/v1/rentals", map[string]any{
		"user_id": 1,
		"items":   []map[string]int{{"book_id": 1, "quantity": 2}, {"book_id": 3, "quantity": 1}},
		"date":    "2024-06-20",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	rental := decode[dto.RentalResponse](t, w)
	assert.Equal(t, int64(1), rental.RentalID)
	assert.Equal(t, 3, rental.TotalQuantity)
	assert.Equal(t, "2024-06-20", rental.Date)

	w = do(t, router, http.MethodGet, "/api/v1/rentals/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, rental.Items, decode[dto.RentalResponse](t, w).Items)

	w = do(t, router, http.MethodGet, "/api/v1/rentals", nil)
	assert.Len(t, decode[[]dto.RentalResponse](t, w), 1)
}

func TestRentalHandler_RejectedWithAllViolations(t *testing.T) {
	router := newTestRouter(t)
	seedCatalogue(t, router)

	w := do(t, router, http.MethodPost, "/api/v1/rentals", map[string]any{
		"user_id":          2,
		"rented_books_ids": []int{1, 2, 3},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	resp := decode[dto.ErrorResponse](t, w)
	assert.Equal(t, dto.ErrorCodeEligibility, resp.Error.Code)
	require.Len(t, resp.Error.Violations, 2)
	assert.Equal(t, "The legal age of Dune is 16. The user is 14 years old.", resp.Error.Violations[0].Message)
	assert.Equal(t, "The legal age of It is 18. The user is 14 years old.", resp.Error.Violations[1].Message)

	w = do(t, router, http.MethodGet, "/api/v1/rentals", nil)
	assert.Empty(t, decode[[]dto.RentalResponse](t, w))
}

func TestRentalHandler_Errors(t *testing.T) {
	router := newTestRouter(t)
	seedCatalogue(t, router)

	tests := []struct {
		name       string
		body       any
		wantStatus int
	}{
		{"missing user", map[string]any{"user_id": 1050, "rented_books_ids": []int{1}, "date": "2023-04-04T12:22:00.946Z"}, http.StatusNotFound},
		{"missing book", map[string]any{"user_id": 1, "rented_books_ids": []int{1050}}, http.StatusNotFound},
		{"no books", map[string]any{"user_id": 1}, http.StatusBadRequest},
		{"empty items", map[string]any{"user_id": 1, "items": []any{}}, http.StatusBadRequest},
		{"too many lines", map[string]any{"user_id": 1, "rented_books_ids": []int{2, 2, 2, 2, 2, 2}}, http.StatusBadRequest},
		{"bad date", map[string]any{"user_id": 1, "rented_books_ids": []int{2}, "date": "yesterday"}, http.StatusBadRequest},
		{"malformed body", "not an object", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/api/v1/rentals", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}

	assert.Equal(t, http.StatusNotFound, do(t, router, http.MethodGet, "/api/v1/rentals/1050", nil).Code)
}
