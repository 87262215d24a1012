package dto

import (
	"time"

	"github.com/jsamuelsen/book-rental/internal/app"
	"github.com/jsamuelsen/book-rental/internal/domain"
)

// DateLayout is the date-only form accepted and returned for rental dates.
const DateLayout = time.DateOnly

// RentalLineRequest is one requested book.
type RentalLineRequest struct {
	BookID   int64 `json:"book_id"  validate:"gt=0"`
	Quantity int   `json:"quantity" validate:"gte=1"`
}

// CreateRentalRequest is the body of POST /api/v1/rentals.
// Books are given either as items with quantities or as rented_books_ids,
// each of which counts as one copy.
type CreateRentalRequest struct {
	UserID        int64               `json:"user_id"          validate:"required,gt=0"`
	Items         []RentalLineRequest `json:"items"            validate:"required_without=RentedBookIDs,dive"`
	RentedBookIDs []int64             `json:"rented_books_ids" validate:"required_without=Items,dive,gt=0"`
	Date          string              `json:"date"`
}

// ToInput converts the request to the service input.
// The date may be an RFC 3339 timestamp or a plain YYYY-MM-DD date.
func (r CreateRentalRequest) ToInput() (app.CreateRentalInput, error) {
	input := app.CreateRentalInput{
		UserID: r.UserID,
		Lines:  make([]app.RentalLineInput, 0, len(r.Items)+len(r.RentedBookIDs)),
	}

	for _, item := range r.Items {
		input.Lines = append(input.Lines, app.RentalLineInput{BookID: item.BookID, Quantity: item.Quantity})
	}

	for _, id := range r.RentedBookIDs {
		input.Lines = append(input.Lines, app.RentalLineInput{BookID: id, Quantity: 1})
	}

	if r.Date != "" {
		date, err := parseRentalDate(r.Date)
		if err != nil {
			return app.CreateRentalInput{}, err
		}

		input.RentalDate = &date
	}

	return input, nil
}

func parseRentalDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}

	return time.Time{}, domain.NewValidationErrorWithValue("date", "must be an RFC 3339 timestamp or YYYY-MM-DD", s)
}

// RentalItemResponse is one stored rental line.
type RentalItemResponse struct {
	BookID   int64 `json:"book_id"`
	Quantity int   `json:"quantity"`
}

// RentalResponse is an accepted rental.
type RentalResponse struct {
	RentalID      int64                `json:"rental_id"`
	UserID        int64                `json:"user_id"`
	Items         []RentalItemResponse `json:"items"`
	TotalQuantity int                  `json:"total_quantity"`
	Date          string               `json:"date"`
	CreatedAt     time.Time            `json:"created_at"`
}

// NewRentalResponse converts a domain rental.
func NewRentalResponse(r *domain.Rental) RentalResponse {
	items := make([]RentalItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = RentalItemResponse{BookID: item.BookID, Quantity: item.Quantity}
	}

	return RentalResponse{
		RentalID:      r.ID,
		UserID:        r.UserID,
		Items:         items,
		TotalQuantity: r.TotalQuantity(),
		Date:          r.RentalDate.Format(DateLayout),
		CreatedAt:     r.CreatedAt,
	}
}

// NewRentalListResponse converts a list of rentals.
func NewRentalListResponse(rentals []domain.Rental) []RentalResponse {
	out := make([]RentalResponse, len(rentals))
	for i := range rentals {
		out[i] = NewRentalResponse(&rentals[i])
	}

	return out
}
