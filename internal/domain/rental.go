package domain

import "time"

// RentalItem is a stored rental line.
type RentalItem struct {
	BookID   int64
	Quantity int
}

// Rental is an accepted rental of one or more books by a user.
type Rental struct {
	ID         int64
	UserID     int64
	Items      []RentalItem
	RentalDate time.Time
	CreatedAt  time.Time
}

// TotalQuantity sums the quantity over all items.
func (r Rental) TotalQuantity() int {
	total := 0
	for _, item := range r.Items {
		total += item.Quantity
	}

	return total
}
