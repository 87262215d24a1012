package domain

// Book is a title available for rent.
type Book struct {
	ID     int64
	Title  string
	Author string
	Genre  string
	// AgeRating is the minimum age in years; 0 means unrestricted.
	AgeRating int
}

// Validate checks the book's business rules.
func (b Book) Validate() error {
	if b.Title == "" {
		return NewValidationError("title", "must not be empty")
	}

	if b.AgeRating < 0 {
		return NewValidationErrorWithValue("age_rating", "must not be negative", b.AgeRating)
	}

	return nil
}
