package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBook_Validate(t *testing.T) {
	require.NoError(t, Book{Title: "Dune", AgeRating: 0}.Validate())

	err := Book{AgeRating: 3}.Validate()
	require.ErrorIs(t, err, ErrValidation)

	err = Book{Title: "Dune", AgeRating: -1}.Validate()

	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "age_rating", validation.Field)
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ada Lovelace", User{FirstName: "Ada", SecondName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", User{FirstName: "Ada"}.FullName())
}

func TestRental_TotalQuantity(t *testing.T) {
	r := Rental{Items: []RentalItem{{BookID: 1, Quantity: 2}, {BookID: 2, Quantity: 3}}}

	assert.Equal(t, 5, r.TotalQuantity())
	assert.Zero(t, Rental{}.TotalQuantity())
}
