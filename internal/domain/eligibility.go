package domain

import (
	"fmt"
	"time"
)

// RentalLine is a resolved book and the number of copies requested.
// Quantity never affects eligibility.
type RentalLine struct {
	Book     Book
	Quantity int
}

// Violation records one book the user is too young to rent.
type Violation struct {
	BookTitle string
	AgeRating int
	UserAge   int
}

// Message renders the violation for API responses.
func (v Violation) Message() string {
	return fmt.Sprintf("The legal age of %s is %d. The user is %d years old.", v.BookTitle, v.AgeRating, v.UserAge)
}

// EligibilityResult is the outcome of an eligibility check.
type EligibilityResult struct {
	Age        int
	Violations []Violation
}

// Accepted reports whether no line was violated.
func (r EligibilityResult) Accepted() bool {
	return len(r.Violations) == 0
}

// Err returns nil when accepted, otherwise an *EligibilityError with every violation.
func (r EligibilityResult) Err() error {
	if r.Accepted() {
		return nil
	}

	violations := make([]Violation, len(r.Violations))
	copy(violations, r.Violations)

	return &EligibilityError{Violations: violations}
}

// AgeOn returns the age in whole years of someone born on dob at ref.
// The birthday counts once (month, day) of ref reaches (month, day) of dob.
// A reference date before the birth date yields 0.
func AgeOn(dob DateOfBirth, ref time.Time) int {
	years := ref.Year() - dob.Year
	if ref.Month() < dob.Month || (ref.Month() == dob.Month && ref.Day() < dob.Day) {
		years--
	}

	return max(years, 0)
}

// EvaluateEligibility checks every line's age rating against the age at ref.
// All lines are checked; the result lists every violation in line order.
func EvaluateEligibility(dob DateOfBirth, ref time.Time, lines []RentalLine) EligibilityResult {
	age := AgeOn(dob, ref)
	result := EligibilityResult{Age: age}

	for _, line := range lines {
		if line.Book.AgeRating > age {
			result.Violations = append(result.Violations, Violation{
				BookTitle: line.Book.Title,
				AgeRating: line.Book.AgeRating,
				UserAge:   age,
			})
		}
	}

	return result
}
