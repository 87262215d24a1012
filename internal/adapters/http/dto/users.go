package dto

import (
	"github.com/jsamuelsen/book-rental/internal/app"
)

// CreateUserRequest is the body of POST /api/v1/users.
type CreateUserRequest struct {
	FirstName     string `json:"first_name"      validate:"required,notempty,max=100"`
	SecondName    string `json:"second_name"     validate:"max=100"`
	PersonalIDNbr string `json:"personal_id_nbr" validate:"required"`
}

// ToInput converts the request to the service input.
func (r CreateUserRequest) ToInput() app.CreateUserInput {
	return app.CreateUserInput{
		FirstName:      r.FirstName,
		SecondName:     r.SecondName,
		IdentityNumber: r.PersonalIDNbr,
	}
}

// UserResponse is a registered user. The identity number itself is not
// returned; the derived birth date and age are.
type UserResponse struct {
	UserID      int64  `json:"user_id"`
	FirstName   string `json:"first_name"`
	SecondName  string `json:"second_name"`
	DateOfBirth string `json:"date_of_birth"`
	Age         int    `json:"age"`
}

// NewUserResponse converts a user view.
func NewUserResponse(v *app.UserView) UserResponse {
	return UserResponse{
		UserID:      v.User.ID,
		FirstName:   v.User.FirstName,
		SecondName:  v.User.SecondName,
		DateOfBirth: v.DateOfBirth.String(),
		Age:         v.Age,
	}
}

// NewUserListResponse converts a list of user views.
func NewUserListResponse(views []app.UserView) []UserResponse {
	out := make([]UserResponse, len(views))
	for i := range views {
		out[i] = NewUserResponse(&views[i])
	}

	return out
}
