package domain

// User is a registered customer.
type User struct {
	ID             int64
	FirstName      string
	SecondName     string
	IdentityNumber IdentityNumber
}

// FullName joins the first and second name.
func (u User) FullName() string {
	if u.SecondName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.SecondName
}
