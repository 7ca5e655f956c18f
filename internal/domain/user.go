package domain

import "time"

// User is the identity/contact record of an account holder. Created once
// at account opening and rarely touched afterwards.
type User struct {
	ID          int64     `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Gender      string    `json:"gender"`
	Job         *string   `json:"job,omitempty"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type UserCreate struct {
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Address     string
	DateOfBirth time.Time
	Gender      string
	Job         *string
}

type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Address   *string
	Job       *string
	Status    *bool
}
