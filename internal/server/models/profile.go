// Package models holds the row types stored by the profile server.
package models

import "time"

type Profile struct {
	UserID      string    `db:"user_id"`
	Email       string    `db:"email"`
	FirstName   string    `db:"first_name"`
	LastName    string    `db:"last_name"`
	PhoneNumber string    `db:"phone_number"`
	CreatedAt   time.Time `db:"created_at"`
}
