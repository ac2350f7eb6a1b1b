package users

import "time"

type User struct {
	ID    string
	Name  string
	Email string // siempre en minúsculas

	// Hash opaco; el dominio nunca lo interpreta.
	PasswordHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}
