package core

import "time"

// Role is the numeric user role carried in tokens and checked by the
// role gate. Values match the legacy user-management conventions.
type Role int

const (
	RoleAdmin   Role = 0
	RoleAthlete Role = 1
	RoleTrainer Role = 2
)

// Registerable reports whether a role may be chosen at registration.
// Admin accounts are provisioned out of band.
func (r Role) Registerable() bool {
	return r == RoleAthlete || r == RoleTrainer
}

// User is a registered account. PasswordHash holds a one-way salted hash;
// the plaintext secret is never stored or logged.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
