package domain

// User represents a registered account. A user requests rides and, when
// flagged as admin, manages other users.
type User struct {
	ID           int64
	Name         string
	Phone        string
	PasswordHash string
	IsAdmin      bool
}
