package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a write violates a uniqueness
	// constraint (phone number, license plate).
	ErrDuplicate = errors.New("entity already exists")
)
