package service

import "errors"

var (
	// ErrUserNotFound is returned when the requesting user does not exist.
	ErrUserNotFound = errors.New("user does not exist")

	// ErrNoRiderAvailable is returned when no rider can be dispatched.
	ErrNoRiderAvailable = errors.New("no available riders at the moment")

	// ErrRiderConflict is returned when the chosen rider is claimed by a
	// concurrent booking and the bounded retry also loses its claim.
	ErrRiderConflict = errors.New("rider claimed by concurrent booking")

	// ErrInvalidDistance is returned when the requested distance is not a
	// positive number of kilometers.
	ErrInvalidDistance = errors.New("distance must be a positive number of kilometers")

	// ErrInvalidRiderStatus is returned when a rider status override is
	// neither Available nor Busy.
	ErrInvalidRiderStatus = errors.New("rider status must be Available or Busy")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPhoneTaken is returned when registering with a phone number that
	// already belongs to a user.
	ErrPhoneTaken = errors.New("phone number already registered")

	// ErrPlateTaken is returned when registering a rider with a license
	// plate that is already registered.
	ErrPlateTaken = errors.New("license plate already registered")
)
