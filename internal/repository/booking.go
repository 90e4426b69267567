package repository

import (
	"context"

	"dispatch/internal/domain"
)

// BookingRepository defines the persistence operations for bookings.
//
// CreateAssigned and SetStatus are the only two points where rider and
// booking state change together; both must commit the pair atomically.
type BookingRepository interface {
	// CreateAssigned persists booking in state Pending and flips its rider
	// from Available to Busy in a single transaction. Returns false when
	// the rider was no longer Available, in which case nothing is written.
	CreateAssigned(ctx context.Context, booking *domain.Booking) (bool, error)

	// GetByID retrieves a booking by ID.
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// GetAll retrieves all bookings.
	GetAll(ctx context.Context) ([]*domain.Booking, error)

	// SetStatus updates a booking's status and, when the new status is
	// terminal, sets the assigned rider back to Available in the same
	// transaction. A booking with no rider attached skips the release.
	// Returns the updated booking, or ErrNotFound.
	SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
}
