package repository

import (
	"context"

	"dispatch/internal/domain"
)

// RiderRepository defines the persistence operations for riders.
type RiderRepository interface {
	// Create persists a new rider and fills in the generated ID.
	Create(ctx context.Context, rider *domain.Rider) error

	// GetByID retrieves a rider by ID.
	GetByID(ctx context.Context, id int64) (*domain.Rider, error)

	// GetAvailable retrieves a snapshot of all riders currently Available.
	GetAvailable(ctx context.Context) ([]*domain.Rider, error)

	// GetAll retrieves all riders.
	GetAll(ctx context.Context) ([]*domain.Rider, error)

	// UpdateStatus sets a rider's status unconditionally.
	UpdateStatus(ctx context.Context, id int64, status domain.RiderStatus) error

	// UpdateStatusIf flips a rider's status only when the current status
	// matches from. Returns false (and no error) when the precondition
	// does not hold.
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.RiderStatus) (bool, error)
}
