package service

import (
	"context"
	"errors"

	"dispatch/internal/domain"
	"dispatch/internal/observability"
	"dispatch/internal/repository"
)

// A lost rider claim is retried once with a fresh availability snapshot
// before the request surfaces as a conflict.
const maxClaimAttempts = 2

// DispatchService orchestrates booking creation: it validates the requesting
// user, locates the nearest available rider, computes the fare, and commits
// the booking together with the rider's Busy flip as one unit.
type DispatchService struct {
	userRepo    repository.UserRepository
	riderRepo   repository.RiderRepository
	bookingRepo repository.BookingRepository
	locator     *RiderLocator
}

// NewDispatchService creates a new DispatchService.
func NewDispatchService(
	userRepo repository.UserRepository,
	riderRepo repository.RiderRepository,
	bookingRepo repository.BookingRepository,
	locator *RiderLocator,
) *DispatchService {
	return &DispatchService{
		userRepo:    userRepo,
		riderRepo:   riderRepo,
		bookingRepo: bookingRepo,
		locator:     locator,
	}
}

// BookRide books a ride for the given user and assigns the nearest available
// rider. The rider snapshot and the Busy flip are kept consistent by the
// store's conditional update: two concurrent bookings over overlapping
// snapshots can never claim the same rider.
func (s *DispatchService) BookRide(ctx context.Context, userID int64, distanceKm int) (*domain.Booking, error) {
	if distanceKm <= 0 {
		return nil, ErrInvalidDistance
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	fare := Fare(distanceKm)

	for attempt := 0; attempt < maxClaimAttempts; attempt++ {
		available, err := s.riderRepo.GetAvailable(ctx)
		if err != nil {
			return nil, err
		}

		riderID, ok := s.locator.Locate(userID, available)
		if !ok {
			return nil, ErrNoRiderAvailable
		}

		booking := &domain.Booking{
			UserID:     userID,
			RiderID:    riderID,
			Status:     domain.BookingStatusPending,
			DistanceKm: distanceKm,
			Fare:       fare,
		}

		claimed, err := s.bookingRepo.CreateAssigned(ctx, booking)
		if err != nil {
			return nil, err
		}
		if claimed {
			observability.BookingsTotal.Inc()
			return booking, nil
		}

		// Rider claimed by a concurrent booking between snapshot and
		// commit; retry with a fresh snapshot.
		observability.DispatchConflictsTotal.Inc()
	}

	return nil, ErrRiderConflict
}
