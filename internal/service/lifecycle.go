package service

import (
	"context"
	"time"

	"dispatch/internal/domain"
	"dispatch/internal/observability"
	redisstore "dispatch/internal/redis"
	"dispatch/internal/repository"
)

const transitionLockTTL = 10 * time.Second

// LifecycleService applies status transitions to bookings and releases the
// assigned rider back to the pool on terminal transitions.
//
// Transitions are intentionally unvalidated: callers may move a booking to
// any status, including backwards out of a terminal state. Existing
// integrations depend on that looseness.
type LifecycleService struct {
	bookingRepo repository.BookingRepository
	cacheStore  redisstore.CacheStoreInterface
	lockStore   redisstore.LockStoreInterface
}

// NewLifecycleService creates a new LifecycleService. Cache and lock stores
// are optional; without them transitions still work, just uncached and
// unserialized.
func NewLifecycleService(
	bookingRepo repository.BookingRepository,
	cacheStore redisstore.CacheStoreInterface,
	lockStore redisstore.LockStoreInterface,
) *LifecycleService {
	return &LifecycleService{
		bookingRepo: bookingRepo,
		cacheStore:  cacheStore,
		lockStore:   lockStore,
	}
}

// SetStatus moves a booking to the given status. Terminal statuses also set
// the booking's rider back to Available in the same store operation; a
// booking whose rider was removed skips the release. Repeating a terminal
// transition is a no-op for the rider.
func (s *LifecycleService) SetStatus(ctx context.Context, bookingID int64, status domain.BookingStatus) (*domain.Booking, error) {
	if s.lockStore != nil {
		locked, err := s.lockStore.AcquireBookingLock(ctx, bookingID, transitionLockTTL)
		if err != nil {
			return nil, err
		}
		if locked {
			defer func() { _ = s.lockStore.ReleaseBookingLock(ctx, bookingID) }()
		}
		// Lock miss is not fatal: the store transaction stays correct,
		// the lock only serializes interleaved transitions.
	}

	booking, err := s.bookingRepo.SetStatus(ctx, bookingID, status)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.InvalidateBooking(ctx, bookingID)
	}

	if status.Terminal() {
		observability.BookingsCompletedTotal.WithLabelValues(string(status)).Inc()
	}

	return booking, nil
}

// GetStatus returns the current view of a booking. Reads go through the
// cache when one is configured; transitions invalidate it, so repeated reads
// between transitions return identical values.
func (s *LifecycleService) GetStatus(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	if s.cacheStore != nil {
		if cached, err := s.cacheStore.GetBooking(ctx, bookingID); err == nil && cached != nil {
			return cached, nil
		}
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if s.cacheStore != nil {
		_ = s.cacheStore.SetBooking(ctx, booking)
	}

	return booking, nil
}
