package redis

import (
	"context"
	"time"

	"dispatch/internal/domain"
)

// CacheStoreInterface defines the interface for booking view caching.
type CacheStoreInterface interface {
	GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error)
	SetBooking(ctx context.Context, booking *domain.Booking) error
	InvalidateBooking(ctx context.Context, bookingID int64) error
}

// LockStoreInterface defines the interface for per-booking transition locks.
type LockStoreInterface interface {
	AcquireBookingLock(ctx context.Context, bookingID int64, ttl time.Duration) (bool, error)
	ReleaseBookingLock(ctx context.Context, bookingID int64) error
}

// Ensure concrete types implement interfaces.
var (
	_ CacheStoreInterface = (*CacheStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
)
