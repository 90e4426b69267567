package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"dispatch/internal/domain"
)

const bookingCacheTTL = 5 * time.Minute

// CacheStore caches booking views in Redis. Entries are invalidated on every
// status transition, so a cached view is always the latest committed one.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// cachedBooking is the wire form of a cached booking view.
type cachedBooking struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	RiderID    int64  `json:"rider_id"`
	Status     string `json:"status"`
	DistanceKm int    `json:"distance"`
	Fare       int64  `json:"fare"`
}

func bookingKey(bookingID int64) string {
	return fmt.Sprintf("booking:%d", bookingID)
}

// GetBooking returns the cached booking, or (nil, nil) on a cache miss.
func (s *CacheStore) GetBooking(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	data, err := s.client.Get(ctx, bookingKey(bookingID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var cached cachedBooking
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &domain.Booking{
		ID:         cached.ID,
		UserID:     cached.UserID,
		RiderID:    cached.RiderID,
		Status:     domain.BookingStatus(cached.Status),
		DistanceKm: cached.DistanceKm,
		Fare:       cached.Fare,
	}, nil
}

// SetBooking stores a booking view.
func (s *CacheStore) SetBooking(ctx context.Context, booking *domain.Booking) error {
	data, err := json.Marshal(cachedBooking{
		ID:         booking.ID,
		UserID:     booking.UserID,
		RiderID:    booking.RiderID,
		Status:     string(booking.Status),
		DistanceKm: booking.DistanceKm,
		Fare:       booking.Fare,
	})
	if err != nil {
		return err
	}

	return s.client.Set(ctx, bookingKey(booking.ID), data, bookingCacheTTL).Err()
}

// InvalidateBooking drops the cached view for a booking.
func (s *CacheStore) InvalidateBooking(ctx context.Context, bookingID int64) error {
	return s.client.Del(ctx, bookingKey(bookingID)).Err()
}
