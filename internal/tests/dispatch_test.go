package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

func newDispatchFixture() (*service.DispatchService, *MockUserRepository, *MockRiderRepository, *MockBookingRepository) {
	userRepo := NewMockUserRepository()
	riderRepo := NewMockRiderRepository()
	bookingRepo := NewMockBookingRepository(riderRepo)

	for id := int64(1); id <= 5; id++ {
		userRepo.AddUser(&domain.User{ID: id, Name: "user", Phone: string(rune('0' + id))})
		riderRepo.AddRider(&domain.Rider{ID: id, UserID: id + 100, Status: domain.RiderStatusAvailable})
	}

	locator := service.NewRiderLocator(service.NewMatrixDistanceSource(service.DefaultDistanceMatrix()))
	svc := service.NewDispatchService(userRepo, riderRepo, bookingRepo, locator)
	return svc, userRepo, riderRepo, bookingRepo
}

func TestBookRide_AssignsNearestRider(t *testing.T) {
	svc, _, riderRepo, bookingRepo := newDispatchFixture()

	booking, err := svc.BookRide(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}

	if booking.RiderID != 4 {
		t.Errorf("expected rider 4 (nearest to user 1), got %d", booking.RiderID)
	}
	if booking.Status != domain.BookingStatusPending {
		t.Errorf("expected status Pending, got %q", booking.Status)
	}
	if booking.Fare != 45000 {
		t.Errorf("expected fare 45000 for 3 km, got %d", booking.Fare)
	}
	if booking.ID == 0 {
		t.Error("expected booking to receive an ID")
	}

	if got := riderRepo.GetRider(4).Status; got != domain.RiderStatusBusy {
		t.Errorf("expected assigned rider to be Busy, got %q", got)
	}
	if bookingRepo.BookingCount() != 1 {
		t.Errorf("expected 1 stored booking, got %d", bookingRepo.BookingCount())
	}
}

func TestBookRide_SkipsBusyRiders(t *testing.T) {
	svc, _, riderRepo, _ := newDispatchFixture()
	riderRepo.GetRider(4).Status = domain.RiderStatusBusy

	booking, err := svc.BookRide(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}
	if booking.RiderID != 2 {
		t.Errorf("expected rider 2 (next nearest to user 1), got %d", booking.RiderID)
	}
}

func TestBookRide_NoRiderAvailable(t *testing.T) {
	svc, _, riderRepo, bookingRepo := newDispatchFixture()
	for id := int64(1); id <= 5; id++ {
		riderRepo.GetRider(id).Status = domain.RiderStatusBusy
	}

	_, err := svc.BookRide(context.Background(), 1, 3)
	if !errors.Is(err, service.ErrNoRiderAvailable) {
		t.Fatalf("expected ErrNoRiderAvailable, got %v", err)
	}
	if bookingRepo.BookingCount() != 0 {
		t.Errorf("expected no bookings, got %d", bookingRepo.BookingCount())
	}
}

func TestBookRide_UnknownUser(t *testing.T) {
	svc, _, _, _ := newDispatchFixture()

	_, err := svc.BookRide(context.Background(), 99, 3)
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestBookRide_InvalidDistance(t *testing.T) {
	svc, _, _, _ := newDispatchFixture()

	for _, distance := range []int{0, -1, -10} {
		_, err := svc.BookRide(context.Background(), 1, distance)
		if !errors.Is(err, service.ErrInvalidDistance) {
			t.Errorf("distance %d: expected ErrInvalidDistance, got %v", distance, err)
		}
	}
}

func TestBookRide_RetriesAfterLostClaim(t *testing.T) {
	svc, _, _, bookingRepo := newDispatchFixture()
	bookingRepo.FailClaims = 1

	booking, err := svc.BookRide(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if booking.ID == 0 {
		t.Error("expected booking to receive an ID")
	}
	if got := bookingRepo.CreateAssignedCallCount; got != 2 {
		t.Errorf("expected 2 claim attempts, got %d", got)
	}
}

func TestBookRide_ConflictAfterExhaustedRetries(t *testing.T) {
	svc, _, _, bookingRepo := newDispatchFixture()
	bookingRepo.FailClaims = 2

	_, err := svc.BookRide(context.Background(), 1, 3)
	if !errors.Is(err, service.ErrRiderConflict) {
		t.Fatalf("expected ErrRiderConflict, got %v", err)
	}
	if bookingRepo.BookingCount() != 0 {
		t.Errorf("expected no bookings after conflict, got %d", bookingRepo.BookingCount())
	}
}

func TestBookRide_ConcurrentSingleRider(t *testing.T) {
	userRepo := NewMockUserRepository()
	riderRepo := NewMockRiderRepository()
	bookingRepo := NewMockBookingRepository(riderRepo)

	for id := int64(1); id <= 5; id++ {
		userRepo.AddUser(&domain.User{ID: id, Name: "user", Phone: string(rune('0' + id))})
	}
	riderRepo.AddRider(&domain.Rider{ID: 1, UserID: 101, Status: domain.RiderStatusAvailable})

	locator := service.NewRiderLocator(service.NewMatrixDistanceSource(service.DefaultDistanceMatrix()))
	svc := service.NewDispatchService(userRepo, riderRepo, bookingRepo, locator)

	const attempts = 5
	var wg sync.WaitGroup
	results := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.BookRide(context.Background(), int64(i+1), 3)
		}(i)
	}
	wg.Wait()

	var succeeded int
	for i, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, service.ErrNoRiderAvailable), errors.Is(err, service.ErrRiderConflict):
			// Lost the claim race.
		default:
			t.Errorf("request %d: unexpected error %v", i+1, err)
		}
	}

	if succeeded != 1 {
		t.Errorf("expected exactly 1 booking to win the rider, got %d", succeeded)
	}
	if bookingRepo.BookingCount() != 1 {
		t.Errorf("expected 1 stored booking, got %d", bookingRepo.BookingCount())
	}
	if got := riderRepo.GetRider(1).Status; got != domain.RiderStatusBusy {
		t.Errorf("expected rider to be Busy, got %q", got)
	}
}

func TestBookRide_ConcurrentNoSharedRiders(t *testing.T) {
	svc, _, _, bookingRepo := newDispatchFixture()

	const attempts = 5
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, _ = svc.BookRide(context.Background(), userID, 3)
		}(int64(i + 1))
	}
	wg.Wait()

	bookings, err := bookingRepo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("listing bookings: %v", err)
	}

	seen := make(map[int64]int64)
	for _, b := range bookings {
		if prev, ok := seen[b.RiderID]; ok {
			t.Errorf("rider %d assigned to bookings %d and %d", b.RiderID, prev, b.ID)
		}
		seen[b.RiderID] = b.ID
	}
}
