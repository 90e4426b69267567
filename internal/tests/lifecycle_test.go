package tests

import (
	"context"
	"errors"
	"testing"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
	"dispatch/internal/service"
)

func newLifecycleFixture() (*service.LifecycleService, *MockRiderRepository, *MockBookingRepository, *MockCacheStore) {
	riderRepo := NewMockRiderRepository()
	bookingRepo := NewMockBookingRepository(riderRepo)
	cacheStore := NewMockCacheStore()
	lockStore := NewMockLockStore()

	riderRepo.AddRider(&domain.Rider{ID: 1, UserID: 101, Status: domain.RiderStatusAvailable})

	svc := service.NewLifecycleService(bookingRepo, cacheStore, lockStore)
	return svc, riderRepo, bookingRepo, cacheStore
}

func mustBook(t *testing.T, bookingRepo *MockBookingRepository) *domain.Booking {
	t.Helper()
	booking := &domain.Booking{
		UserID:     1,
		RiderID:    1,
		Status:     domain.BookingStatusPending,
		DistanceKm: 3,
		Fare:       45000,
	}
	claimed, err := bookingRepo.CreateAssigned(context.Background(), booking)
	if err != nil || !claimed {
		t.Fatalf("fixture booking failed: claimed=%v err=%v", claimed, err)
	}
	return booking
}

func TestSetStatus_CompletedReleasesRider(t *testing.T) {
	svc, riderRepo, bookingRepo, _ := newLifecycleFixture()
	booking := mustBook(t, bookingRepo)

	updated, err := svc.SetStatus(context.Background(), booking.ID, domain.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("expected transition to succeed, got %v", err)
	}
	if updated.Status != domain.BookingStatusCompleted {
		t.Errorf("expected status Completed, got %q", updated.Status)
	}
	if got := riderRepo.GetRider(1).Status; got != domain.RiderStatusAvailable {
		t.Errorf("expected rider released to Available, got %q", got)
	}
}

func TestSetStatus_RepeatedTerminalIsNoOp(t *testing.T) {
	svc, riderRepo, bookingRepo, _ := newLifecycleFixture()
	booking := mustBook(t, bookingRepo)

	if _, err := svc.SetStatus(context.Background(), booking.ID, domain.BookingStatusCompleted); err != nil {
		t.Fatalf("first transition: %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), booking.ID, domain.BookingStatusCompleted); err != nil {
		t.Fatalf("repeated transition: %v", err)
	}

	if got := riderRepo.GetRider(1).Status; got != domain.RiderStatusAvailable {
		t.Errorf("expected rider to stay Available, got %q", got)
	}
}

func TestSetStatus_CanceledReleasesRider(t *testing.T) {
	svc, riderRepo, bookingRepo, _ := newLifecycleFixture()
	booking := mustBook(t, bookingRepo)

	if _, err := svc.SetStatus(context.Background(), booking.ID, domain.BookingStatusCanceled); err != nil {
		t.Fatalf("expected transition to succeed, got %v", err)
	}
	if got := riderRepo.GetRider(1).Status; got != domain.RiderStatusAvailable {
		t.Errorf("expected rider released to Available, got %q", got)
	}
}

func TestSetStatus_InProgressKeepsRiderBusy(t *testing.T) {
	svc, riderRepo, bookingRepo, _ := newLifecycleFixture()
	booking := mustBook(t, bookingRepo)

	updated, err := svc.SetStatus(context.Background(), booking.ID, domain.BookingStatusInProgress)
	if err != nil {
		t.Fatalf("expected transition to succeed, got %v", err)
	}
	if updated.Status != domain.BookingStatusInProgress {
		t.Errorf("expected status In Progress, got %q", updated.Status)
	}
	if got := riderRepo.GetRider(1).Status; got != domain.RiderStatusBusy {
		t.Errorf("expected rider to stay Busy, got %q", got)
	}
}

func TestSetStatus_ArbitraryStatusAccepted(t *testing.T) {
	svc, _, bookingRepo, _ := newLifecycleFixture()
	booking := mustBook(t, bookingRepo)

	updated, err := svc.SetStatus(context.Background(), booking.ID, domain.BookingStatus("Waiting For Pickup"))
	if err != nil {
		t.Fatalf("expected arbitrary status to be accepted, got %v", err)
	}
	if string(updated.Status) != "Waiting For Pickup" {
		t.Errorf("expected status preserved verbatim, got %q", updated.Status)
	}
}

func TestSetStatus_UnknownBooking(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture()

	_, err := svc.SetStatus(context.Background(), 404, domain.BookingStatusCompleted)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStatus_CachesBetweenTransitions(t *testing.T) {
	svc, _, bookingRepo, cacheStore := newLifecycleFixture()
	booking := mustBook(t, bookingRepo)

	first, err := svc.GetStatus(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	second, err := svc.GetStatus(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("second read: %v", err)
	}

	if first.Status != second.Status || first.RiderID != second.RiderID || first.Fare != second.Fare {
		t.Errorf("expected identical reads between transitions, got %+v then %+v", first, second)
	}
	if cacheStore.HitCount != 1 {
		t.Errorf("expected second read to hit the cache, hits=%d", cacheStore.HitCount)
	}
}

func TestGetStatus_TransitionInvalidatesCache(t *testing.T) {
	svc, _, bookingRepo, cacheStore := newLifecycleFixture()
	booking := mustBook(t, bookingRepo)

	if _, err := svc.GetStatus(context.Background(), booking.ID); err != nil {
		t.Fatalf("warm read: %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), booking.ID, domain.BookingStatusInProgress); err != nil {
		t.Fatalf("transition: %v", err)
	}

	after, err := svc.GetStatus(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("read after transition: %v", err)
	}
	if after.Status != domain.BookingStatusInProgress {
		t.Errorf("expected fresh status after invalidation, got %q", after.Status)
	}
	if cacheStore.MissCount != 2 {
		t.Errorf("expected the post-transition read to miss the cache, misses=%d", cacheStore.MissCount)
	}
}

func TestGetStatus_WorksWithoutCache(t *testing.T) {
	riderRepo := NewMockRiderRepository()
	bookingRepo := NewMockBookingRepository(riderRepo)
	riderRepo.AddRider(&domain.Rider{ID: 1, UserID: 101, Status: domain.RiderStatusAvailable})
	svc := service.NewLifecycleService(bookingRepo, nil, nil)

	booking := mustBook(t, bookingRepo)

	got, err := svc.GetStatus(context.Background(), booking.ID)
	if err != nil {
		t.Fatalf("expected read to succeed without cache, got %v", err)
	}
	if got.ID != booking.ID {
		t.Errorf("expected booking %d, got %d", booking.ID, got.ID)
	}
}
