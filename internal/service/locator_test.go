package service

import (
	"testing"

	"dispatch/internal/domain"
)

func availableRiders(ids ...int64) []*domain.Rider {
	riders := make([]*domain.Rider, 0, len(ids))
	for _, id := range ids {
		riders = append(riders, &domain.Rider{ID: id, Status: domain.RiderStatusAvailable})
	}
	return riders
}

func TestLocate_PicksNearestRider(t *testing.T) {
	locator := NewRiderLocator(NewMatrixDistanceSource(DefaultDistanceMatrix()))

	// Row for user 1: rider 4 at 4km is the minimum.
	riderID, ok := locator.Locate(1, availableRiders(1, 2, 3, 4, 5))
	if !ok {
		t.Fatal("expected a rider to be located")
	}
	if riderID != 4 {
		t.Errorf("expected rider 4, got %d", riderID)
	}
}

func TestLocate_SkipsUnavailableRiders(t *testing.T) {
	locator := NewRiderLocator(NewMatrixDistanceSource(DefaultDistanceMatrix()))

	// Without rider 4 in the snapshot, user 1's next nearest is rider 2 (5km).
	riderID, ok := locator.Locate(1, availableRiders(1, 2, 3, 5))
	if !ok {
		t.Fatal("expected a rider to be located")
	}
	if riderID != 2 {
		t.Errorf("expected rider 2, got %d", riderID)
	}
}

func TestLocate_TieBreaksToLowestID(t *testing.T) {
	locator := NewRiderLocator(NewMatrixDistanceSource(map[[2]int64]int{
		{7, 3}: 2,
		{7, 1}: 2,
		{7, 2}: 2,
		{7, 9}: 5,
	}))

	// Snapshot order must not matter.
	riderID, ok := locator.Locate(7, availableRiders(9, 3, 2, 1))
	if !ok {
		t.Fatal("expected a rider to be located")
	}
	if riderID != 1 {
		t.Errorf("expected tie to break to rider 1, got %d", riderID)
	}
}

func TestLocate_EmptySnapshot(t *testing.T) {
	locator := NewRiderLocator(NewMatrixDistanceSource(DefaultDistanceMatrix()))

	if _, ok := locator.Locate(1, nil); ok {
		t.Error("expected no rider for empty snapshot")
	}
}

func TestLocate_AllDistancesUnknown(t *testing.T) {
	locator := NewRiderLocator(NewMatrixDistanceSource(DefaultDistanceMatrix()))

	// User 42 has no row in the matrix: every rider is unreachable.
	if _, ok := locator.Locate(42, availableRiders(1, 2, 3, 4, 5)); ok {
		t.Error("expected no rider when all pair distances are unknown")
	}
}
