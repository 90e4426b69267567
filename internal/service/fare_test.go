package service

import "testing"

func TestFare_Tiers(t *testing.T) {
	tests := []struct {
		distanceKm int
		want       int64
	}{
		{1, 10000},
		{2, 30000},
		{3, 45000},
		{4, 60000},
		{5, 60000},
		{10, 120000},
		{100, 1200000},
	}

	for _, tt := range tests {
		if got := Fare(tt.distanceKm); got != tt.want {
			t.Errorf("Fare(%d) = %d, want %d", tt.distanceKm, got, tt.want)
		}
	}
}

func TestFare_TierBoundary(t *testing.T) {
	// The short tier's premium rate makes a 4km trip cost the same as a
	// 5km one at the discounted long rate.
	if Fare(4) != Fare(5) {
		t.Errorf("expected fare(4) == fare(5), got %d and %d", Fare(4), Fare(5))
	}
}
