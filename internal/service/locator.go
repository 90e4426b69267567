package service

import "dispatch/internal/domain"

// RiderLocator picks the nearest rider for a requesting user from a
// snapshot of available riders.
type RiderLocator struct {
	distances DistanceSource
}

// NewRiderLocator creates a locator backed by the given distance source.
func NewRiderLocator(distances DistanceSource) *RiderLocator {
	return &RiderLocator{distances: distances}
}

// Locate returns the ID of the available rider closest to the user. Riders
// with no known distance are skipped. Equal distances break to the lowest
// rider ID so selection is reproducible regardless of snapshot order.
// Returns false when no rider is reachable.
func (l *RiderLocator) Locate(userID int64, available []*domain.Rider) (int64, bool) {
	var (
		nearestID   int64
		minDistance int
		found       bool
	)

	for _, rider := range available {
		km, ok := l.distances.Distance(userID, rider.ID)
		if !ok {
			continue
		}
		if !found || km < minDistance || (km == minDistance && rider.ID < nearestID) {
			nearestID = rider.ID
			minDistance = km
			found = true
		}
	}

	return nearestID, found
}
