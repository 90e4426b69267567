package service

// Per-kilometer rates by distance tier.
const (
	rateSingleKm = 10000
	rateShortKm  = 15000
	rateLongKm   = 12000
)

// Fare computes the fare for a trip of the given distance. Short trips pay a
// premium rate, long trips a discounted one. Pure over positive distances;
// callers reject non-positive distances before getting here.
func Fare(distanceKm int) int64 {
	km := int64(distanceKm)
	switch {
	case distanceKm == 1:
		return km * rateSingleKm
	case distanceKm <= 4:
		return km * rateShortKm
	default:
		return km * rateLongKm
	}
}
