package service

// DistanceSource reports the distance in kilometers between a requesting
// user and a rider. It stands in for a real geospatial index: swapping the
// implementation changes rider selection without touching the dispatch
// engine.
type DistanceSource interface {
	// Distance returns the distance between user and rider. ok is false
	// when the pair is unknown, which the locator treats as unreachable.
	Distance(userID, riderID int64) (km int, ok bool)
}

type pair struct {
	userID  int64
	riderID int64
}

// MatrixDistanceSource serves distances from a fixed in-memory table.
type MatrixDistanceSource struct {
	distances map[pair]int
}

// NewMatrixDistanceSource creates a distance source over the given table.
func NewMatrixDistanceSource(table map[[2]int64]int) *MatrixDistanceSource {
	distances := make(map[pair]int, len(table))
	for k, km := range table {
		distances[pair{userID: k[0], riderID: k[1]}] = km
	}
	return &MatrixDistanceSource{distances: distances}
}

// Distance implements DistanceSource.
func (m *MatrixDistanceSource) Distance(userID, riderID int64) (int, bool) {
	km, ok := m.distances[pair{userID: userID, riderID: riderID}]
	return km, ok
}

// DefaultDistanceMatrix returns the built-in 5x5 user-to-rider distance
// table used until a real geo index is plugged in.
func DefaultDistanceMatrix() map[[2]int64]int {
	return map[[2]int64]int{
		{1, 1}: 8, {1, 2}: 5, {1, 3}: 7, {1, 4}: 4, {1, 5}: 6,
		{2, 1}: 3, {2, 2}: 6, {2, 3}: 9, {2, 4}: 2, {2, 5}: 8,
		{3, 1}: 5, {3, 2}: 2, {3, 3}: 4, {3, 4}: 7, {3, 5}: 3,
		{4, 1}: 6, {4, 2}: 9, {4, 3}: 1, {4, 4}: 5, {4, 5}: 2,
		{5, 1}: 7, {5, 2}: 4, {5, 3}: 8, {5, 4}: 3, {5, 5}: 1,
	}
}
