package domain

// RiderStatus represents the current availability of a rider.
type RiderStatus string

const (
	RiderStatusAvailable RiderStatus = "Available"
	RiderStatusBusy      RiderStatus = "Busy"
)

// Valid reports whether s is one of the known rider statuses.
func (s RiderStatus) Valid() bool {
	return s == RiderStatusAvailable || s == RiderStatusBusy
}

// Rider represents a driver account attached to a user. Status is a cached
// field: it is Busy exactly while the rider is bound to a non-terminal
// booking, except when changed through the administrative override.
type Rider struct {
	ID           int64
	UserID       int64
	VehicleType  string
	LicensePlate string
	Status       RiderStatus
}
