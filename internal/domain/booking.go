package domain

// BookingStatus represents the lifecycle state of a booking.
//
// Transitions are deliberately unrestricted: any status string persisted by a
// caller is accepted, matching the existing API contract. Only the two
// terminal statuses carry a side effect (releasing the assigned rider).
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "Pending"
	BookingStatusInProgress BookingStatus = "In Progress"
	BookingStatusCompleted  BookingStatus = "Completed"
	BookingStatusCanceled   BookingStatus = "Canceled"
)

// Terminal reports whether the status ends the booking's lifecycle.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCanceled
}

// Booking represents a dispatched ride request. RiderID is 0 when the
// assigned rider record has since been removed.
type Booking struct {
	ID         int64
	UserID     int64
	RiderID    int64
	Status     BookingStatus
	DistanceKm int
	Fare       int64
}
