package postgres

import (
	"context"
	"database/sql"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// BookingRepository is a PostgreSQL implementation of repository.BookingRepository.
type BookingRepository struct {
	db *sql.DB
	q  Querier
}

// NewBookingRepository creates a new PostgreSQL booking repository.
func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db, q: db}
}

// CreateAssigned persists booking in state Pending and flips its rider from
// Available to Busy in a single transaction. The conditional rider update is
// the claim: when it affects zero rows another booking won the rider first,
// and the transaction is rolled back with nothing written.
func (r *BookingRepository) CreateAssigned(ctx context.Context, booking *domain.Booking) (claimed bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	txRiderRepo := NewRiderRepositoryWithTx(tx)

	claimed, err = txRiderRepo.UpdateStatusIf(ctx, booking.RiderID, domain.RiderStatusAvailable, domain.RiderStatusBusy)
	if err != nil {
		return false, err
	}
	if !claimed {
		_ = tx.Rollback()
		return false, nil
	}

	query := `
		INSERT INTO bookings (user_id, rider_id, status, distance, fare)
		VALUES ($1, $2, $3, $4, $5) RETURNING id
	`

	err = tx.QueryRowContext(ctx, query,
		booking.UserID,
		booking.RiderID,
		booking.Status,
		booking.DistanceKm,
		booking.Fare,
	).Scan(&booking.ID)
	if err != nil {
		return false, mapError(err)
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}

	return true, nil
}

// GetByID retrieves a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT id, user_id, rider_id, status, distance, fare FROM bookings WHERE id = $1`

	return scanBooking(r.q.QueryRowContext(ctx, query, id))
}

// GetAll retrieves all bookings.
func (r *BookingRepository) GetAll(ctx context.Context) ([]*domain.Booking, error) {
	query := `SELECT id, user_id, rider_id, status, distance, fare FROM bookings ORDER BY id`

	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		var booking domain.Booking
		var riderID sql.NullInt64
		if err := rows.Scan(&booking.ID, &booking.UserID, &riderID, &booking.Status, &booking.DistanceKm, &booking.Fare); err != nil {
			return nil, err
		}
		if riderID.Valid {
			booking.RiderID = riderID.Int64
		}
		bookings = append(bookings, &booking)
	}
	return bookings, rows.Err()
}

// SetStatus updates a booking's status and, when the new status is terminal,
// sets the assigned rider back to Available in the same transaction. A
// booking whose rider record was removed skips the release.
func (r *BookingRepository) SetStatus(ctx context.Context, id int64, status domain.BookingStatus) (booking *domain.Booking, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
		UPDATE bookings SET status = $1 WHERE id = $2
		RETURNING id, user_id, rider_id, status, distance, fare
	`

	booking, err = scanBooking(tx.QueryRowContext(ctx, query, status, id))
	if err != nil {
		return nil, err
	}

	if status.Terminal() && booking.RiderID != 0 {
		txRiderRepo := NewRiderRepositoryWithTx(tx)
		// Unconditional release: a rider already Available stays Available.
		if err = txRiderRepo.UpdateStatus(ctx, booking.RiderID, domain.RiderStatusAvailable); err != nil {
			if err != repository.ErrNotFound {
				return nil, err
			}
			// Rider removed since assignment; nothing to release.
			err = nil
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return booking, nil
}

// rowScanner is satisfied by *sql.Row and lets scanBooking serve both
// QueryRowContext call sites.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var riderID sql.NullInt64

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&riderID,
		&booking.Status,
		&booking.DistanceKm,
		&booking.Fare,
	)
	if err != nil {
		return nil, mapError(err)
	}

	if riderID.Valid {
		booking.RiderID = riderID.Int64
	}

	return &booking, nil
}
