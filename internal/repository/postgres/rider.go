package postgres

import (
	"context"
	"database/sql"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// RiderRepository is a PostgreSQL implementation of repository.RiderRepository.
type RiderRepository struct {
	q Querier
}

// NewRiderRepository creates a new PostgreSQL rider repository.
func NewRiderRepository(db *sql.DB) *RiderRepository {
	return &RiderRepository{q: db}
}

// NewRiderRepositoryWithTx creates a rider repository using a transaction.
func NewRiderRepositoryWithTx(tx *sql.Tx) *RiderRepository {
	return &RiderRepository{q: tx}
}

// Create persists a new rider and fills in the generated ID.
func (r *RiderRepository) Create(ctx context.Context, rider *domain.Rider) error {
	query := `
		INSERT INTO riders (user_id, vehicle_type, license_plate, status)
		VALUES ($1, $2, $3, $4) RETURNING id
	`

	err := r.q.QueryRowContext(ctx, query,
		rider.UserID,
		rider.VehicleType,
		rider.LicensePlate,
		rider.Status,
	).Scan(&rider.ID)

	return mapError(err)
}

// GetByID retrieves a rider by ID.
func (r *RiderRepository) GetByID(ctx context.Context, id int64) (*domain.Rider, error) {
	query := `SELECT id, user_id, vehicle_type, license_plate, status FROM riders WHERE id = $1`

	var rider domain.Rider
	err := r.q.QueryRowContext(ctx, query, id).Scan(
		&rider.ID,
		&rider.UserID,
		&rider.VehicleType,
		&rider.LicensePlate,
		&rider.Status,
	)
	if err != nil {
		return nil, mapError(err)
	}

	return &rider, nil
}

// GetAvailable retrieves a snapshot of all riders currently Available.
func (r *RiderRepository) GetAvailable(ctx context.Context) ([]*domain.Rider, error) {
	query := `
		SELECT id, user_id, vehicle_type, license_plate, status
		FROM riders WHERE status = $1 ORDER BY id
	`

	return r.queryRiders(ctx, query, domain.RiderStatusAvailable)
}

// GetAll retrieves all riders.
func (r *RiderRepository) GetAll(ctx context.Context) ([]*domain.Rider, error) {
	query := `SELECT id, user_id, vehicle_type, license_plate, status FROM riders ORDER BY id`

	return r.queryRiders(ctx, query)
}

func (r *RiderRepository) queryRiders(ctx context.Context, query string, args ...any) ([]*domain.Rider, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var riders []*domain.Rider
	for rows.Next() {
		var rider domain.Rider
		if err := rows.Scan(&rider.ID, &rider.UserID, &rider.VehicleType, &rider.LicensePlate, &rider.Status); err != nil {
			return nil, err
		}
		riders = append(riders, &rider)
	}
	return riders, rows.Err()
}

// UpdateStatus sets a rider's status unconditionally.
func (r *RiderRepository) UpdateStatus(ctx context.Context, id int64, status domain.RiderStatus) error {
	query := `UPDATE riders SET status = $1 WHERE id = $2`

	result, err := r.q.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// UpdateStatusIf flips a rider's status only when the current status matches
// from. A zero row count means the precondition failed (or the rider is
// gone); the caller decides what to do with the lost claim.
func (r *RiderRepository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.RiderStatus) (bool, error) {
	query := `UPDATE riders SET status = $1 WHERE id = $2 AND status = $3`

	result, err := r.q.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}
