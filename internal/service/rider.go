package service

import (
	"context"
	"errors"

	"dispatch/internal/domain"
	"dispatch/internal/repository"
)

// RiderService manages rider records and their availability status.
type RiderService struct {
	riderRepo repository.RiderRepository
}

// NewRiderService creates a new RiderService.
func NewRiderService(riderRepo repository.RiderRepository) *RiderService {
	return &RiderService{riderRepo: riderRepo}
}

// RegisterRiderRequest contains the parameters for registering a rider.
type RegisterRiderRequest struct {
	UserID       int64
	VehicleType  string
	LicensePlate string
}

// Register creates a new rider. Status is always Available on creation,
// regardless of what the caller sent.
func (s *RiderService) Register(ctx context.Context, req RegisterRiderRequest) (*domain.Rider, error) {
	rider := &domain.Rider{
		UserID:       req.UserID,
		VehicleType:  req.VehicleType,
		LicensePlate: req.LicensePlate,
		Status:       domain.RiderStatusAvailable,
	}

	if err := s.riderRepo.Create(ctx, rider); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPlateTaken
		}
		return nil, err
	}

	return rider, nil
}

// Get retrieves a rider by ID.
func (s *RiderService) Get(ctx context.Context, riderID int64) (*domain.Rider, error) {
	return s.riderRepo.GetByID(ctx, riderID)
}

// OverrideStatus forces a rider's status, bypassing the booking lifecycle
// entirely. This is the administrative escape hatch: it can leave the cached
// status out of sync with booking state, and that is accepted.
func (s *RiderService) OverrideStatus(ctx context.Context, riderID int64, status domain.RiderStatus) (*domain.Rider, error) {
	if !status.Valid() {
		return nil, ErrInvalidRiderStatus
	}

	if err := s.riderRepo.UpdateStatus(ctx, riderID, status); err != nil {
		return nil, err
	}

	return s.riderRepo.GetByID(ctx, riderID)
}
