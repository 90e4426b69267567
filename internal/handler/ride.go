package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

// RideHandler handles HTTP requests for booking and tracking rides.
type RideHandler struct {
	dispatchService  *service.DispatchService
	lifecycleService *service.LifecycleService
}

// NewRideHandler creates a new RideHandler.
func NewRideHandler(dispatchService *service.DispatchService, lifecycleService *service.LifecycleService) *RideHandler {
	return &RideHandler{
		dispatchService:  dispatchService,
		lifecycleService: lifecycleService,
	}
}

// BookRideRequest is the HTTP request body for booking a ride.
type BookRideRequest struct {
	UserID     int64 `json:"user_id" binding:"required"`
	DistanceKm int   `json:"distance" binding:"required"`
}

// RideStatusRequest is the HTTP request body for a status transition.
type RideStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingResponse is the HTTP response for booking data.
type BookingResponse struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"user_id"`
	RiderID    int64  `json:"rider_id"`
	Status     string `json:"status"`
	DistanceKm int    `json:"distance"`
	Fare       int64  `json:"fare"`
}

func toBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:         booking.ID,
		UserID:     booking.UserID,
		RiderID:    booking.RiderID,
		Status:     string(booking.Status),
		DistanceKm: booking.DistanceKm,
		Fare:       booking.Fare,
	}
}

// Book handles POST /rides/book
func (h *RideHandler) Book(c *gin.Context) {
	var req BookRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.dispatchService.BookRide(c.Request.Context(), req.UserID, req.DistanceKm)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

// SetStatus handles PATCH /rides/:id/status
func (h *RideHandler) SetStatus(c *gin.Context) {
	bookingID, err := parseID(c)
	if err != nil {
		return
	}

	var req RideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	booking, err := h.lifecycleService.SetStatus(c.Request.Context(), bookingID, domain.BookingStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

// GetStatus handles GET /rides/:id/status
func (h *RideHandler) GetStatus(c *gin.Context) {
	bookingID, err := parseID(c)
	if err != nil {
		return
	}

	booking, err := h.lifecycleService.GetStatus(c.Request.Context(), bookingID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}
