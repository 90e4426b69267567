package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"dispatch/internal/domain"
	"dispatch/internal/service"
)

// RiderHandler handles HTTP requests for riders.
type RiderHandler struct {
	riderService *service.RiderService
}

// NewRiderHandler creates a new RiderHandler.
func NewRiderHandler(riderService *service.RiderService) *RiderHandler {
	return &RiderHandler{riderService: riderService}
}

// RegisterRiderRequest is the HTTP request body for rider registration.
// A status field sent by the caller is ignored: riders always start Available.
type RegisterRiderRequest struct {
	UserID       int64  `json:"user_id" binding:"required"`
	VehicleType  string `json:"vehicle_type" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required"`
}

// RiderStatusRequest is the HTTP request body for a rider status override.
type RiderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// RiderResponse is the HTTP response for rider data.
type RiderResponse struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	VehicleType  string `json:"vehicle_type"`
	LicensePlate string `json:"license_plate"`
	Status       string `json:"status"`
}

func toRiderResponse(rider *domain.Rider) RiderResponse {
	return RiderResponse{
		ID:           rider.ID,
		UserID:       rider.UserID,
		VehicleType:  rider.VehicleType,
		LicensePlate: rider.LicensePlate,
		Status:       string(rider.Status),
	}
}

// Register handles POST /riders/register
func (h *RiderHandler) Register(c *gin.Context) {
	var req RegisterRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rider, err := h.riderService.Register(c.Request.Context(), service.RegisterRiderRequest{
		UserID:       req.UserID,
		VehicleType:  req.VehicleType,
		LicensePlate: req.LicensePlate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toRiderResponse(rider))
}

// Get handles GET /riders/:id
func (h *RiderHandler) Get(c *gin.Context) {
	riderID, err := parseID(c)
	if err != nil {
		return
	}

	rider, err := h.riderService.Get(c.Request.Context(), riderID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRiderResponse(rider))
}

// SetStatus handles PATCH /riders/:id/status
func (h *RiderHandler) SetStatus(c *gin.Context) {
	riderID, err := parseID(c)
	if err != nil {
		return
	}

	var req RiderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	rider, err := h.riderService.OverrideStatus(c.Request.Context(), riderID, domain.RiderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRiderResponse(rider))
}

// parseID parses the :id path parameter, writing a 400 on failure.
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, err
	}
	return id, nil
}
