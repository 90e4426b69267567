package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dispatch/internal/repository"
	"dispatch/internal/service"
)

// AdminHandler handles the admin-only management endpoints.
type AdminHandler struct {
	userService *service.UserService
	riderRepo   repository.RiderRepository
	bookingRepo repository.BookingRepository
	userRepo    repository.UserRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	userService *service.UserService,
	userRepo repository.UserRepository,
	riderRepo repository.RiderRepository,
	bookingRepo repository.BookingRepository,
) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		userRepo:    userRepo,
		riderRepo:   riderRepo,
		bookingRepo: bookingRepo,
	}
}

// UpdateUserRequest is the HTTP request body for an admin user update.
type UpdateUserRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone_number" binding:"required"`
	IsAdmin bool   `json:"is_admin"`
}

// GetUsers handles GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	users, err := h.userRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, toUserResponse(u))
	}

	c.JSON(http.StatusOK, response)
}

// GetRiders handles GET /admin/riders
func (h *AdminHandler) GetRiders(c *gin.Context) {
	riders, err := h.riderRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]RiderResponse, 0, len(riders))
	for _, r := range riders {
		response = append(response, toRiderResponse(r))
	}

	c.JSON(http.StatusOK, response)
}

// GetRides handles GET /admin/rides
func (h *AdminHandler) GetRides(c *gin.Context) {
	bookings, err := h.bookingRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, toBookingResponse(b))
	}

	c.JSON(http.StatusOK, response)
}

// UpdateUser handles PATCH /admin/users/:id
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, err := parseID(c)
	if err != nil {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.userService.Update(c.Request.Context(), userID, service.UpdateUserRequest{
		Name:    req.Name,
		Phone:   req.Phone,
		IsAdmin: req.IsAdmin,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}
