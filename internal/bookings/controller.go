package bookings

import (
	"errors"
	"net/http"

	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// CreateBooking handles POST /api/v1/bookings
func (c *Controller) CreateBooking(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	booking, err := c.service.CreateBooking(ctx.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrSeatTaken):
			response.RespondError(ctx, http.StatusConflict, "SEAT_TAKEN", "Seat is already booked")
		case errors.Is(err, ErrFlightNotFound):
			response.RespondError(ctx, http.StatusNotFound, "FLIGHT_NOT_FOUND", "Flight not found")
		case errors.Is(err, ErrSeatNotFound):
			response.RespondError(ctx, http.StatusNotFound, "SEAT_NOT_FOUND", "Seat not found on this flight")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, "BOOKING_FAILED", "Failed to create booking")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Booking created successfully", booking, nil)
}

// GetMyBookings handles GET /api/v1/bookings/mybookings
func (c *Controller) GetMyBookings(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		response.RespondError(ctx, http.StatusUnauthorized, "AUTH_REQUIRED", "Authentication required")
		return
	}

	results, err := c.service.GetMyBookings(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load bookings")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Bookings retrieved successfully", results, nil)
}

func currentUserID(ctx *gin.Context) (uuid.UUID, bool) {
	raw, exists := ctx.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
