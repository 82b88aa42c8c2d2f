package bookings

import "github.com/google/uuid"

// CreateBookingRequest reserves one seat on one flight.
type CreateBookingRequest struct {
	FlightID   uuid.UUID `json:"flightId" binding:"required"`
	SeatNumber string    `json:"seatNumber" binding:"required,max=4"`
}
