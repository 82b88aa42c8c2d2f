package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is one confirmed seat reservation. The row is inserted in the
// same transaction that flips the seat, so a booking always corresponds
// to a booked seat.
type Booking struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	BookingRef string    `json:"bookingRef" gorm:"type:varchar(16);uniqueIndex;not null"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	FlightID   uuid.UUID `json:"flightId" gorm:"type:uuid;not null;index"`
	SeatNumber string    `json:"seatNumber" gorm:"type:varchar(4);not null"`
	Price      float64   `json:"price" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Booking) TableName() string {
	return "bookings"
}
