package seatsync

import (
	"context"

	"github.com/google/uuid"
)

// SeatState is one seat as the inventory reports it.
type SeatState struct {
	SeatNumber string `json:"seatNumber"`
	Booked     bool   `json:"isBooked"`
	CabinClass string `json:"cabinClass"`
}

// Snapshot is a complete, point-in-time seat map for one flight.
type Snapshot struct {
	FlightID uuid.UUID
	Seats    []SeatState
}

// SeatChange is one seat flipping state, delivered by the change feed.
type SeatChange struct {
	FlightID   uuid.UUID `json:"flightId"`
	SeatNumber string    `json:"seatNumber"`
	Booked     bool      `json:"isBooked"`
}

// Reservation is the authoritative record returned by a successful reserve.
type Reservation struct {
	BookingRef string
	SeatNumber string
	Price      float64
}

// InventoryGateway talks to the authoritative seat inventory.
//
// FetchSnapshot returns ErrFlightNotFound for an unknown flight and
// ErrFetchFailed for anything else. Reserve makes exactly one attempt and
// returns ErrSeatAlreadyTaken, ErrValidation or ErrRequestFailed.
type InventoryGateway interface {
	FetchSnapshot(ctx context.Context, flightID uuid.UUID) (*Snapshot, error)
	Reserve(ctx context.Context, flightID uuid.UUID, seatNumber, token string) (*Reservation, error)
}

// Subscription is an open change feed for one flight. The receiver owns it
// and must Close it when done; Events is closed when the feed ends.
type Subscription interface {
	Events() <-chan SeatChange
	Close() error
}

// ChangeFeed opens live seat-change subscriptions.
type ChangeFeed interface {
	Subscribe(ctx context.Context, flightID uuid.UUID) (Subscription, error)
}

// TokenProvider supplies the caller's identity. No identity means
// reservations fail with ErrAuthRequired before any network traffic.
type TokenProvider interface {
	Token() (string, bool)
}

// StaticToken is a TokenProvider for a fixed credential. The zero value
// reports no identity.
type StaticToken string

func (t StaticToken) Token() (string, bool) {
	return string(t), t != ""
}
