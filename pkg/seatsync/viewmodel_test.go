package seatsync

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot(flightID uuid.UUID) *Snapshot {
	return &Snapshot{
		FlightID: flightID,
		Seats: []SeatState{
			{SeatNumber: "1A", Booked: false, CabinClass: "BUSINESS"},
			{SeatNumber: "1B", Booked: true, CabinClass: "BUSINESS"},
			{SeatNumber: "3C", Booked: false, CabinClass: "ECONOMY"},
		},
	}
}

func TestSeatMapView_ApplySnapshot(t *testing.T) {
	flightID := uuid.New()
	view := NewSeatMapView(flightID)
	view.ApplySnapshot(testSnapshot(flightID))

	seats := view.Seats()
	require.Len(t, seats, 3)
	assert.Equal(t, "1A", seats[0].SeatNumber)
	assert.False(t, seats[0].Booked)
	assert.True(t, seats[1].Booked)

	seat, ok := view.Seat("3C")
	require.True(t, ok)
	assert.Equal(t, "ECONOMY", seat.CabinClass)
}

func TestSeatMapView_SnapshotReplacesPatchedState(t *testing.T) {
	flightID := uuid.New()
	view := NewSeatMapView(flightID)
	view.ApplySnapshot(testSnapshot(flightID))

	view.ApplyChange(SeatChange{FlightID: flightID, SeatNumber: "1A", Booked: true})
	seat, _ := view.Seat("1A")
	require.True(t, seat.Booked)

	// A fresh snapshot is authoritative and wins over the earlier patch.
	view.ApplySnapshot(testSnapshot(flightID))
	seat, _ = view.Seat("1A")
	assert.False(t, seat.Booked)
}

func TestSeatMapView_LastChangeWins(t *testing.T) {
	flightID := uuid.New()
	view := NewSeatMapView(flightID)
	view.ApplySnapshot(testSnapshot(flightID))

	view.ApplyChange(SeatChange{FlightID: flightID, SeatNumber: "1A", Booked: true})
	view.ApplyChange(SeatChange{FlightID: flightID, SeatNumber: "1A", Booked: false})
	view.ApplyChange(SeatChange{FlightID: flightID, SeatNumber: "1A", Booked: true})

	seat, _ := view.Seat("1A")
	assert.True(t, seat.Booked)
}

func TestSeatMapView_IgnoresOtherFlights(t *testing.T) {
	flightID := uuid.New()
	view := NewSeatMapView(flightID)
	view.ApplySnapshot(testSnapshot(flightID))

	view.ApplyChange(SeatChange{FlightID: uuid.New(), SeatNumber: "1A", Booked: true})

	seat, _ := view.Seat("1A")
	assert.False(t, seat.Booked)
}

func TestSeatMapView_DropsUnknownSeatFromEvent(t *testing.T) {
	flightID := uuid.New()
	view := NewSeatMapView(flightID)
	view.ApplySnapshot(testSnapshot(flightID))

	// The layout is fixed at snapshot time; an event for a label the
	// layout does not have must not conjure a phantom seat.
	view.ApplyChange(SeatChange{FlightID: flightID, SeatNumber: "9Z", Booked: true})

	_, ok := view.Seat("9Z")
	require.False(t, ok)
	assert.Len(t, view.Seats(), 3)
}
