package seatsync

import (
	"log/slog"

	"skybook/pkg/logger"

	"github.com/google/uuid"
)

// SeatMapView is the reconciled local picture of one flight's seats. It is
// built from full snapshots and patched by change events; whichever arrives
// last wins for a given seat.
//
// SeatMapView is not safe for concurrent use. A Session owns one and
// serializes all access through its run loop.
type SeatMapView struct {
	flightID uuid.UUID
	order    []string
	seats    map[string]SeatState
	log      *logger.Logger
}

func NewSeatMapView(flightID uuid.UUID) *SeatMapView {
	return &SeatMapView{
		flightID: flightID,
		seats:    make(map[string]SeatState),
		log:      logger.GetDefault(),
	}
}

func (v *SeatMapView) FlightID() uuid.UUID {
	return v.flightID
}

// ApplySnapshot replaces the whole view. Snapshots are authoritative; any
// state patched in by earlier change events is discarded.
func (v *SeatMapView) ApplySnapshot(snapshot *Snapshot) {
	v.order = v.order[:0]
	v.seats = make(map[string]SeatState, len(snapshot.Seats))
	for _, seat := range snapshot.Seats {
		v.order = append(v.order, seat.SeatNumber)
		v.seats[seat.SeatNumber] = seat
	}
}

// ApplyChange patches one seat. Events for other flights are ignored. An
// event naming a seat the layout does not have is logged and dropped: the
// layout is fixed at snapshot time and phantom seats never enter the map.
func (v *SeatMapView) ApplyChange(change SeatChange) {
	if change.FlightID != v.flightID {
		return
	}

	seat, ok := v.seats[change.SeatNumber]
	if !ok {
		v.log.Warn("dropping change event for unknown seat",
			slog.String("flight_id", change.FlightID.String()),
			slog.String("seat_number", change.SeatNumber))
		return
	}
	seat.Booked = change.Booked
	v.seats[change.SeatNumber] = seat
}

// Seat returns the current state of one seat.
func (v *SeatMapView) Seat(seatNumber string) (SeatState, bool) {
	seat, ok := v.seats[seatNumber]
	return seat, ok
}

// Seats returns all seats in layout order. The slice is a copy.
func (v *SeatMapView) Seats() []SeatState {
	out := make([]SeatState, 0, len(v.order))
	for _, number := range v.order {
		out = append(out, v.seats[number])
	}
	return out
}

// MarkBooked records an authoritative booked state learned outside the
// change feed, typically from a reserve response.
func (v *SeatMapView) MarkBooked(seatNumber string) {
	v.ApplyChange(SeatChange{
		FlightID:   v.flightID,
		SeatNumber: seatNumber,
		Booked:     true,
	})
}
