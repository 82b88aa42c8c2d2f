package seatsync

import "errors"

// SelectionState is the lifecycle of the user's current seat choice.
type SelectionState string

const (
	// Unselected means no seat is chosen.
	Unselected SelectionState = "UNSELECTED"
	// Selected means a seat is chosen locally but not yet sent anywhere.
	Selected SelectionState = "SELECTED"
	// Pending means a reservation attempt is in flight.
	Pending SelectionState = "PENDING"
	// Confirmed means the inventory accepted the reservation.
	Confirmed SelectionState = "CONFIRMED"
	// Rejected means the last attempt failed; the cause is kept.
	Rejected SelectionState = "REJECTED"
)

var (
	// ErrConfirmInFlight means the selection cannot change while a
	// reservation attempt is outstanding.
	ErrConfirmInFlight = errors.New("confirmation in flight")

	// ErrAlreadyConfirmed means the selection is final.
	ErrAlreadyConfirmed = errors.New("seat already confirmed")

	// ErrNothingSelected means there is no seat to act on.
	ErrNothingSelected = errors.New("no seat selected")

	// ErrReselectRequired means the last attempt was rejected and the
	// seat must be chosen again before another attempt.
	ErrReselectRequired = errors.New("selection rejected, choose a seat again")
)

// Selection holds at most one seat and tracks its confirmation lifecycle.
// Like SeatMapView it is single-owner state, serialized by the Session.
type Selection struct {
	state  SelectionState
	seat   string
	reason error
}

func NewSelection() *Selection {
	return &Selection{state: Unselected}
}

func (s *Selection) State() SelectionState { return s.state }

// Seat returns the selected seat number, empty when Unselected.
func (s *Selection) Seat() string { return s.seat }

// Reason returns the failure that moved the selection to Rejected.
func (s *Selection) Reason() error { return s.reason }

// Select chooses a seat, replacing any previous choice. Picking the seat
// that is already selected is a no-op.
func (s *Selection) Select(seatNumber string) error {
	switch s.state {
	case Pending:
		return ErrConfirmInFlight
	case Confirmed:
		return ErrAlreadyConfirmed
	}
	s.state = Selected
	s.seat = seatNumber
	s.reason = nil
	return nil
}

// Deselect clears the current choice.
func (s *Selection) Deselect() error {
	switch s.state {
	case Pending:
		return ErrConfirmInFlight
	case Confirmed:
		return ErrAlreadyConfirmed
	case Unselected:
		return nil
	}
	s.state = Unselected
	s.seat = ""
	s.reason = nil
	return nil
}

// Begin marks the start of a reservation attempt. Only a Selected seat may
// enter Pending: a Rejected choice must go through Select again, which
// re-validates it against the current seat map.
func (s *Selection) Begin() error {
	switch s.state {
	case Unselected:
		return ErrNothingSelected
	case Pending:
		return ErrConfirmInFlight
	case Confirmed:
		return ErrAlreadyConfirmed
	case Rejected:
		return ErrReselectRequired
	}
	s.state = Pending
	s.reason = nil
	return nil
}

// Succeed records an accepted reservation.
func (s *Selection) Succeed() {
	if s.state != Pending {
		return
	}
	s.state = Confirmed
}

// Fail records a failed attempt. The seat stays chosen so the caller can
// show what was rejected and why.
func (s *Selection) Fail(reason error) {
	if s.state != Pending {
		return
	}
	s.state = Rejected
	s.reason = reason
}

// Revert drops the selection because the seat was booked by someone else.
// A Pending attempt is left alone: its own authoritative response settles
// it. A Confirmed seat is ours, so the event is not about losing it.
func (s *Selection) Revert(seatNumber string) bool {
	if s.seat != seatNumber {
		return false
	}
	switch s.state {
	case Selected, Rejected:
		s.state = Unselected
		s.seat = ""
		s.reason = nil
		return true
	}
	return false
}
