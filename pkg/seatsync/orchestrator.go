package seatsync

import (
	"context"
	"errors"
	"fmt"
)

// Orchestrator drives a reservation attempt against the inventory and
// applies the authoritative answer to the local state. Exactly one attempt
// per Confirm call; there is no retry, the caller decides what happens
// after a failure.
type Orchestrator struct {
	inventory InventoryGateway
	tokens    TokenProvider
}

func NewOrchestrator(inventory InventoryGateway, tokens TokenProvider) *Orchestrator {
	return &Orchestrator{inventory: inventory, tokens: tokens}
}

// Confirm reserves the currently selected seat.
//
// Without an identity it fails with ErrAuthRequired before touching the
// inventory, and the selection stays where it was. Otherwise the selection
// moves to Pending for the duration of the single attempt and settles to
// Confirmed or Rejected from the response. A Rejected selection cannot be
// retried in place: Begin refuses it, so the seat has to be selected again
// (which re-validates it against the current seat map) before the inventory
// is contacted.
func (o *Orchestrator) Confirm(ctx context.Context, view *SeatMapView, sel *Selection) (*Reservation, error) {
	if sel.State() == Unselected {
		return nil, ErrNothingSelected
	}

	token, ok := o.tokens.Token()
	if !ok {
		return nil, ErrAuthRequired
	}

	if err := sel.Begin(); err != nil {
		return nil, err
	}
	seat := sel.Seat()

	reservation, err := o.inventory.Reserve(ctx, view.FlightID(), seat, token)
	if err != nil {
		err = normalizeReserveError(err)
		sel.Fail(err)

		// A conflict is authoritative: the seat is booked, just not by us.
		if errors.Is(err, ErrSeatAlreadyTaken) {
			view.MarkBooked(seat)
		}
		return nil, err
	}

	sel.Succeed()
	view.MarkBooked(seat)
	return reservation, nil
}

// normalizeReserveError folds transport-level failures into the taxonomy.
// Timeouts and cancellations carry no authoritative answer, so they map to
// ErrRequestFailed and leave the seat map alone.
func normalizeReserveError(err error) error {
	switch {
	case errors.Is(err, ErrSeatAlreadyTaken),
		errors.Is(err, ErrFlightNotFound),
		errors.Is(err, ErrValidation),
		errors.Is(err, ErrAuthRequired),
		errors.Is(err, ErrRequestFailed):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	default:
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
}
