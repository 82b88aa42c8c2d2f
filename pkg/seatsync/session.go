package seatsync

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"
)

// ErrSessionClosed means the session's run loop has stopped.
var ErrSessionClosed = errors.New("session closed")

// Session is one user's live view of one flight's seat map. It owns a
// SeatMapView, a Selection and the change-feed subscription, and serializes
// every touch of that state through a single run goroutine. All exported
// methods are safe for concurrent use after a successful Start.
type Session struct {
	inventory InventoryGateway
	feed      ChangeFeed
	orch      *Orchestrator

	view    *SeatMapView
	sel     *Selection
	sub     Subscription
	live    bool
	feedErr error

	started  atomic.Bool
	commands chan func()
	closed   chan struct{}
	cancel   context.CancelFunc
}

func NewSession(inventory InventoryGateway, feed ChangeFeed, tokens TokenProvider) *Session {
	return &Session{
		inventory: inventory,
		feed:      feed,
		orch:      NewOrchestrator(inventory, tokens),
		sel:       NewSelection(),
		commands:  make(chan func()),
		closed:    make(chan struct{}),
	}
}

// Start loads the snapshot and opens the change feed, then begins the run
// loop. An unknown flight fails with ErrFlightNotFound and nothing is
// subscribed. A failed subscription does not fail the start: the seat map
// still works from the snapshot, Live reports false and LastFeedError
// reports the cause.
func (s *Session) Start(ctx context.Context, flightID uuid.UUID) error {
	snapshot, err := s.inventory.FetchSnapshot(ctx, flightID)
	if err != nil {
		return err
	}

	s.view = NewSeatMapView(flightID)
	s.view.ApplySnapshot(snapshot)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	sub, err := s.feed.Subscribe(runCtx, flightID)
	if err != nil {
		s.feedErr = err
	} else {
		s.sub = sub
		s.live = true
	}

	s.started.Store(true)
	go s.run(runCtx)
	return nil
}

func (s *Session) run(ctx context.Context) {
	defer func() {
		if s.sub != nil {
			s.sub.Close()
		}
		close(s.closed)
	}()

	var events <-chan SeatChange
	if s.sub != nil {
		events = s.sub.Events()
	}

	for {
		select {
		case <-ctx.Done():
			return

		case cmd := <-s.commands:
			cmd()

		case change, ok := <-events:
			if !ok {
				// Feed ended; keep serving from local state.
				events = nil
				s.live = false
				s.feedErr = ErrChannelUnavailable
				continue
			}
			s.apply(change)
		}
	}
}

// apply folds one change event into the view and drops the selection if
// someone else took the selected seat.
func (s *Session) apply(change SeatChange) {
	s.view.ApplyChange(change)
	if change.Booked && s.sel.State() != Confirmed {
		s.sel.Revert(change.SeatNumber)
	}
}

// do runs fn on the run goroutine and waits for it.
func (s *Session) do(fn func()) error {
	if !s.started.Load() {
		// No run loop to hand the command to. Without this a call on a
		// session whose Start failed would block forever.
		return ErrSessionClosed
	}
	done := make(chan struct{})
	select {
	case s.commands <- func() { fn(); close(done) }:
		<-done
		return nil
	case <-s.closed:
		return ErrSessionClosed
	}
}

// Seats returns the current seat map in layout order.
func (s *Session) Seats() ([]SeatState, error) {
	var seats []SeatState
	err := s.do(func() { seats = s.view.Seats() })
	return seats, err
}

// Select chooses a seat. A seat that does not exist or is already booked
// is rejected locally with ErrValidation; the inventory is not consulted.
func (s *Session) Select(seatNumber string) error {
	var out error
	err := s.do(func() {
		seat, ok := s.view.Seat(seatNumber)
		if !ok {
			out = ErrValidation
			return
		}
		if seat.Booked {
			out = ErrValidation
			return
		}
		out = s.sel.Select(seatNumber)
	})
	if err != nil {
		return err
	}
	return out
}

// Deselect clears the current choice.
func (s *Session) Deselect() error {
	var out error
	err := s.do(func() { out = s.sel.Deselect() })
	if err != nil {
		return err
	}
	return out
}

// Confirm reserves the selected seat: one attempt, applied authoritatively.
// The run loop is held for the duration, so change events observed during
// the attempt are applied after the authoritative response.
func (s *Session) Confirm(ctx context.Context) (*Reservation, error) {
	var (
		reservation *Reservation
		out         error
	)
	err := s.do(func() {
		reservation, out = s.orch.Confirm(ctx, s.view, s.sel)
	})
	if err != nil {
		return nil, err
	}
	return reservation, out
}

// Selection reports the current selection state and seat.
func (s *Session) Selection() (SelectionState, string, error) {
	var (
		state SelectionState
		seat  string
	)
	err := s.do(func() {
		state = s.sel.State()
		seat = s.sel.Seat()
	})
	return state, seat, err
}

// Live reports whether the change feed is still delivering events.
func (s *Session) Live() (bool, error) {
	var live bool
	err := s.do(func() { live = s.live })
	return live, err
}

// LastFeedError returns why the change feed is not live: the subscribe
// failure from Start, or ErrChannelUnavailable after the feed ended. It is
// nil while the feed is healthy.
func (s *Session) LastFeedError() (error, error) {
	var feedErr error
	err := s.do(func() { feedErr = s.feedErr })
	return feedErr, err
}

// Close stops the run loop and releases the subscription. Calling Close
// before a successful Start is a no-op.
func (s *Session) Close() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.closed
}
