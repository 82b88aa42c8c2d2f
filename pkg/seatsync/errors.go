package seatsync

import "errors"

// Failure taxonomy for seat synchronization and booking. Callers branch on
// these with errors.Is; gateways translate transport-level failures into
// exactly one of them.
var (
	// ErrFetchFailed means the seat snapshot could not be loaded.
	ErrFetchFailed = errors.New("seat map fetch failed")

	// ErrFlightNotFound means the flight does not exist. No subscription
	// is opened for a flight that failed with this.
	ErrFlightNotFound = errors.New("flight not found")

	// ErrChannelUnavailable means the live change feed could not be
	// opened or was lost. The seat map stays usable from snapshots.
	ErrChannelUnavailable = errors.New("change channel unavailable")

	// ErrAuthRequired means a reservation was attempted without an
	// identity. The inventory is never contacted in this case.
	ErrAuthRequired = errors.New("authentication required")

	// ErrSeatAlreadyTaken means the reservation lost the race: another
	// session confirmed the seat first.
	ErrSeatAlreadyTaken = errors.New("seat already taken")

	// ErrRequestFailed means the reservation attempt did not produce an
	// authoritative answer (network failure, timeout, server error).
	// The local seat map is left untouched.
	ErrRequestFailed = errors.New("reservation request failed")

	// ErrValidation means the request was malformed before it reached
	// the inventory.
	ErrValidation = errors.New("validation failed")
)
