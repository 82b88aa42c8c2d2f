package inventory

import (
	"context"
	"errors"

	"skybook/internal/flights"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrSeatTaken means the seat exists but is already booked.
	ErrSeatTaken = errors.New("seat already taken")
	// ErrSeatNotFound means no such seat exists on the flight.
	ErrSeatNotFound = errors.New("seat not found")
	// ErrFlightNotFound means the flight itself does not exist.
	ErrFlightNotFound = errors.New("flight not found")
)

// Store is the authoritative seat inventory. Reserve is the only mutation
// and it is atomic: two concurrent attempts on the same seat resolve to
// exactly one winner.
type Store interface {
	// Reserve flips the seat to booked if and only if it is currently free,
	// then runs inTx inside the same transaction. A non-nil error from inTx
	// rolls the reservation back.
	Reserve(ctx context.Context, flightID uuid.UUID, seatNumber string, userID uuid.UUID, inTx func(tx *gorm.DB) error) error

	// Release frees a seat, used when a downstream step fails after commit
	// or for cancellations.
	Release(ctx context.Context, flightID uuid.UUID, seatNumber string) error

	// SeatStatus reports whether the seat is currently booked.
	SeatStatus(ctx context.Context, flightID uuid.UUID, seatNumber string) (bool, error)
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Reserve(ctx context.Context, flightID uuid.UUID, seatNumber string, userID uuid.UUID, inTx func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Conditional update is the whole race: zero rows means either the
		// seat was taken first or it never existed.
		result := tx.Model(&flights.Seat{}).
			Where("flight_id = ? AND seat_number = ? AND booked = ?", flightID, seatNumber, false).
			Updates(map[string]interface{}{"booked": true, "booked_by": userID})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&flights.Seat{}).
				Where("flight_id = ? AND seat_number = ?", flightID, seatNumber).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return ErrSeatTaken
			}

			var flightCount int64
			if err := tx.Model(&flights.Flight{}).
				Where("id = ?", flightID).
				Count(&flightCount).Error; err != nil {
				return err
			}
			if flightCount == 0 {
				return ErrFlightNotFound
			}
			return ErrSeatNotFound
		}

		if inTx != nil {
			return inTx(tx)
		}
		return nil
	})
}

func (s *store) Release(ctx context.Context, flightID uuid.UUID, seatNumber string) error {
	result := s.db.WithContext(ctx).Model(&flights.Seat{}).
		Where("flight_id = ? AND seat_number = ? AND booked = ?", flightID, seatNumber, true).
		Updates(map[string]interface{}{"booked": false, "booked_by": nil})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSeatNotFound
	}
	return nil
}

func (s *store) SeatStatus(ctx context.Context, flightID uuid.UUID, seatNumber string) (bool, error) {
	var seat flights.Seat
	err := s.db.WithContext(ctx).
		Where("flight_id = ? AND seat_number = ?", flightID, seatNumber).
		First(&seat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrSeatNotFound
		}
		return false, err
	}
	return seat.Booked, nil
}
