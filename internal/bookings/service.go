package bookings

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"skybook/internal/flights"
	"skybook/internal/inventory"
	"skybook/internal/realtime"
	"skybook/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrSeatTaken      = inventory.ErrSeatTaken
	ErrSeatNotFound   = inventory.ErrSeatNotFound
	ErrFlightNotFound = flights.ErrFlightNotFound
)

type Service interface {
	// CreateBooking makes exactly one atomic reservation attempt. There is
	// no retry: a conflict surfaces as ErrSeatTaken and the caller decides
	// what to do next.
	CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error)
	GetMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error)
}

type service struct {
	repo       Repository
	store      inventory.Store
	flightRepo flights.Repository
	flightSvc  flights.Service
	publisher  realtime.Publisher
	log        *logger.Logger
}

func NewService(
	repo Repository,
	store inventory.Store,
	flightRepo flights.Repository,
	flightSvc flights.Service,
	publisher realtime.Publisher,
	log *logger.Logger,
) Service {
	return &service{
		repo:       repo,
		store:      store,
		flightRepo: flightRepo,
		flightSvc:  flightSvc,
		publisher:  publisher,
		log:        log,
	}
}

func (s *service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	flight, err := s.flightRepo.GetFlightByID(ctx, req.FlightID)
	if err != nil {
		return nil, err
	}

	booking := &Booking{
		ID:         uuid.New(),
		BookingRef: generateBookingRef(),
		UserID:     userID,
		FlightID:   flight.ID,
		SeatNumber: req.SeatNumber,
		Price:      flight.Price,
	}

	err = s.store.Reserve(ctx, flight.ID, req.SeatNumber, userID, func(tx *gorm.DB) error {
		return s.repo.CreateBookingTx(tx, booking)
	})
	if err != nil {
		if errors.Is(err, inventory.ErrSeatTaken) {
			s.log.LogSeatConflict(ctx, flight.ID.String(), req.SeatNumber, userID.String())
		}
		return nil, err
	}

	s.log.LogBookingCreated(ctx, booking.ID.String(), flight.ID.String(), req.SeatNumber, userID.String())

	// The reservation is committed; a broken channel only delays other
	// sessions until their next snapshot.
	if err := s.publisher.Publish(ctx, realtime.ChangeEvent{
		FlightID:   flight.ID,
		SeatNumber: req.SeatNumber,
		Booked:     true,
	}); err != nil {
		s.log.WithError(err).Warn("seat change event not delivered",
			"flight_id", flight.ID.String(),
			"seat_number", req.SeatNumber)
	}

	s.flightSvc.InvalidateSnapshot(ctx, flight.ID)

	resp := toResponse(booking, flight)
	return &resp, nil
}

func (s *service) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	results, err := s.repo.GetBookingsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	// One flight usually covers several bookings in the list.
	flightsByID := make(map[uuid.UUID]*flights.Flight)
	out := make([]BookingResponse, 0, len(results))
	for i := range results {
		flight, ok := flightsByID[results[i].FlightID]
		if !ok {
			flight, err = s.flightRepo.GetFlightByID(ctx, results[i].FlightID)
			if err != nil {
				return nil, err
			}
			flightsByID[results[i].FlightID] = flight
		}
		out = append(out, toResponse(&results[i], flight))
	}
	return out, nil
}

func toResponse(b *Booking, f *flights.Flight) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		BookingRef:    b.BookingRef,
		FlightID:      b.FlightID,
		SeatNumber:    b.SeatNumber,
		Price:         b.Price,
		CreatedAt:     b.CreatedAt,
		Airline:       f.Airline,
		FlightNumber:  f.FlightNumber,
		Source:        f.Source,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
	}
}

const refAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

func generateBookingRef() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// Fall back to a UUID fragment; uniqueness is enforced by the index.
		return fmt.Sprintf("SB%s", uuid.New().String()[:8])
	}
	for i := range buf {
		buf[i] = refAlphabet[int(buf[i])%len(refAlphabet)]
	}
	return fmt.Sprintf("SB%s", string(buf))
}
