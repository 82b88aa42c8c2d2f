package flights

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skybook/internal/shared/config"
	"skybook/internal/shared/constants"
	"skybook/pkg/cache"

	"github.com/google/uuid"
)

// Service interface defines the contract for flight business logic
type Service interface {
	CreateFlight(ctx context.Context, req CreateFlightRequest) (*FlightSnapshot, error)
	GetSnapshot(ctx context.Context, flightID uuid.UUID) (*FlightSnapshot, error)
	SearchFlights(ctx context.Context, query SearchQuery) ([]FlightSummary, error)
	FindRoute(ctx context.Context, source, destination string) (*RouteResponse, error)

	// InvalidateSnapshot drops the cached seat map after a reservation so
	// the next snapshot fetch reflects the authoritative store.
	InvalidateSnapshot(ctx context.Context, flightID uuid.UUID)
}

type service struct {
	repo    Repository
	cache   cache.Service
	seatMap config.SeatMapConfig
}

func NewService(repo Repository, cacheService cache.Service, seatMap config.SeatMapConfig) Service {
	return &service{
		repo:    repo,
		cache:   cacheService,
		seatMap: seatMap,
	}
}

// seatColumns are the cabin columns in layout order.
var seatColumns = []string{"A", "B", "C", "D", "E", "F"}

func (s *service) CreateFlight(ctx context.Context, req CreateFlightRequest) (*FlightSnapshot, error) {
	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, fmt.Errorf("arrival time must be after departure time")
	}

	flight := &Flight{
		ID:            uuid.New(),
		Airline:       req.Airline,
		FlightNumber:  req.FlightNumber,
		Source:        req.Source,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		ArrivalTime:   req.ArrivalTime,
		Price:         req.Price,
		Seats:         s.generateSeatMap(),
	}

	if err := s.repo.CreateFlight(ctx, flight); err != nil {
		return nil, err
	}

	// New inventory changes search results; flush stale listings.
	_ = s.cache.DeletePattern(ctx, constants.SearchCachePattern())

	snapshot := flight.ToSnapshot()
	return &snapshot, nil
}

// generateSeatMap builds the configured cabin layout. The first BusinessRows
// rows are business class, the rest economy, mirroring how the seat map is
// rendered.
func (s *service) generateSeatMap() []Seat {
	cols := s.seatMap.SeatsPerRow
	if cols > len(seatColumns) {
		cols = len(seatColumns)
	}

	seats := make([]Seat, 0, s.seatMap.Rows*cols)
	for row := 1; row <= s.seatMap.Rows; row++ {
		class := CabinEconomy
		if row <= s.seatMap.BusinessRows {
			class = CabinBusiness
		}
		for c := 0; c < cols; c++ {
			seats = append(seats, Seat{
				ID:         uuid.New(),
				SeatNumber: fmt.Sprintf("%d%s", row, seatColumns[c]),
				Row:        row,
				Column:     seatColumns[c],
				CabinClass: class,
			})
		}
	}
	return seats
}

func (s *service) GetSnapshot(ctx context.Context, flightID uuid.UUID) (*FlightSnapshot, error) {
	key := constants.FlightSnapshotKey(flightID.String())

	var snapshot FlightSnapshot
	err := s.cache.GetOrSet(ctx, key, constants.TTL_SEAT_SNAPSHOT, func() (interface{}, error) {
		flight, err := s.repo.GetFlightWithSeats(ctx, flightID)
		if err != nil {
			return nil, err
		}
		return flight.ToSnapshot(), nil
	}, &snapshot)
	if err != nil {
		// The cache layer wraps fetcher errors; keep not-found distinct.
		if errors.Is(err, ErrFlightNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}

	return &snapshot, nil
}

func (s *service) SearchFlights(ctx context.Context, query SearchQuery) ([]FlightSummary, error) {
	var date *time.Time
	if query.Date != "" {
		parsed, err := time.Parse("2006-01-02", query.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", query.Date)
		}
		date = &parsed
	}

	key := constants.FlightSearchKey(query.Source, query.Destination, query.Date)

	var summaries []FlightSummary
	err := s.cache.GetOrSet(ctx, key, constants.TTL_FLIGHT_SEARCH, func() (interface{}, error) {
		results, err := s.repo.SearchFlights(ctx, query.Source, query.Destination, date)
		if err != nil {
			return nil, err
		}
		out := make([]FlightSummary, 0, len(results))
		for i := range results {
			out = append(out, results[i].ToSummary())
		}
		return out, nil
	}, &summaries)
	if err != nil {
		return nil, err
	}

	return summaries, nil
}

func (s *service) FindRoute(ctx context.Context, source, destination string) (*RouteResponse, error) {
	key := constants.FlightRouteKey(source, destination)

	var route RouteResponse
	err := s.cache.GetOrSet(ctx, key, constants.TTL_FLIGHT_ROUTE, func() (interface{}, error) {
		all, err := s.repo.ListFlights(ctx)
		if err != nil {
			return nil, err
		}

		path, total, err := FindCheapestRoute(all, source, destination)
		if err != nil {
			return nil, err
		}

		summaries := make([]FlightSummary, 0, len(path))
		for i := range path {
			summaries = append(summaries, path[i].ToSummary())
		}
		return RouteResponse{Path: summaries, TotalPrice: total}, nil
	}, &route)
	if err != nil {
		if errors.Is(err, ErrNoRouteFound) {
			return nil, ErrNoRouteFound
		}
		return nil, err
	}

	return &route, nil
}

func (s *service) InvalidateSnapshot(ctx context.Context, flightID uuid.UUID) {
	_ = s.cache.Delete(ctx, constants.FlightSnapshotKey(flightID.String()))
}
