package flights

import (
	"context"
	"testing"
	"time"

	"skybook/internal/shared/config"
	"skybook/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateFlight(ctx context.Context, flight *Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *mockRepository) GetFlightByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Flight), args.Error(1)
}

func (m *mockRepository) GetFlightWithSeats(ctx context.Context, id uuid.UUID) (*Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Flight), args.Error(1)
}

func (m *mockRepository) SearchFlights(ctx context.Context, source, destination string, date *time.Time) ([]Flight, error) {
	args := m.Called(ctx, source, destination, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Flight), args.Error(1)
}

func (m *mockRepository) ListFlights(ctx context.Context) ([]Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Flight), args.Error(1)
}

func testSeatMap() config.SeatMapConfig {
	return config.SeatMapConfig{Rows: 8, SeatsPerRow: 4, BusinessRows: 2}
}

func newTestService(repo Repository) Service {
	// nil redis client yields a pass-through cache
	return NewService(repo, cache.NewService(nil), testSeatMap())
}

func TestService_CreateFlightGeneratesSeatMap(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("CreateFlight", mock.Anything, mock.AnythingOfType("*flights.Flight")).Return(nil)

	departure := time.Now().Add(24 * time.Hour)
	snapshot, err := svc.CreateFlight(context.Background(), CreateFlightRequest{
		Airline:       "IndiGo",
		FlightNumber:  "6E-2041",
		Source:        "DEL",
		Destination:   "BOM",
		DepartureTime: departure,
		ArrivalTime:   departure.Add(2 * time.Hour),
		Price:         4500,
	})
	require.NoError(t, err)

	// 8 rows x 4 seats
	require.Len(t, snapshot.Seats, 32)
	assert.Equal(t, "1A", snapshot.Seats[0].SeatNumber)
	assert.Equal(t, CabinBusiness, snapshot.Seats[0].CabinClass)
	assert.Equal(t, "8D", snapshot.Seats[31].SeatNumber)
	assert.Equal(t, CabinEconomy, snapshot.Seats[31].CabinClass)

	business := 0
	for _, seat := range snapshot.Seats {
		assert.False(t, seat.IsBooked)
		if seat.CabinClass == CabinBusiness {
			business++
		}
	}
	assert.Equal(t, 8, business)

	repo.AssertExpectations(t)
}

func TestService_CreateFlightRejectsBadTimes(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	departure := time.Now().Add(24 * time.Hour)
	_, err := svc.CreateFlight(context.Background(), CreateFlightRequest{
		Airline:       "IndiGo",
		FlightNumber:  "6E-2041",
		Source:        "DEL",
		Destination:   "BOM",
		DepartureTime: departure,
		ArrivalTime:   departure, // not after departure
		Price:         4500,
	})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "CreateFlight")
}

func TestService_GetSnapshotNotFound(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	flightID := uuid.New()
	repo.On("GetFlightWithSeats", mock.Anything, flightID).Return(nil, ErrFlightNotFound)

	_, err := svc.GetSnapshot(context.Background(), flightID)
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestService_GetSnapshot(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	flightID := uuid.New()
	repo.On("GetFlightWithSeats", mock.Anything, flightID).Return(&Flight{
		ID:     flightID,
		Source: "DEL",
		Seats: []Seat{
			{SeatNumber: "1A", Booked: true, CabinClass: CabinBusiness},
			{SeatNumber: "1B", Booked: false, CabinClass: CabinBusiness},
		},
	}, nil)

	snapshot, err := svc.GetSnapshot(context.Background(), flightID)
	require.NoError(t, err)
	require.Len(t, snapshot.Seats, 2)
	assert.True(t, snapshot.Seats[0].IsBooked)
	assert.False(t, snapshot.Seats[1].IsBooked)
}

func TestService_SearchFlightsInvalidDate(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	_, err := svc.SearchFlights(context.Background(), SearchQuery{
		Source:      "DEL",
		Destination: "BOM",
		Date:        "31-12-2026",
	})
	assert.Error(t, err)
	repo.AssertNotCalled(t, "SearchFlights")
}

func TestService_FindRouteNoRoute(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("ListFlights", mock.Anything).Return([]Flight{}, nil)

	_, err := svc.FindRoute(context.Background(), "DEL", "GOA")
	assert.ErrorIs(t, err, ErrNoRouteFound)
}

func TestService_FindRoute(t *testing.T) {
	repo := new(mockRepository)
	svc := newTestService(repo)

	repo.On("ListFlights", mock.Anything).Return([]Flight{
		flight("DEL", "BOM", 4500),
		flight("BOM", "GOA", 2500),
		flight("DEL", "GOA", 9500),
	}, nil)

	route, err := svc.FindRoute(context.Background(), "DEL", "GOA")
	require.NoError(t, err)
	assert.Equal(t, 7000.0, route.TotalPrice)
	require.Len(t, route.Path, 2)
	assert.Equal(t, "BOM", route.Path[0].Destination)
}
