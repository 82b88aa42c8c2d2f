package flights

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrFlightNotFound = errors.New("flight not found")

type Repository interface {
	CreateFlight(ctx context.Context, flight *Flight) error
	GetFlightByID(ctx context.Context, id uuid.UUID) (*Flight, error)
	GetFlightWithSeats(ctx context.Context, id uuid.UUID) (*Flight, error)
	SearchFlights(ctx context.Context, source, destination string, date *time.Time) ([]Flight, error)
	ListFlights(ctx context.Context) ([]Flight, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFlight(ctx context.Context, flight *Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

func (r *repository) GetFlightByID(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&flight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &flight, nil
}

func (r *repository) GetFlightWithSeats(ctx context.Context, id uuid.UUID) (*Flight, error) {
	var flight Flight
	err := r.db.WithContext(ctx).
		Preload("Seats", func(db *gorm.DB) *gorm.DB {
			return db.Order("seats.seat_row ASC, seats.seat_col ASC")
		}).
		Where("id = ?", id).
		First(&flight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFlightNotFound
		}
		return nil, err
	}
	return &flight, nil
}

func (r *repository) SearchFlights(ctx context.Context, source, destination string, date *time.Time) ([]Flight, error) {
	var results []Flight

	query := r.db.WithContext(ctx).
		Where("source = ? AND destination = ?", source, destination)

	if date != nil {
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
		query = query.Where("departure_time >= ? AND departure_time < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	err := query.Order("departure_time ASC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) ListFlights(ctx context.Context) ([]Flight, error) {
	var results []Flight
	err := r.db.WithContext(ctx).Order("departure_time ASC").Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
