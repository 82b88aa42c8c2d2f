package bookings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	// CreateBookingTx inserts using the caller's transaction so the booking
	// commits together with the seat reservation.
	CreateBookingTx(tx *gorm.DB, booking *Booking) error
	GetBookingsByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error)
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateBookingTx(tx *gorm.DB, booking *Booking) error {
	return tx.Create(booking).Error
}

func (r *repository) GetBookingsByUser(ctx context.Context, userID uuid.UUID) ([]Booking, error) {
	var results []Booking
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
