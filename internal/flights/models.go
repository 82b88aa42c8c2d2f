package flights

import (
	"time"

	"github.com/google/uuid"
)

// CabinClass is derived from a seat's row position, never stored per request.
type CabinClass string

const (
	CabinBusiness CabinClass = "BUSINESS"
	CabinEconomy  CabinClass = "ECONOMY"
)

// Flight is one scheduled flight and the authoritative owner of its seats.
// Everything except the seats' booked state is immutable after creation.
type Flight struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Airline       string    `json:"airline" gorm:"not null;size:100"`
	FlightNumber  string    `json:"flight_number" gorm:"not null;size:20;index"`
	Source        string    `json:"source" gorm:"not null;size:100;index:idx_route"`
	Destination   string    `json:"destination" gorm:"not null;size:100;index:idx_route"`
	DepartureTime time.Time `json:"departure_time" gorm:"not null"`
	ArrivalTime   time.Time `json:"arrival_time" gorm:"not null"`
	Price         float64   `json:"price" gorm:"not null;check:price >= 0"`

	Seats []Seat `json:"seats,omitempty" gorm:"foreignKey:FlightID;constraint:OnDelete:CASCADE;"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Seat is one bookable seat. The booked flag is mutated only through the
// inventory store's atomic reserve.
type Seat struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FlightID   uuid.UUID  `json:"flight_id" gorm:"type:uuid;not null;uniqueIndex:idx_flight_seat"`
	SeatNumber string     `json:"seat_number" gorm:"not null;size:5;uniqueIndex:idx_flight_seat"`
	Row        int        `json:"row" gorm:"column:seat_row;not null"`
	Column     string     `json:"column" gorm:"column:seat_col;not null;size:1"`
	CabinClass CabinClass `json:"cabin_class" gorm:"type:varchar(10);not null;default:'ECONOMY'"`
	Booked     bool       `json:"booked" gorm:"not null;default:false"`
	BookedBy   *uuid.UUID `json:"-" gorm:"type:uuid"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName sets the table name for Flight
func (Flight) TableName() string {
	return "flights"
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

// SeatResponse is the wire shape of one seat in a snapshot.
type SeatResponse struct {
	SeatNumber string     `json:"seatNumber"`
	IsBooked   bool       `json:"isBooked"`
	CabinClass CabinClass `json:"cabinClass"`
}

// FlightSummary is the seatless wire shape used by search listings.
type FlightSummary struct {
	ID            string    `json:"id"`
	Airline       string    `json:"airline"`
	FlightNumber  string    `json:"flightNumber"`
	Source        string    `json:"source"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         float64   `json:"price"`
}

// FlightSnapshot is the full seat-map wire shape. A snapshot always carries
// the complete seat list so clients can replace, never merge, their view.
type FlightSnapshot struct {
	FlightSummary
	Seats []SeatResponse `json:"seats"`
}

// RouteResponse is the computed cheapest path between two airports.
type RouteResponse struct {
	Path       []FlightSummary `json:"path"`
	TotalPrice float64         `json:"totalPrice"`
}

// CreateFlightRequest creates a flight plus its generated seat map.
type CreateFlightRequest struct {
	Airline       string    `json:"airline" binding:"required,min=2,max=100"`
	FlightNumber  string    `json:"flightNumber" binding:"required,min=2,max=20"`
	Source        string    `json:"source" binding:"required,min=3,max=100"`
	Destination   string    `json:"destination" binding:"required,min=3,max=100"`
	DepartureTime time.Time `json:"departureTime" binding:"required"`
	ArrivalTime   time.Time `json:"arrivalTime" binding:"required"`
	Price         float64   `json:"price" binding:"required,min=0"`
}

// SearchQuery carries the search filters from the query string.
type SearchQuery struct {
	Source      string `form:"source" binding:"required"`
	Destination string `form:"destination" binding:"required"`
	Date        string `form:"date"` // optional, YYYY-MM-DD
}

// ToSummary converts a Flight to its wire summary.
func (f *Flight) ToSummary() FlightSummary {
	return FlightSummary{
		ID:            f.ID.String(),
		Airline:       f.Airline,
		FlightNumber:  f.FlightNumber,
		Source:        f.Source,
		Destination:   f.Destination,
		DepartureTime: f.DepartureTime,
		ArrivalTime:   f.ArrivalTime,
		Price:         f.Price,
	}
}

// ToSnapshot converts a Flight with loaded seats to its wire snapshot.
func (f *Flight) ToSnapshot() FlightSnapshot {
	seats := make([]SeatResponse, 0, len(f.Seats))
	for _, s := range f.Seats {
		seats = append(seats, SeatResponse{
			SeatNumber: s.SeatNumber,
			IsBooked:   s.Booked,
			CabinClass: s.CabinClass,
		})
	}
	return FlightSnapshot{
		FlightSummary: f.ToSummary(),
		Seats:         seats,
	}
}
