package seatsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HTTPGateway implements InventoryGateway against the skybook REST API.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGateway creates a gateway for the API at baseURL, e.g.
// "http://localhost:8080/api/v1".
func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// envelope mirrors the server's response shape.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
	Data    json.RawMessage `json:"data"`
}

type snapshotData struct {
	ID    string      `json:"id"`
	Seats []SeatState `json:"seats"`
}

type reservationData struct {
	BookingRef string  `json:"bookingRef"`
	SeatNumber string  `json:"seatNumber"`
	Price      float64 `json:"price"`
}

func (g *HTTPGateway) FetchSnapshot(ctx context.Context, flightID uuid.UUID) (*Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/flights/"+flightID.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		if body.Code == "FLIGHT_NOT_FOUND" {
			return nil, ErrFlightNotFound
		}
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, body.Message)
	}

	var data snapshotData
	if err := json.Unmarshal(body.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	return &Snapshot{FlightID: flightID, Seats: data.Seats}, nil
}

func (g *HTTPGateway) Reserve(ctx context.Context, flightID uuid.UUID, seatNumber, token string) (*Reservation, error) {
	payload, err := json.Marshal(map[string]string{
		"flightId":   flightID.String(),
		"seatNumber": seatNumber,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/bookings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		// No response arrived, so nothing authoritative is known.
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode != http.StatusCreated {
		return nil, reserveError(resp.StatusCode, body)
	}

	var data reservationData
	if err := json.Unmarshal(body.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	return &Reservation{
		BookingRef: data.BookingRef,
		SeatNumber: data.SeatNumber,
		Price:      data.Price,
	}, nil
}

// reserveError maps the server's error codes onto the taxonomy.
func reserveError(status int, body envelope) error {
	switch body.Code {
	case "SEAT_TAKEN":
		return ErrSeatAlreadyTaken
	case "FLIGHT_NOT_FOUND":
		return ErrFlightNotFound
	case "SEAT_NOT_FOUND":
		return fmt.Errorf("%w: no such seat", ErrValidation)
	case "AUTH_REQUIRED":
		return ErrAuthRequired
	case "VALIDATION_ERROR":
		return fmt.Errorf("%w: %s", ErrValidation, body.Message)
	}

	switch status {
	case http.StatusUnauthorized:
		return ErrAuthRequired
	case http.StatusConflict:
		return ErrSeatAlreadyTaken
	case http.StatusNotFound:
		return ErrFlightNotFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrValidation, body.Message)
	}
	return fmt.Errorf("%w: status %d: %s", ErrRequestFailed, status, body.Message)
}
