package bookings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*BookingResponse), args.Error(1)
}

func (m *mockService) GetMyBookings(ctx context.Context, userID uuid.UUID) ([]BookingResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingResponse), args.Error(1)
}

var _ Service = (*mockService)(nil)

// setupTestRouter wires the controller behind a stub auth middleware that
// injects the given user, mirroring what the JWT middleware sets.
func setupTestRouter(controller *Controller, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	group := router.Group("/api/v1/bookings")
	group.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	})
	group.POST("", controller.CreateBooking)
	group.GET("/mybookings", controller.GetMyBookings)
	return router
}

func postBooking(t *testing.T, router *gin.Engine, flightID uuid.UUID, seatNumber string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]string{
		"flightId":   flightID.String(),
		"seatNumber": seatNumber,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func responseCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestController_CreateBooking(t *testing.T) {
	userID := uuid.New()
	flightID := uuid.New()

	service := new(mockService)
	service.On("CreateBooking", mock.Anything, userID, CreateBookingRequest{
		FlightID:   flightID,
		SeatNumber: "1A",
	}).Return(&BookingResponse{
		ID:         uuid.New(),
		BookingRef: "SBTEST123",
		FlightID:   flightID,
		SeatNumber: "1A",
		Price:      4500,
	}, nil)

	router := setupTestRouter(NewController(service), userID.String())
	rec := postBooking(t, router, flightID, "1A")

	assert.Equal(t, http.StatusCreated, rec.Code)
	service.AssertExpectations(t)
}

func TestController_CreateBookingErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "seat taken",
			serviceErr: ErrSeatTaken,
			wantStatus: http.StatusConflict,
			wantCode:   "SEAT_TAKEN",
		},
		{
			name:       "flight not found",
			serviceErr: ErrFlightNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "FLIGHT_NOT_FOUND",
		},
		{
			name:       "seat not found",
			serviceErr: ErrSeatNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   "SEAT_NOT_FOUND",
		},
		{
			name:       "unexpected failure",
			serviceErr: fmt.Errorf("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "BOOKING_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID := uuid.New()
			flightID := uuid.New()

			service := new(mockService)
			service.On("CreateBooking", mock.Anything, userID, mock.Anything).Return(nil, tt.serviceErr)

			router := setupTestRouter(NewController(service), userID.String())
			rec := postBooking(t, router, flightID, "1A")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, responseCode(t, rec))
		})
	}
}

func TestController_CreateBookingWithoutIdentity(t *testing.T) {
	service := new(mockService)
	router := setupTestRouter(NewController(service), "")

	rec := postBooking(t, router, uuid.New(), "1A")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_REQUIRED", responseCode(t, rec))
	// The booking service is never reached without an identity.
	service.AssertNotCalled(t, "CreateBooking")
}

func TestController_CreateBookingValidation(t *testing.T) {
	userID := uuid.New()
	service := new(mockService)
	router := setupTestRouter(NewController(service), userID.String())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewBufferString(`{"flightId":""}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", responseCode(t, rec))
	service.AssertNotCalled(t, "CreateBooking")
}

func TestController_GetMyBookings(t *testing.T) {
	userID := uuid.New()

	service := new(mockService)
	service.On("GetMyBookings", mock.Anything, userID).Return([]BookingResponse{
		{BookingRef: "SBAAA111", SeatNumber: "1A"},
		{BookingRef: "SBBBB222", SeatNumber: "2C"},
	}, nil)

	router := setupTestRouter(NewController(service), userID.String())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/mybookings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []BookingResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "SBAAA111", body.Data[0].BookingRef)

	service.AssertExpectations(t)
}
