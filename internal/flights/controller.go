package flights

import (
	"net/http"

	"skybook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// SearchFlights handles GET /api/v1/flights/search?source=&destination=&date=
func (c *Controller) SearchFlights(ctx *gin.Context) {
	var query SearchQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "VALIDATION_ERROR", "source and destination are required")
		return
	}

	results, err := c.service.SearchFlights(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "SEARCH_FAILED", "Failed to search flights")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flights retrieved successfully", results, nil)
}

// FindRoute handles GET /api/v1/flights/route?source=&destination=
func (c *Controller) FindRoute(ctx *gin.Context) {
	source := ctx.Query("source")
	destination := ctx.Query("destination")
	if source == "" || destination == "" {
		response.RespondError(ctx, http.StatusBadRequest, "VALIDATION_ERROR", "source and destination are required")
		return
	}

	route, err := c.service.FindRoute(ctx.Request.Context(), source, destination)
	if err != nil {
		switch err {
		case ErrNoRouteFound:
			response.RespondError(ctx, http.StatusNotFound, "NO_ROUTE_FOUND", "No connecting route found")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, "ROUTE_FAILED", "Failed to compute route")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Route computed successfully", route, nil)
}

// GetFlight handles GET /api/v1/flights/:id and returns the full seat map
func (c *Controller) GetFlight(ctx *gin.Context) {
	flightID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid flight ID")
		return
	}

	snapshot, err := c.service.GetSnapshot(ctx.Request.Context(), flightID)
	if err != nil {
		switch err {
		case ErrFlightNotFound:
			response.RespondError(ctx, http.StatusNotFound, "FLIGHT_NOT_FOUND", "Flight not found")
		default:
			response.RespondError(ctx, http.StatusInternalServerError, "FETCH_FAILED", "Failed to load flight")
		}
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Flight retrieved successfully", snapshot, nil)
}

// CreateFlight handles POST /api/v1/flights (admin only)
func (c *Controller) CreateFlight(ctx *gin.Context) {
	var req CreateFlightRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondError(ctx, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	snapshot, err := c.service.CreateFlight(ctx.Request.Context(), req)
	if err != nil {
		response.RespondError(ctx, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create flight")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Flight created successfully", snapshot, nil)
}
