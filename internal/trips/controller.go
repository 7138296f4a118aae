package trips

import (
	"errors"
	"net/http"

	"taxibe/internal/layout"
	"taxibe/internal/shared/utils/response"
	"taxibe/internal/vehicles"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service  Service
	validate *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:  service,
		validate: validator.New(),
	}
}

// Create godoc
// @Summary Schedule a trip
// @Tags trips
// @Accept json
// @Produce json
// @Param request body CreateTripRequest true "Trip details"
// @Success 201 {object} response.StandardApiResponse
// @Router /admin/trips [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	trip, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, vehicles.ErrVehicleNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to schedule trip", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Trip scheduled successfully", trip.toResponse(trip.Vehicle.TotalSeats-1))
}

// Search godoc
// @Summary Search trips by route and date
// @Tags trips
// @Produce json
// @Param from query string true "Departure city"
// @Param to query string true "Destination city"
// @Param date query string true "Travel date (YYYY-MM-DD)"
// @Param cooperative_id query string false "Filter by cooperative"
// @Success 200 {object} response.StandardApiResponse
// @Router /trips [get]
func (ctrl *Controller) Search(c *gin.Context) {
	var req SearchTripsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid search parameters", err.Error())
		return
	}

	trips, err := ctrl.service.Search(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to search trips", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Trips retrieved successfully", trips)
}

// Get godoc
// @Summary Get trip details
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /trips/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	detail, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrTripNotFound) {
			response.Error(c, http.StatusNotFound, "Trip not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to get trip", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Trip retrieved successfully", detail)
}

// SeatMap godoc
// @Summary Get the seat map of a trip
// @Tags trips
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /trips/{id}/seats [get]
func (ctrl *Controller) SeatMap(c *gin.Context) {
	seatMap, err := ctrl.service.SeatMap(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrTripNotFound):
			response.Error(c, http.StatusNotFound, "Trip not found", nil)
		case errors.Is(err, layout.ErrInvalidConfiguration):
			response.Error(c, http.StatusUnprocessableEntity, "Trip has an invalid seat configuration", err.Error())
		default:
			response.Error(c, http.StatusBadRequest, "Failed to build seat map", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Seat map retrieved successfully", seatMap)
}

// UpdateStatus godoc
// @Summary Update trip status
// @Tags trips
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body UpdateTripStatusRequest true "New status"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/trips/{id}/status [patch]
func (ctrl *Controller) UpdateStatus(c *gin.Context) {
	var req UpdateTripStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := ctrl.service.UpdateStatus(c.Request.Context(), c.Param("id"), TripStatus(req.Status)); err != nil {
		if errors.Is(err, ErrTripNotFound) {
			response.Error(c, http.StatusNotFound, "Trip not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to update trip status", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Trip status updated successfully", nil)
}
