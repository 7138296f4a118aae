package bookings

import (
	"errors"
	"net/http"

	"taxibe/internal/reservation"
	"taxibe/internal/shared/utils/response"
	"taxibe/internal/trips"

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
// @Summary Book seats on a trip
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param Idempotency-Key header string false "Client request ID for safe retries"
// @Param request body CreateBookingRequest true "Seats to book"
// @Success 201 {object} response.StandardApiResponse
// @Failure 409 {object} response.StandardApiResponse "Seats already taken"
// @Router /trips/{id}/bookings [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	userID := c.GetString("user_id")
	idempotencyKey := c.GetHeader("Idempotency-Key")

	booking, err := ctrl.service.Create(c.Request.Context(), userID, c.Param("id"), idempotencyKey, req)
	if err != nil {
		var conflict *SeatConflictError
		switch {
		case errors.As(err, &conflict):
			response.Error(c, http.StatusConflict, "Seats already taken", map[string]interface{}{
				"conflicting_seats": conflict.Seats,
			})
		case errors.Is(err, trips.ErrTripNotFound):
			response.Error(c, http.StatusNotFound, "Trip not found", nil)
		case errors.Is(err, trips.ErrTripNotBookable):
			response.Error(c, http.StatusUnprocessableEntity, "Trip is not open for booking", nil)
		case errors.Is(err, reservation.ErrNothingSelected):
			response.Error(c, http.StatusBadRequest, "No seats selected", nil)
		case errors.Is(err, reservation.ErrSelectionLimitExceeded):
			response.Error(c, http.StatusBadRequest, "Too many seats for one booking", err.Error())
		case errors.Is(err, reservation.ErrSeatUnavailable):
			response.Error(c, http.StatusBadRequest, "Seat cannot be booked", err.Error())
		case errors.Is(err, ErrPlacesMismatch):
			response.Error(c, http.StatusBadRequest, "Seat count mismatch", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to create booking", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Booking confirmed successfully", booking)
}

// ListMine godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Router /bookings [get]
func (ctrl *Controller) ListMine(c *gin.Context) {
	bookings, err := ctrl.service.ListMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list bookings", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// Get godoc
// @Summary Get a booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /bookings/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	booking, err := ctrl.service.Get(c.Request.Context(), c.GetString("user_id"), isAdmin(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			response.Error(c, http.StatusNotFound, "Booking not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to get booking", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Booking retrieved successfully", booking)
}

// Cancel godoc
// @Summary Cancel a booking
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /bookings/{id} [delete]
func (ctrl *Controller) Cancel(c *gin.Context) {
	err := ctrl.service.Cancel(c.Request.Context(), c.GetString("user_id"), isAdmin(c), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			response.Error(c, http.StatusNotFound, "Booking not found", nil)
		case errors.Is(err, ErrBookingCancelled):
			response.Error(c, http.StatusConflict, "Booking is already cancelled", nil)
		default:
			response.Error(c, http.StatusBadRequest, "Failed to cancel booking", err.Error())
		}
		return
	}

	response.Success(c, http.StatusOK, "Booking cancelled successfully", nil)
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("user_role") == "ADMIN"
}
