package vehicles

import (
	"errors"
	"net/http"

	"taxibe/internal/cooperatives"
	"taxibe/internal/layout"
	"taxibe/internal/shared/utils/response"

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
// @Summary Register a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param request body CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} response.StandardApiResponse
// @Router /admin/vehicles [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	vehicle, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, cooperatives.ErrCooperativeNotFound):
			response.Error(c, http.StatusNotFound, "Cooperative not found", nil)
		case errors.Is(err, layout.ErrInvalidConfiguration):
			response.Error(c, http.StatusBadRequest, "Invalid seat configuration", err.Error())
		case errors.Is(err, ErrDuplicateVehicle):
			response.Error(c, http.StatusConflict, "Vehicle already registered", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "Failed to register vehicle", err.Error())
		}
		return
	}

	response.Success(c, http.StatusCreated, "Vehicle registered successfully", vehicle.ToResponse())
}

// List godoc
// @Summary List active vehicles
// @Tags vehicles
// @Produce json
// @Param cooperative_id query string false "Filter by cooperative"
// @Success 200 {object} response.StandardApiResponse
// @Router /vehicles [get]
func (ctrl *Controller) List(c *gin.Context) {
	vehicles, err := ctrl.service.List(c.Request.Context(), c.Query("cooperative_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to list vehicles", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

// Get godoc
// @Summary Get a vehicle by ID
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /vehicles/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	vehicle, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to get vehicle", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Vehicle retrieved successfully", vehicle.ToResponse())
}

// Update godoc
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "Vehicle ID"
// @Param request body UpdateVehicleRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/vehicles/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := ctrl.service.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to update vehicle", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Vehicle updated successfully", nil)
}

// Delete godoc
// @Summary Retire a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "Vehicle ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/vehicles/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrVehicleNotFound) {
			response.Error(c, http.StatusNotFound, "Vehicle not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to retire vehicle", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Vehicle retired successfully", nil)
}
