package cooperatives

import (
	"errors"
	"net/http"

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
// @Summary Create a cooperative
// @Tags cooperatives
// @Accept json
// @Produce json
// @Param request body CreateCooperativeRequest true "Cooperative details"
// @Success 201 {object} response.StandardApiResponse
// @Router /admin/cooperatives [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateCooperativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	coop, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create cooperative", err.Error())
		return
	}

	response.Success(c, http.StatusCreated, "Cooperative created successfully", coop.ToResponse())
}

// List godoc
// @Summary List active cooperatives
// @Tags cooperatives
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Router /cooperatives [get]
func (ctrl *Controller) List(c *gin.Context) {
	coops, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list cooperatives", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Cooperatives retrieved successfully", coops)
}

// Get godoc
// @Summary Get a cooperative by ID
// @Tags cooperatives
// @Produce json
// @Param id path string true "Cooperative ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /cooperatives/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	coop, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrCooperativeNotFound) {
			response.Error(c, http.StatusNotFound, "Cooperative not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to get cooperative", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Cooperative retrieved successfully", coop.ToResponse())
}

// Update godoc
// @Summary Update a cooperative
// @Tags cooperatives
// @Accept json
// @Produce json
// @Param id path string true "Cooperative ID"
// @Param request body UpdateCooperativeRequest true "Fields to update"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/cooperatives/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req UpdateCooperativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	if err := ctrl.service.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		if errors.Is(err, ErrCooperativeNotFound) {
			response.Error(c, http.StatusNotFound, "Cooperative not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to update cooperative", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Cooperative updated successfully", nil)
}

// Delete godoc
// @Summary Delete a cooperative
// @Tags cooperatives
// @Produce json
// @Param id path string true "Cooperative ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /admin/cooperatives/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrCooperativeNotFound) {
			response.Error(c, http.StatusNotFound, "Cooperative not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to delete cooperative", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Cooperative deleted successfully", nil)
}
