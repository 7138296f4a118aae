package tickets

import (
	"errors"
	"net/http"

	"taxibe/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListMine godoc
// @Summary List the caller's tickets
// @Tags tickets
// @Produce json
// @Success 200 {object} response.StandardApiResponse
// @Router /tickets [get]
func (ctrl *Controller) ListMine(c *gin.Context) {
	tickets, err := ctrl.service.ListMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list tickets", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Tickets retrieved successfully", tickets)
}

// Get godoc
// @Summary Get a ticket by ID
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket ID"
// @Success 200 {object} response.StandardApiResponse
// @Router /tickets/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	ticket, err := ctrl.service.Get(c.Request.Context(), c.GetString("user_id"), isAdmin(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.Error(c, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to get ticket", err.Error())
		return
	}

	response.Success(c, http.StatusOK, "Ticket retrieved successfully", ticket.ToResponse())
}

// ExportPDF godoc
// @Summary Download a ticket as PDF
// @Tags tickets
// @Produce application/pdf
// @Param id path string true "Ticket ID"
// @Success 200 {file} binary
// @Router /tickets/{id}/pdf [get]
func (ctrl *Controller) ExportPDF(c *gin.Context) {
	data, filename, err := ctrl.service.ExportPDF(c.Request.Context(), c.GetString("user_id"), isAdmin(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) {
			response.Error(c, http.StatusNotFound, "Ticket not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to render ticket", err.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("user_role") == "ADMIN"
}
