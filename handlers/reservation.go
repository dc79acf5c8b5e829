package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"cowork/middleware"
	"cowork/models"
	"cowork/services/reservation"
	"cowork/utils"

	"github.com/gin-gonic/gin"
)

type ReservationHandler struct {
	Service reservation.ReservationService
}

func NewReservationHandler(svc reservation.ReservationService) *ReservationHandler {
	return &ReservationHandler{Service: svc}
}

func (h *ReservationHandler) reservationError(c *gin.Context, actor *models.User, id, action string, err error) {
	switch {
	case errors.Is(err, reservation.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("No reservation with the id of %s", id), err)
	case errors.Is(err, reservation.ErrSpaceNotFound):
		utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("No co-working space with the id of %s", id), err)
	case errors.Is(err, reservation.ErrNotOwner):
		utils.JSONError(c, http.StatusUnauthorized, fmt.Sprintf("User %s is not authorized to %s this reservation", actor.ID, action), err)
	case errors.Is(err, reservation.ErrQuotaExceeded):
		utils.JSONError(c, http.StatusBadRequest,
			fmt.Sprintf("The user with ID %s has already made %d reservations", actor.ID, reservation.MaxActiveReservations), err)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
	}
}

// List handles GET /reservations.
func (h *ReservationHandler) List(c *gin.Context) {
	h.list(c, "")
}

// ListForSpace handles GET /coworking-spaces/:id/reservations.
func (h *ReservationHandler) ListForSpace(c *gin.Context) {
	h.list(c, c.Param("id"))
}

func (h *ReservationHandler) list(c *gin.Context, spaceID string) {
	actor := middleware.CurrentUser(c)
	views, err := h.Service.List(c.Request.Context(), actor, spaceID)
	if err != nil {
		h.reservationError(c, actor, "", "view", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(views), "data": views})
}

// Get handles GET /reservations/:id.
func (h *ReservationHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id := c.Param("id")
	view, err := h.Service.Get(c.Request.Context(), actor, id)
	if err != nil {
		h.reservationError(c, actor, id, "view", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": view})
}

// Add handles POST /coworking-spaces/:id/reservations.
func (h *ReservationHandler) Add(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	spaceID := c.Param("id")

	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Please add a valid reservationDate", err)
		return
	}

	r, err := h.Service.Add(c.Request.Context(), actor, spaceID, req.ReservationDate)
	if err != nil {
		h.reservationError(c, actor, spaceID, "create", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": r})
}

// Update handles PUT /reservations/:id.
func (h *ReservationHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id := c.Param("id")

	var req models.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Please add a valid reservationDate", err)
		return
	}

	r, err := h.Service.Update(c.Request.Context(), actor, id, req.ReservationDate)
	if err != nil {
		h.reservationError(c, actor, id, "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": r})
}

// Delete handles DELETE /reservations/:id.
func (h *ReservationHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), actor, id); err != nil {
		h.reservationError(c, actor, id, "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
