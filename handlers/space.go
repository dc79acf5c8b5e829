package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"cowork/models"
	"cowork/services/space"
	"cowork/utils"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	Service space.SpaceService
}

func NewSpaceHandler(svc space.SpaceService) *SpaceHandler {
	return &SpaceHandler{Service: svc}
}

func (h *SpaceHandler) spaceError(c *gin.Context, id string, err error) {
	switch {
	case errors.Is(err, space.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, fmt.Sprintf("No co-working space with the id of %s", id), err)
	case errors.Is(err, space.ErrDuplicateName):
		utils.JSONError(c, http.StatusBadRequest, "A co-working space with this name already exists", err)
	case errors.Is(err, space.ErrEmptyUpdate):
		utils.JSONError(c, http.StatusBadRequest, "Nothing to update", err)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
	}
}

// List handles GET /coworking-spaces.
func (h *SpaceHandler) List(c *gin.Context) {
	params, err := space.ParseListQuery(c.Request.URL.Query())
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	res, err := h.Service.List(c.Request.Context(), params)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(res.Spaces),
		"pagination": res.Pagination,
		"data":       res.Spaces,
	})
}

// Get handles GET /coworking-spaces/:id.
func (h *SpaceHandler) Get(c *gin.Context) {
	id := c.Param("id")
	sp, err := h.Service.Get(c.Request.Context(), id)
	if err != nil {
		h.spaceError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sp})
}

// Create handles POST /coworking-spaces.
func (h *SpaceHandler) Create(c *gin.Context) {
	var req models.SpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	sp, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		h.spaceError(c, "", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": sp})
}

// Update handles PUT /coworking-spaces/:id.
func (h *SpaceHandler) Update(c *gin.Context) {
	id := c.Param("id")
	var req models.SpaceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, validationMessage(err), err)
		return
	}

	sp, err := h.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.spaceError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sp})
}

// Delete handles DELETE /coworking-spaces/:id.
func (h *SpaceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		h.spaceError(c, id, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
