package handlers

import (
	"errors"
	"net/http"

	"cowork/middleware"
	"cowork/models"
	"cowork/services/favorite"
	"cowork/utils"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	Service favorite.FavoriteService
}

func NewFavoriteHandler(svc favorite.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{Service: svc}
}

func (h *FavoriteHandler) favoriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, favorite.ErrSpaceNotFound):
		utils.JSONError(c, http.StatusNotFound, "Co-working space not found", err)
	case errors.Is(err, favorite.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Favorite not found", err)
	case errors.Is(err, favorite.ErrDuplicate):
		utils.JSONError(c, http.StatusBadRequest, "Co-working space is already in favorites", err)
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Server error", err)
	}
}

// List handles GET /favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	views, err := h.Service.List(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.favoriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(views), "data": views})
}

// Add handles POST /favorites.
func (h *FavoriteHandler) Add(c *gin.Context) {
	var req models.FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Please add a coworkingSpaceId", err)
		return
	}

	fav, err := h.Service.Add(c.Request.Context(), middleware.CurrentUser(c).ID, req.CoworkingSpaceID)
	if err != nil {
		h.favoriteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": fav})
}

// Remove handles DELETE /favorites/:spaceId.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	if err := h.Service.Remove(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("spaceId")); err != nil {
		h.favoriteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}
