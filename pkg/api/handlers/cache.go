package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/aqarai/pkg/api/types"
	"github.com/urmzd/aqarai/pkg/aqara"
)

// CacheHandler exposes the response cache's clear operation
type CacheHandler struct {
	service aqara.Service
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(service aqara.Service) *CacheHandler {
	return &CacheHandler{service: service}
}

// Clear handles DELETE /cache
// @Summary      Clear response cache
// @Description  Drops every cached vendor response
// @Tags         cache
// @Produce      json
// @Success      200  {object}  types.ClearCacheResponse
// @Router       /cache [delete]
func (h *CacheHandler) Clear(c *gin.Context) {
	h.service.ClearCache()
	c.JSON(http.StatusOK, types.ClearCacheResponse{Status: "cleared"})
}
