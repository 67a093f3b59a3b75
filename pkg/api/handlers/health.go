package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/aqarai/pkg/api/types"
	"github.com/urmzd/aqarai/pkg/aqara"
)

// HealthHandler reports bridge configuration and cache state
type HealthHandler struct {
	service aqara.Service
	cfg     aqara.Config
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service aqara.Service, cfg aqara.Config) *HealthHandler {
	return &HealthHandler{service: service, cfg: cfg}
}

// Health handles GET /health
// @Summary      Health check
// @Description  Returns the bridge's configured region, endpoint and cache size
// @Tags         health
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, types.HealthResponse{
		Status:       "ok",
		Region:       h.cfg.Region,
		Endpoint:     h.cfg.BaseURL(),
		CacheEntries: h.service.CacheLen(),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	})
}
