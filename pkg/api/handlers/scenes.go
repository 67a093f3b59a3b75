package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/aqarai/pkg/api/types"
	"github.com/urmzd/aqarai/pkg/aqara"
)

// ScenesHandler handles scene listing and execution
type ScenesHandler struct {
	service aqara.Service
}

// NewScenesHandler creates a new scenes handler
func NewScenesHandler(service aqara.Service) *ScenesHandler {
	return &ScenesHandler{service: service}
}

// ListScenes handles GET /scenes
// @Summary      List scenes
// @Description  Returns one page of automation scenes on the vendor account
// @Tags         scenes
// @Produce      json
// @Param        page         query     int   false  "Page number (default 1)"
// @Param        page_size    query     int   false  "Scenes per page (default 50)"
// @Param        enabled_only query     bool  false  "Only enabled scenes"
// @Success      200  {object}  types.ListScenesResponse
// @Failure      502  {object}  types.ErrorResponse  "Vendor or transport error"
// @Router       /scenes [get]
func (h *ScenesHandler) ListScenes(c *gin.Context) {
	page := queryInt(c, "page", 1)
	size := queryInt(c, "page_size", 50)
	enabledOnly := c.Query("enabled_only") == "true"

	listed, err := h.service.ListScenes(c.Request.Context(), page, size)
	if err != nil {
		renderError(c, err)
		return
	}

	scenes := listed.Data
	if enabledOnly {
		filtered := make([]aqara.Scene, 0, len(scenes))
		for _, sc := range scenes {
			if sc.Enable {
				filtered = append(filtered, sc)
			}
		}
		scenes = filtered
	}

	c.JSON(http.StatusOK, types.ListScenesResponse{
		Scenes:     scenes,
		Count:      len(scenes),
		TotalCount: listed.TotalCount,
	})
}

// RunScene handles POST /scenes/:id/run
// @Summary      Run a scene
// @Description  Triggers a scene; the vendor executes it asynchronously
// @Tags         scenes
// @Produce      json
// @Param        id   path      string  true  "Vendor scene ID"
// @Success      202  {object}  types.RunSceneResponse
// @Failure      502  {object}  types.ErrorResponse  "Vendor or transport error"
// @Router       /scenes/{id}/run [post]
func (h *ScenesHandler) RunScene(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.ExecuteScene(c.Request.Context(), id); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, types.RunSceneResponse{
		SceneID: id,
		Status:  "triggered",
	})
}
