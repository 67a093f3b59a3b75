package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/aqarai/pkg/api/types"
	"github.com/urmzd/aqarai/pkg/aqara"
	"github.com/urmzd/aqarai/pkg/schema"
)

// DevicesHandler handles device listing, status, control and history
type DevicesHandler struct {
	service   aqara.Service
	validator *schema.Validator
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(service aqara.Service, validator *schema.Validator) *DevicesHandler {
	return &DevicesHandler{service: service, validator: validator}
}

// ListDevices handles GET /devices
// @Summary      List devices
// @Description  Returns one page of devices registered on the vendor account
// @Tags         devices
// @Produce      json
// @Param        page        query     int   false  "Page number (default 1)"
// @Param        page_size   query     int   false  "Devices per page (default 50)"
// @Param        online_only query     bool  false  "Only devices currently online"
// @Param        model_type  query     int   false  "Filter by vendor model type"
// @Success      200  {object}  types.ListDevicesResponse
// @Failure      502  {object}  types.ErrorResponse  "Vendor or transport error"
// @Failure      504  {object}  types.ErrorResponse  "Vendor timed out"
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	ctx := c.Request.Context()
	page := queryInt(c, "page", 1)
	size := queryInt(c, "page_size", 50)
	onlineOnly := c.Query("online_only") == "true"
	modelType := queryInt(c, "model_type", 0)

	if onlineOnly || modelType != 0 {
		devices, err := h.service.FilterDevices(ctx, page, size, onlineOnly, modelType)
		if err != nil {
			renderError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.ListDevicesResponse{
			Devices: devices,
			Count:   len(devices),
		})
		return
	}

	listed, err := h.service.ListDevices(ctx, page, size)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices:    listed.Data,
		Count:      len(listed.Data),
		TotalCount: listed.TotalCount,
	})
}

// GetStatus handles GET /devices/:id/status
// @Summary      Get device status
// @Description  Returns the current resource values of a device
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Vendor device ID"
// @Success      200  {object}  types.DeviceStatusResponse
// @Failure      502  {object}  types.ErrorResponse  "Vendor or transport error"
// @Router       /devices/{id}/status [get]
func (h *DevicesHandler) GetStatus(c *gin.Context) {
	id := c.Param("id")

	values, err := h.service.GetDeviceStatus(c.Request.Context(), id)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DeviceStatusResponse{
		DeviceID: id,
		Values:   values,
	})
}

// Control handles POST /devices/:id/control
// @Summary      Control a device
// @Description  Writes a scalar value to one resource of a device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id       path      string                      true  "Vendor device ID"
// @Param        request  body      types.ControlDeviceRequest  true  "Resource write"
// @Success      200  {object}  types.ControlDeviceResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid payload"
// @Failure      502  {object}  types.ErrorResponse  "Vendor or transport error"
// @Router       /devices/{id}/control [post]
func (h *DevicesHandler) Control(c *gin.Context) {
	id := c.Param("id")

	var req types.ControlDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_body",
			Message: err.Error(),
		})
		return
	}

	payload := map[string]any{
		"deviceId":   id,
		"resourceId": req.ResourceID,
		"value":      req.Value,
	}
	if err := h.validator.Validate(schema.ControlRequest, payload); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
		return
	}

	if err := h.service.ControlDevice(c.Request.Context(), id, req.ResourceID, req.Value); err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.ControlDeviceResponse{
		DeviceID:   id,
		ResourceID: req.ResourceID,
		Value:      req.Value,
	})
}

// History handles GET /devices/:id/history
// @Summary      Get device history
// @Description  Returns recorded samples for one device resource between two ISO-8601 timestamps
// @Tags         devices
// @Produce      json
// @Param        id          path      string  true   "Vendor device ID"
// @Param        resource_id query     string  true   "Resource ID on the device"
// @Param        start_time  query     string  true   "Range start (ISO-8601)"
// @Param        end_time    query     string  true   "Range end (ISO-8601)"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        page_size   query     int     false  "Samples per page (default 50)"
// @Success      200  {object}  types.DeviceHistoryResponse
// @Failure      400  {object}  types.ErrorResponse  "Invalid time format"
// @Failure      502  {object}  types.ErrorResponse  "Vendor or transport error"
// @Router       /devices/{id}/history [get]
func (h *DevicesHandler) History(c *gin.Context) {
	q := aqara.HistoryQuery{
		DID:        c.Param("id"),
		ResourceID: c.Query("resource_id"),
		StartTime:  c.Query("start_time"),
		EndTime:    c.Query("end_time"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 50),
	}

	history, err := h.service.DeviceHistory(c.Request.Context(), q)
	if err != nil {
		renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DeviceHistoryResponse{
		DeviceID:   q.DID,
		ResourceID: q.ResourceID,
		Points:     history.Data,
		Count:      len(history.Data),
		TotalCount: history.TotalCount,
	})
}

// queryInt parses an integer query parameter, falling back when absent or
// unparsable.
func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
