package types

import "github.com/urmzd/aqarai/pkg/aqara"

// --- Request DTOs ---

// ControlDeviceRequest is the request body for POST /devices/:id/control
type ControlDeviceRequest struct {
	ResourceID string `json:"resourceId" binding:"required"`
	Value      any    `json:"value"`
}

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status       string `json:"status"`
	Region       string `json:"region"`
	Endpoint     string `json:"endpoint"`
	CacheEntries int    `json:"cache_entries"`
	Timestamp    string `json:"timestamp"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Devices    []aqara.Device `json:"devices"`
	Count      int            `json:"count"`
	TotalCount int            `json:"total_count,omitempty"`
}

// DeviceStatusResponse is returned from GET /devices/:id/status
type DeviceStatusResponse struct {
	DeviceID string                `json:"device_id"`
	Values   []aqara.ResourceValue `json:"values"`
}

// ControlDeviceResponse is returned from POST /devices/:id/control
type ControlDeviceResponse struct {
	DeviceID   string `json:"device_id"`
	ResourceID string `json:"resource_id"`
	Value      any    `json:"value"`
}

// ListScenesResponse is returned from GET /scenes
type ListScenesResponse struct {
	Scenes     []aqara.Scene `json:"scenes"`
	Count      int           `json:"count"`
	TotalCount int           `json:"total_count,omitempty"`
}

// RunSceneResponse is returned from POST /scenes/:id/run
type RunSceneResponse struct {
	SceneID string `json:"scene_id"`
	Status  string `json:"status"`
}

// DeviceHistoryResponse is returned from GET /devices/:id/history
type DeviceHistoryResponse struct {
	DeviceID   string               `json:"device_id"`
	ResourceID string               `json:"resource_id"`
	Points     []aqara.HistoryPoint `json:"points"`
	Count      int                  `json:"count"`
	TotalCount int                  `json:"total_count,omitempty"`
}

// ClearCacheResponse is returned from DELETE /cache
type ClearCacheResponse struct {
	Status string `json:"status"`
}
