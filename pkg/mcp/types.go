package mcp

import "github.com/urmzd/aqarai/pkg/aqara"

// Every successful tool result is a JSON envelope with success=true and a
// one-line human summary; failures are rendered as plain-text tool errors
// and never thrown past the protocol boundary.

// --- Health Tool ---

// GetHealthOutput is the output for the get_health tool
type GetHealthOutput struct {
	Success      bool   `json:"success"`
	Summary      string `json:"summary"`
	Region       string `json:"region" jsonschema:"description=Configured vendor region"`
	Endpoint     string `json:"endpoint" jsonschema:"description=Vendor base URL in use"`
	CacheEntries int    `json:"cache_entries" jsonschema:"description=Live response cache entries"`
	Timestamp    string `json:"timestamp" jsonschema:"description=ISO8601 timestamp"`
}

// --- List Devices Tool ---

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Success    bool           `json:"success"`
	Summary    string         `json:"summary"`
	Devices    []aqara.Device `json:"devices" jsonschema:"description=Devices on this page"`
	Count      int            `json:"count" jsonschema:"description=Number of devices returned"`
	TotalCount int            `json:"total_count,omitempty" jsonschema:"description=Total devices on the account"`
}

// --- Get Device Status Tool ---

// GetDeviceStatusOutput is the output for the get_device_status tool
type GetDeviceStatusOutput struct {
	Success  bool                  `json:"success"`
	Summary  string                `json:"summary"`
	DeviceID string                `json:"device_id"`
	Values   []aqara.ResourceValue `json:"values" jsonschema:"description=Current resource values"`
}

// --- Control Device Tool ---

// ControlDeviceOutput is the output for the control_device tool
type ControlDeviceOutput struct {
	Success    bool   `json:"success"`
	Summary    string `json:"summary"`
	DeviceID   string `json:"device_id"`
	ResourceID string `json:"resource_id"`
	Value      any    `json:"value"`
}

// --- List Scenes Tool ---

// ListScenesOutput is the output for the list_scenes tool
type ListScenesOutput struct {
	Success    bool          `json:"success"`
	Summary    string        `json:"summary"`
	Scenes     []aqara.Scene `json:"scenes" jsonschema:"description=Scenes on this page"`
	Count      int           `json:"count"`
	TotalCount int           `json:"total_count,omitempty"`
}

// --- Execute Scene Tool ---

// ExecuteSceneOutput is the output for the execute_scene tool
type ExecuteSceneOutput struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
	SceneID string `json:"scene_id"`
}

// --- Get Device History Tool ---

// GetDeviceHistoryOutput is the output for the get_device_history tool
type GetDeviceHistoryOutput struct {
	Success    bool                 `json:"success"`
	Summary    string               `json:"summary"`
	DeviceID   string               `json:"device_id"`
	ResourceID string               `json:"resource_id"`
	Points     []aqara.HistoryPoint `json:"points" jsonschema:"description=Recorded samples, oldest first"`
	Count      int                  `json:"count"`
	TotalCount int                  `json:"total_count,omitempty"`
}

// --- Clear Cache Tool ---

// ClearCacheOutput is the output for the clear_cache tool
type ClearCacheOutput struct {
	Success bool   `json:"success"`
	Summary string `json:"summary"`
}
