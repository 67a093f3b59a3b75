package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/aqarai/pkg/aqara"
	"github.com/urmzd/aqarai/pkg/schema"
)

func (s *Server) handleGetHealth(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := GetHealthOutput{
		Success:      true,
		Summary:      fmt.Sprintf("Bridge configured for region %q", s.cfg.Region),
		Region:       s.cfg.Region,
		Endpoint:     s.cfg.BaseURL(),
		CacheEntries: s.service.CacheLen(),
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := optionalInt(request, "page", 1)
	size := optionalInt(request, "page_size", 50)
	onlineOnly := optionalBool(request, "online_only")

	var out ListDevicesOutput
	if onlineOnly {
		devices, err := s.service.FilterDevices(ctx, page, size, true, 0)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
		}
		out = ListDevicesOutput{
			Success: true,
			Summary: fmt.Sprintf("%d online device(s) on page %d", len(devices), page),
			Devices: devices,
			Count:   len(devices),
		}
	} else {
		listed, err := s.service.ListDevices(ctx, page, size)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
		}
		out = ListDevicesOutput{
			Success:    true,
			Summary:    fmt.Sprintf("%d device(s) on page %d of %d total", len(listed.Data), page, listed.TotalCount),
			Devices:    listed.Data,
			Count:      len(listed.Data),
			TotalCount: listed.TotalCount,
		}
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDeviceStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	values, err := s.service.GetDeviceStatus(ctx, deviceID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get device status: %s", err)), nil
	}

	out := GetDeviceStatusOutput{
		Success:  true,
		Summary:  fmt.Sprintf("%d resource value(s) for device %s", len(values), deviceID),
		DeviceID: deviceID,
		Values:   values,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleControlDevice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	// The raw tool schema names the control fields; validate the payload
	// against it before touching the network.
	payload := map[string]any{}
	for _, k := range []string{"deviceId", "resourceId", "value"} {
		if v, ok := args[k]; ok {
			payload[k] = v
		}
	}
	if err := s.validator.Validate(schema.ControlRequest, payload); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validation error: %s", err)), nil
	}

	deviceID := payload["deviceId"].(string)
	resourceID := payload["resourceId"].(string)
	value := payload["value"]

	if err := s.service.ControlDevice(ctx, deviceID, resourceID, value); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to control device: %s", err)), nil
	}

	out := ControlDeviceOutput{
		Success:    true,
		Summary:    fmt.Sprintf("Wrote %v to resource %s of device %s", value, resourceID, deviceID),
		DeviceID:   deviceID,
		ResourceID: resourceID,
		Value:      value,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListScenes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := optionalInt(request, "page", 1)
	size := optionalInt(request, "page_size", 50)
	enabledOnly := optionalBool(request, "enabled_only")

	listed, err := s.service.ListScenes(ctx, page, size)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list scenes: %s", err)), nil
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

	out := ListScenesOutput{
		Success:    true,
		Summary:    fmt.Sprintf("%d scene(s) on page %d", len(scenes), page),
		Scenes:     scenes,
		Count:      len(scenes),
		TotalCount: listed.TotalCount,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleExecuteScene(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sceneID, err := requiredString(request, "scene_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.service.ExecuteScene(ctx, sceneID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to execute scene: %s", err)), nil
	}

	out := ExecuteSceneOutput{
		Success: true,
		Summary: fmt.Sprintf("Scene %s triggered", sceneID),
		SceneID: sceneID,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleGetDeviceHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deviceID, err := requiredString(request, "device_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	resourceID, err := requiredString(request, "resource_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startTime, err := requiredString(request, "start_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endTime, err := requiredString(request, "end_time")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	q := aqara.HistoryQuery{
		DID:        deviceID,
		ResourceID: resourceID,
		StartTime:  startTime,
		EndTime:    endTime,
		Page:       optionalInt(request, "page", 1),
		PageSize:   optionalInt(request, "page_size", 50),
	}

	history, err := s.service.DeviceHistory(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to fetch history: %s", err)), nil
	}

	out := GetDeviceHistoryOutput{
		Success:    true,
		Summary:    fmt.Sprintf("%d sample(s) for resource %s of device %s", len(history.Data), resourceID, deviceID),
		DeviceID:   deviceID,
		ResourceID: resourceID,
		Points:     history.Data,
		Count:      len(history.Data),
		TotalCount: history.TotalCount,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.service.ClearCache()

	out := ClearCacheOutput{
		Success: true,
		Summary: "Response cache cleared",
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

// --- helpers ---

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func optionalInt(request mcp.CallToolRequest, key string, fallback int) int {
	if v, ok := request.GetArguments()[key]; ok {
		if f, ok := v.(float64); ok && f > 0 {
			return int(f)
		}
	}
	return fallback
}

func optionalBool(request mcp.CallToolRequest, key string) bool {
	if v, ok := request.GetArguments()[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func formatJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}
