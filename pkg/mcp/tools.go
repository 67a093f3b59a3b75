package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/aqarai/pkg/schema"
)

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	// Health check
	s.mcpServer.AddTool(
		mcp.NewTool("get_health",
			mcp.WithDescription("Report bridge health: configured region, endpoint and response cache size"),
		),
		s.handleGetHealth,
	)

	// List devices
	s.mcpServer.AddTool(
		mcp.NewTool("list_devices",
			mcp.WithDescription("List devices registered on the vendor cloud account, one page at a time"),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default 1)"),
			),
			mcp.WithNumber("page_size",
				mcp.Description("Devices per page (default 50)"),
			),
			mcp.WithBoolean("online_only",
				mcp.Description("Only return devices currently online (default false)"),
			),
		),
		s.handleListDevices,
	)

	// Get device status
	s.mcpServer.AddTool(
		mcp.NewTool("get_device_status",
			mcp.WithDescription("Get the current resource values of a device"),
			mcp.WithString("device_id",
				mcp.Required(),
				mcp.Description("Vendor device ID (did)"),
			),
		),
		s.handleGetDeviceStatus,
	)

	// Control device. Registered with a raw schema because the value may
	// be a string, number or boolean.
	s.mcpServer.AddTool(
		mcp.NewToolWithRawSchema("control_device",
			"Write a value to one resource of a device (e.g. turn a light on)",
			schema.Doc(schema.ControlRequest),
		),
		s.handleControlDevice,
	)

	// List scenes
	s.mcpServer.AddTool(
		mcp.NewTool("list_scenes",
			mcp.WithDescription("List automation scenes defined on the vendor cloud account"),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default 1)"),
			),
			mcp.WithNumber("page_size",
				mcp.Description("Scenes per page (default 50)"),
			),
			mcp.WithBoolean("enabled_only",
				mcp.Description("Only return enabled scenes (default false)"),
			),
		),
		s.handleListScenes,
	)

	// Execute scene
	s.mcpServer.AddTool(
		mcp.NewTool("execute_scene",
			mcp.WithDescription("Trigger a scene by ID; the vendor runs it asynchronously"),
			mcp.WithString("scene_id",
				mcp.Required(),
				mcp.Description("Vendor scene ID"),
			),
		),
		s.handleExecuteScene,
	)

	// Get device history
	s.mcpServer.AddTool(
		mcp.NewTool("get_device_history",
			mcp.WithDescription("Fetch recorded history for one device resource between two ISO-8601 timestamps"),
			mcp.WithString("device_id",
				mcp.Required(),
				mcp.Description("Vendor device ID (did)"),
			),
			mcp.WithString("resource_id",
				mcp.Required(),
				mcp.Description("Resource ID on the device"),
			),
			mcp.WithString("start_time",
				mcp.Required(),
				mcp.Description("Range start, ISO-8601 (e.g. 2024-01-01T00:00:00Z)"),
			),
			mcp.WithString("end_time",
				mcp.Required(),
				mcp.Description("Range end, ISO-8601"),
			),
			mcp.WithNumber("page",
				mcp.Description("Page number, starting at 1 (default 1)"),
			),
			mcp.WithNumber("page_size",
				mcp.Description("Samples per page (default 50)"),
			),
		),
		s.handleGetDeviceHistory,
	)

	// Clear cache
	s.mcpServer.AddTool(
		mcp.NewTool("clear_cache",
			mcp.WithDescription("Drop every cached vendor response so the next reads fetch fresh data"),
		),
		s.handleClearCache,
	)
}
