package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/urmzd/aqarai/pkg/aqara"
	"github.com/urmzd/aqarai/pkg/schema"
)

// Server wraps the MCP server with the vendor cloud bridge tools
type Server struct {
	mcpServer *server.MCPServer
	service   aqara.Service
	validator *schema.Validator
	cfg       aqara.Config
}

// NewServer creates a new MCP server exposing the bridge operations
func NewServer(service aqara.Service, validator *schema.Validator, cfg aqara.Config) *Server {
	s := &Server{
		service:   service,
		validator: validator,
		cfg:       cfg,
	}

	// Create MCP server
	s.mcpServer = server.NewMCPServer(
		"aqarai",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	// Register all tools
	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
