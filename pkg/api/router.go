package api

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/urmzd/aqarai/pkg/api/handlers"
	"github.com/urmzd/aqarai/pkg/aqara"
	"github.com/urmzd/aqarai/pkg/schema"
)

// Router holds the Gin engine and dependencies
type Router struct {
	engine    *gin.Engine
	service   aqara.Service
	validator *schema.Validator
	cfg       aqara.Config
}

// NewRouter creates a new API router
func NewRouter(service aqara.Service, validator *schema.Validator, cfg aqara.Config) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	SetupMiddleware(engine)

	router := &Router{
		engine:    engine,
		service:   service,
		validator: validator,
		cfg:       cfg,
	}

	router.setupRoutes()

	return router
}

// setupRoutes configures all API routes
func (r *Router) setupRoutes() {
	// Swagger UI
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(301, "/swagger/index.html")
	})

	// Health check at root
	healthHandler := handlers.NewHealthHandler(r.service, r.cfg)
	r.engine.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := r.engine.Group("/api/v1")
	{
		// Health
		v1.GET("/health", healthHandler.Health)

		// Devices
		devicesHandler := handlers.NewDevicesHandler(r.service, r.validator)
		devices := v1.Group("/devices")
		{
			devices.GET("", devicesHandler.ListDevices)
			devices.GET("/:id/status", devicesHandler.GetStatus)
			devices.POST("/:id/control", devicesHandler.Control)
			devices.GET("/:id/history", devicesHandler.History)
		}

		// Scenes
		scenesHandler := handlers.NewScenesHandler(r.service)
		scenes := v1.Group("/scenes")
		{
			scenes.GET("", scenesHandler.ListScenes)
			scenes.POST("/:id/run", scenesHandler.RunScene)
		}

		// Cache
		cacheHandler := handlers.NewCacheHandler(r.service)
		v1.DELETE("/cache", cacheHandler.Clear)
	}
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

// Engine exposes the underlying Gin engine, mainly for tests.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
