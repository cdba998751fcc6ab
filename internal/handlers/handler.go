package handlers

import (
	"heating_panel/internal/logger"
	"heating_panel/internal/metrics"
	"heating_panel/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	hub      *Hub
	metrics  *metrics.Metrics
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
// A nil hub is replaced by one bound to services.Monitoring.
func NewHandler(services *service.Service, hub *Hub, m *metrics.Metrics, log *logger.Logger) *Handler {
	if hub == nil {
		hub = NewHub(services.Monitoring, log)
	}
	return &Handler{services: services, hub: hub, metrics: m, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(h.metrics.Handler()))

	h.registerAPIRoutes(router)

	// view stream, same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.GET("/view", h.getView)
		h.registerSubsystemRoutes(api)
		h.registerModeRoutes(api)
		h.registerHistoryRoutes(api)
	}
}

func (h *Handler) registerSubsystemRoutes(api *gin.RouterGroup) {
	subsystems := api.Group("/subsystems/:subsystem")
	{
		// Body example: {"state":true}
		subsystems.POST("/toggle", h.toggleSubsystem)
		// Body example: {"minutes":90}
		subsystems.POST("/on-for", h.setSubsystemOnFor)
	}
}

func (h *Handler) registerModeRoutes(api *gin.RouterGroup) {
	api.GET("/testing", h.getTesting)
	api.PUT("/testing", h.setTesting)
}

func (h *Handler) registerHistoryRoutes(api *gin.RouterGroup) {
	api.GET("/dispatches", h.listDispatches)
	api.GET("/dispatches/:id", h.getDispatch)
}
