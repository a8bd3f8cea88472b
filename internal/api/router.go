package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"timeout/internal/api/handlers"
	"timeout/internal/api/middleware"
	"timeout/internal/blocking"
	"timeout/internal/core"
	"timeout/internal/events"
)

// RouterConfig holds dependencies for the API router
type RouterConfig struct {
	Manager  *core.DashboardManager
	Blocking *blocking.Coordinator
	Hub      *events.Hub // Optional: event stream endpoint is only registered when set
	APIKey   string
	Logger   *slog.Logger
}

// NewRouter creates and configures the Gin router
func NewRouter(config RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(config.Logger))
	router.Use(middleware.Logging(config.Logger))
	router.Use(middleware.ContentType())

	// Health check (no auth)
	healthHandler := handlers.NewHealthHandler()
	router.GET("/health", healthHandler.GetHealth)

	// API v1 routes (with authentication)
	v1 := router.Group("/v1")
	v1.Use(authMiddleware(config.APIKey))
	{
		dashboardHandler := handlers.NewDashboardHandler(config.Manager, config.Logger)
		v1.GET("/dashboards/:userId", dashboardHandler.GetDashboard)
		v1.PATCH("/dashboards/:userId/tier", dashboardHandler.UpdateTier)

		// Schedule
		v1.PATCH("/dashboards/:userId/schedule", dashboardHandler.UpdateSchedule)
		v1.POST("/dashboards/:userId/schedule/days/:day/toggle", dashboardHandler.ToggleDay)
		v1.POST("/dashboards/:userId/schedule/slots", dashboardHandler.AddSlot)
		v1.PATCH("/dashboards/:userId/schedule/slots/:slotId", dashboardHandler.UpdateSlot)
		v1.DELETE("/dashboards/:userId/schedule/slots/:slotId", dashboardHandler.RemoveSlot)

		// Locks and authorization
		v1.POST("/dashboards/:userId/locks/self/enable", dashboardHandler.EnableSelfLock)
		v1.POST("/dashboards/:userId/locks/self/disable", dashboardHandler.DisableSelfLock)
		v1.POST("/dashboards/:userId/locks/partner/enable", dashboardHandler.EnablePartnerLock)
		v1.POST("/dashboards/:userId/locks/partner/disable", dashboardHandler.DisablePartnerLock)
		v1.POST("/dashboards/:userId/authorization", dashboardHandler.SubmitAuthorization)
		v1.DELETE("/dashboards/:userId/authorization", dashboardHandler.CancelAuthorization)

		// Quick-lock timer
		v1.POST("/dashboards/:userId/timer/start", dashboardHandler.StartTimer)
		v1.POST("/dashboards/:userId/timer/pause", dashboardHandler.PauseTimer)
		v1.POST("/dashboards/:userId/timer/resume", dashboardHandler.ResumeTimer)
		v1.POST("/dashboards/:userId/timer/reset", dashboardHandler.ResetTimer)
		v1.POST("/dashboards/:userId/timer/add", dashboardHandler.AddTimerTime)

		// Blocklist
		blocksHandler := handlers.NewBlocksHandler(config.Blocking, config.Logger)
		v1.GET("/dashboards/:userId/blocklist", blocksHandler.GetBlocklist)
		v1.POST("/dashboards/:userId/blocklist/apps", blocksHandler.AddApp)
		v1.DELETE("/dashboards/:userId/blocklist/apps/:appId", blocksHandler.RemoveApp)
		v1.POST("/dashboards/:userId/blocklist/websites", blocksHandler.AddWebsite)
		v1.DELETE("/dashboards/:userId/blocklist/websites/:websiteId", blocksHandler.RemoveWebsite)

		// Event stream
		if config.Hub != nil {
			eventsHandler := handlers.NewEventsHandler(config.Hub, config.Logger)
			v1.GET("/events", eventsHandler.Subscribe)
		}
	}

	return router
}

// authMiddleware verifies API key authentication
func authMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-Timeout-Key")
		if providedKey != apiKey {
			c.JSON(401, gin.H{
				"error": "Unauthorized",
				"code":  "UNAUTHORIZED",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
