package api

import (
	"net/http"

	"cyclesense-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authRequired := delivery.AuthMiddleware(h.authUsecase)
	sameUser := delivery.RequireSameUser("userId")
	throttled := h.limiter.Middleware()

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.authHandler.Signup)
			auth.POST("/login", h.authHandler.Login)
			auth.GET("/me", authRequired, h.authHandler.Me)
		}

		// Public client configuration
		cfg := api.Group("/config")
		{
			cfg.GET("/supabase", h.settingsHandler.GetSupabaseConfig)
			cfg.GET("/ultrahuman", h.settingsHandler.GetUltrahumanConfig)
		}

		api.POST("/users/sync", authRequired, h.authHandler.SyncUser)

		// Wearable linking and sync (protected)
		ultrahuman := api.Group("/ultrahuman")
		ultrahuman.Use(authRequired)
		{
			ultrahuman.GET("/authorize", h.wearableHandler.Authorize)
			ultrahuman.GET("/status", h.wearableHandler.Status)
			ultrahuman.POST("/callback", h.wearableHandler.Callback)
			ultrahuman.DELETE("", h.wearableHandler.Disconnect)
			ultrahuman.POST("/sync", throttled, h.wearableHandler.Sync)
			ultrahuman.POST("/sync-direct", throttled, h.wearableHandler.SyncDirect)
		}

		// Metric routes (protected)
		metrics := api.Group("/metrics")
		metrics.Use(authRequired)
		{
			metrics.GET("/:userId", sameUser, h.metricHandler.GetMetrics)
			metrics.GET("/:userId/insights", sameUser, h.metricHandler.GetInsights)
		}

		// Forecast routes (protected)
		forecast := api.Group("/forecast")
		forecast.Use(authRequired)
		{
			forecast.POST("/generate", throttled, h.forecastHandler.GenerateForecast)
			forecast.GET("/:userId", sameUser, h.forecastHandler.GetLatestForecast)
			forecast.GET("/:userId/history", sameUser, h.forecastHandler.GetForecastHistory)
		}

		// Cycle routes (protected); by-id routes check ownership in the usecase
		cycles := api.Group("/cycles")
		cycles.Use(authRequired)
		{
			cycles.POST("", h.cycleHandler.CreateCycle)
			cycles.GET("/:userId", sameUser, h.cycleHandler.GetCycles)
			cycles.GET("/:userId/latest", sameUser, h.cycleHandler.GetLatestCycle)
			cycles.PATCH("/:id", h.cycleHandler.UpdateCycle)
		}

		// Goal routes (protected)
		goals := api.Group("/goals")
		goals.Use(authRequired)
		{
			goals.POST("", h.goalHandler.CreateGoal)
			goals.GET("/:userId", sameUser, h.goalHandler.GetGoals)
			goals.PATCH("/:id", h.goalHandler.UpdateGoal)
			goals.DELETE("/:id", h.goalHandler.DeleteGoal)
		}

		// CSV export (protected)
		export := api.Group("/export")
		export.Use(authRequired, sameUser)
		{
			export.GET("/metrics/:userId", h.exportHandler.ExportMetrics)
			export.GET("/cycles/:userId", h.exportHandler.ExportCycles)
			export.GET("/goals/:userId", h.exportHandler.ExportGoals)
		}
	}
}
