package api

import (
	authDelivery "cyclesense-backend/internal/auth/delivery"
	authUsecase "cyclesense-backend/internal/auth/usecase"
	cycleDelivery "cyclesense-backend/internal/cycle/delivery"
	cycleUsecase "cyclesense-backend/internal/cycle/usecase"
	exportDelivery "cyclesense-backend/internal/export/delivery"
	exportUsecase "cyclesense-backend/internal/export/usecase"
	forecastDelivery "cyclesense-backend/internal/forecast/delivery"
	forecastUsecase "cyclesense-backend/internal/forecast/usecase"
	goalDelivery "cyclesense-backend/internal/goal/delivery"
	goalUsecase "cyclesense-backend/internal/goal/usecase"
	metricDelivery "cyclesense-backend/internal/metric/delivery"
	metricUsecase "cyclesense-backend/internal/metric/usecase"
	wearableDelivery "cyclesense-backend/internal/wearable/delivery"
	wearableUsecase "cyclesense-backend/internal/wearable/usecase"
	"cyclesense-backend/pkg/config"
	"cyclesense-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Usecases groups every feature the HTTP layer serves.
type Usecases struct {
	Auth     authUsecase.AuthUsecase
	Metric   metricUsecase.MetricUsecase
	Forecast forecastUsecase.ForecastUsecase
	Cycle    cycleUsecase.CycleUsecase
	Goal     goalUsecase.GoalUsecase
	Wearable wearableUsecase.WearableUsecase
	Export   exportUsecase.ExportUsecase
}

type Handler struct {
	config      *config.Config
	authUsecase authUsecase.AuthUsecase
	limiter     *ratelimit.Limiter

	authHandler     *authDelivery.AuthHandler
	metricHandler   *metricDelivery.MetricHandler
	forecastHandler *forecastDelivery.ForecastHandler
	cycleHandler    *cycleDelivery.CycleHandler
	goalHandler     *goalDelivery.GoalHandler
	wearableHandler *wearableDelivery.WearableHandler
	exportHandler   *exportDelivery.ExportHandler
	settingsHandler *SettingsHandler
}

func NewHandler(cfg *config.Config, uc Usecases) *Handler {
	return &Handler{
		config:      cfg,
		authUsecase: uc.Auth,
		limiter:     ratelimit.New(cfg.RateLimitRPS, cfg.RateLimitBurst),

		authHandler:     authDelivery.NewAuthHandler(uc.Auth),
		metricHandler:   metricDelivery.NewMetricHandler(uc.Metric),
		forecastHandler: forecastDelivery.NewForecastHandler(uc.Forecast),
		cycleHandler:    cycleDelivery.NewCycleHandler(uc.Cycle),
		goalHandler:     goalDelivery.NewGoalHandler(uc.Goal),
		wearableHandler: wearableDelivery.NewWearableHandler(uc.Wearable),
		exportHandler:   exportDelivery.NewExportHandler(uc.Export),
		settingsHandler: NewSettingsHandler(cfg),
	}
}

// Engine builds the gin engine with middleware and every route mounted.
func (h *Handler) Engine() *gin.Engine {
	if h.config.GinMode != "" {
		gin.SetMode(h.config.GinMode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case h.config.CORSOrigin != "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", h.config.CORSOrigin)
		case origin != "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		default:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Engine().Run(addr)
}
