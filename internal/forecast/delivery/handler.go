package delivery

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cyclesense-backend/internal/forecast/domain"
	"cyclesense-backend/internal/forecast/usecase"
	"cyclesense-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

type ForecastHandler struct {
	forecastUsecase usecase.ForecastUsecase
}

func NewForecastHandler(forecastUsecase usecase.ForecastUsecase) *ForecastHandler {
	return &ForecastHandler{forecastUsecase: forecastUsecase}
}

// GetLatestForecast GET /api/forecast/:userId
func (h *ForecastHandler) GetLatestForecast(c *gin.Context) {
	forecast, err := h.forecastUsecase.Latest(c.Param("userId"))
	if err != nil {
		log.Printf("[Forecast] latest failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get forecast"})
		return
	}
	if forecast == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, forecast)
}

// GetForecastHistory GET /api/forecast/:userId/history?limit=10
func (h *ForecastHandler) GetForecastHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultHistoryLimit)))

	forecasts, err := h.forecastUsecase.History(c.Param("userId"), limit)
	if err != nil {
		log.Printf("[Forecast] history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get forecasts"})
		return
	}
	c.JSON(http.StatusOK, forecasts)
}

// GenerateForecast generates a forecast for the authenticated user
// POST /api/forecast/generate
func (h *ForecastHandler) GenerateForecast(c *gin.Context) {
	bearer := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")

	forecast, err := h.forecastUsecase.Generate(c.Request.Context(), c.GetString("userID"), bearer, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoMetrics):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrGenerationFailed):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  domain.ErrGenerationFailed.Error(),
				"detail": upstreamDetail(err),
			})
		default:
			log.Printf("[Forecast] generate failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate forecast"})
		}
		return
	}

	c.JSON(http.StatusCreated, forecast)
}

// upstreamDetail is the backend's own message when it sent one, otherwise the
// wrapped cause.
func upstreamDetail(err error) string {
	var apiErr *ai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return strings.TrimPrefix(err.Error(), domain.ErrGenerationFailed.Error()+": ")
}
