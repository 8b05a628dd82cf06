package delivery

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"cyclesense-backend/internal/metric/usecase"

	"github.com/gin-gonic/gin"
)

// MetricHandler serves the metric read endpoints
type MetricHandler struct {
	metricUsecase usecase.MetricUsecase
}

func NewMetricHandler(metricUsecase usecase.MetricUsecase) *MetricHandler {
	return &MetricHandler{metricUsecase: metricUsecase}
}

// GetMetrics returns the most recent days for a user
// GET /api/metrics/:userId?limit=30
func (h *MetricHandler) GetMetrics(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultListLimit)))

	metrics, err := h.metricUsecase.List(c.Param("userId"), limit)
	if err != nil {
		log.Printf("[Metrics] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load metrics"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// GetInsights returns trends, anomalies and correlations
// GET /api/metrics/:userId/insights
func (h *MetricHandler) GetInsights(c *gin.Context) {
	report, err := h.metricUsecase.Insights(c.Param("userId"), time.Now())
	if err != nil {
		log.Printf("[Metrics] insights failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute insights"})
		return
	}

	c.JSON(http.StatusOK, report)
}
