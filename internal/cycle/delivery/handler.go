package delivery

import (
	"errors"
	"log"
	"net/http"
	"time"

	"cyclesense-backend/internal/cycle/domain"
	"cyclesense-backend/internal/cycle/dto"
	"cyclesense-backend/internal/cycle/usecase"
	"cyclesense-backend/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// CycleHandler handles period tracking requests
type CycleHandler struct {
	cycleUsecase usecase.CycleUsecase
}

func NewCycleHandler(cycleUsecase usecase.CycleUsecase) *CycleHandler {
	return &CycleHandler{cycleUsecase: cycleUsecase}
}

// GetCycles GET /api/cycles/:userId
func (h *CycleHandler) GetCycles(c *gin.Context) {
	cycles, err := h.cycleUsecase.List(c.Param("userId"))
	if err != nil {
		log.Printf("[Cycles] list failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cycles"})
		return
	}
	c.JSON(http.StatusOK, cycles)
}

// GetLatestCycle returns the latest cycle with phase, day and next period,
// or null when nothing is logged.
// GET /api/cycles/:userId/latest
func (h *CycleHandler) GetLatestCycle(c *gin.Context) {
	latest, err := h.cycleUsecase.Latest(c.Param("userId"), time.Now())
	if err != nil {
		log.Printf("[Cycles] latest failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cycle"})
		return
	}
	if latest == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, latest)
}

// CreateCycle POST /api/cycles
func (h *CycleHandler) CreateCycle(c *gin.Context) {
	var req dto.CreateCycleRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	cycle, err := h.cycleUsecase.Create(c.GetString("userID"), &req, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cycle)
}

// UpdateCycle PATCH /api/cycles/:id
func (h *CycleHandler) UpdateCycle(c *gin.Context) {
	var req dto.UpdateCycleRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	cycle, err := h.cycleUsecase.Update(c.GetString("userID"), c.Param("id"), &req, time.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cycle)
}

func (h *CycleHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrCycleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Cycle not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrInvalidDate):
		httputil.ValidationError(c, "date", "format")
	case errors.Is(err, domain.ErrFutureStartDate):
		httputil.ValidationError(c, "period_start_date", "not_future")
	case errors.Is(err, domain.ErrEndBeforeStart):
		httputil.ValidationError(c, "period_end_date", "after_start")
	default:
		log.Printf("[Cycles] write failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save cycle"})
	}
}
