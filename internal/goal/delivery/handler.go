package delivery

import (
	"errors"
	"log"
	"net/http"

	"cyclesense-backend/internal/goal/domain"
	"cyclesense-backend/internal/goal/dto"
	"cyclesense-backend/internal/goal/usecase"
	"cyclesense-backend/pkg/httputil"

	"github.com/gin-gonic/gin"
)

// GoalHandler handles health goal requests
type GoalHandler struct {
	goalUsecase usecase.GoalUsecase
}

func NewGoalHandler(goalUsecase usecase.GoalUsecase) *GoalHandler {
	return &GoalHandler{goalUsecase: goalUsecase}
}

// GetGoals GET /api/goals/:userId?status=active
func (h *GoalHandler) GetGoals(c *gin.Context) {
	goals, err := h.goalUsecase.List(c.Param("userId"), c.Query("status"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// CreateGoal POST /api/goals
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req dto.CreateGoalRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	goal, err := h.goalUsecase.Create(c.GetString("userID"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// UpdateGoal PATCH /api/goals/:id
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	var req dto.UpdateGoalRequest
	if !httputil.BindJSON(c, &req) {
		return
	}

	goal, err := h.goalUsecase.Update(c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goal)
}

// DeleteGoal DELETE /api/goals/:id
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.goalUsecase.Delete(c.GetString("userID"), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted successfully"})
}

func (h *GoalHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrGoalNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
	case errors.Is(err, domain.ErrInvalidDate):
		httputil.ValidationError(c, "deadline", "date")
	case errors.Is(err, domain.ErrInvalidStatus):
		httputil.ValidationError(c, "status", "oneof")
	default:
		log.Printf("[Goals] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "goal request failed"})
	}
}
