package delivery

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"cyclesense-backend/internal/export/domain"
	"cyclesense-backend/internal/export/usecase"
	"cyclesense-backend/pkg/httputil"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportUsecase usecase.ExportUsecase
}

func NewExportHandler(exportUsecase usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{exportUsecase: exportUsecase}
}

// ExportMetrics GET /api/export/metrics/:userId?startDate=&endDate=
func (h *ExportHandler) ExportMetrics(c *gin.Context) {
	file, err := h.exportUsecase.Metrics(c.Param("userId"), c.Query("startDate"), c.Query("endDate"), time.Now())
	h.respond(c, file, err)
}

// ExportCycles GET /api/export/cycles/:userId?startDate=&endDate=
func (h *ExportHandler) ExportCycles(c *gin.Context) {
	file, err := h.exportUsecase.Cycles(c.Param("userId"), c.Query("startDate"), c.Query("endDate"), time.Now())
	h.respond(c, file, err)
}

// ExportGoals GET /api/export/goals/:userId
func (h *ExportHandler) ExportGoals(c *gin.Context) {
	file, err := h.exportUsecase.Goals(c.Param("userId"), time.Now())
	h.respond(c, file, err)
}

func (h *ExportHandler) respond(c *gin.Context, file *domain.File, err error) {
	if err != nil {
		var dateErr *domain.DateError
		switch {
		case errors.As(err, &dateErr):
			httputil.ValidationError(c, dateErr.Field, "format")
		case errors.Is(err, domain.ErrInvalidRange):
			httputil.Error(c, http.StatusBadRequest, err.Error())
		default:
			log.Printf("[Export] failed: %v", err)
			httputil.Error(c, http.StatusInternalServerError, "failed to export data")
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", file.Content)
}
