package handlers

import (
	"net/http"

	"anicards-backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CronHandler exposes the externally-triggered batch jobs. Triggering
// cadence lives outside the service; each request runs one job to
// completion.
type CronHandler struct {
	sync       *services.SyncService
	validation *services.ValidationService
	log        *zap.Logger
}

func NewCronHandler(sync *services.SyncService, validation *services.ValidationService, log *zap.Logger) *CronHandler {
	return &CronHandler{
		sync:       sync,
		validation: validation,
		log:        log,
	}
}

// UpdateStats triggers one synchronizer run.
// @Summary Refresh the most stale user records from AniList
// @Tags cron
// @Produce plain
// @Success 200 {string} string
// @Failure 401 {string} string
// @Failure 500 {string} string
// @Router /api/cron/update-stats [post]
func (h *CronHandler) UpdateStats(c *gin.Context) {
	result, err := h.sync.Run(c.Request.Context())
	if err != nil {
		h.log.Error("stats cron run failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Cron job failed")
		return
	}
	c.String(http.StatusOK, result.Summary())
}

// ValidateData triggers one validator run.
// @Summary Scan the store for structural inconsistencies
// @Tags cron
// @Produce json
// @Success 200 {object} models.ValidationReport
// @Failure 401 {string} string
// @Failure 500 {object} ErrorResponse
// @Router /api/cron/validate-data [post]
func (h *CronHandler) ValidateData(c *gin.Context) {
	report, err := h.validation.Run(c.Request.Context())
	if err != nil {
		h.log.Error("validation cron run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Data validation check failed"})
		return
	}
	c.JSON(http.StatusOK, report)
}
