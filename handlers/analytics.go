package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vichannnnn/holy-grail-sub001/repository"
	"github.com/vichannnnn/holy-grail-sub001/types"
)

// AnalyticsHandler records ad banner impressions. Both endpoints are
// fire-and-forget from the client's perspective.
type AnalyticsHandler struct {
	repo *repository.AnalyticsRepository
}

func NewAnalyticsHandler(repo *repository.AnalyticsRepository) *AnalyticsHandler {
	return &AnalyticsHandler{repo: repo}
}

type adEventRequest struct {
	AdID string `json:"ad_id" binding:"required"`
}

// AdClick handles POST /ad_analytics/ad_click.
func (h *AnalyticsHandler) AdClick(c *gin.Context) {
	var req adEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if err := h.repo.RecordClick(req.AdID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}

// AdStats handles GET /ad_analytics/stats/:ad_id. Admin only.
func (h *AnalyticsHandler) AdStats(c *gin.Context) {
	stats, err := h.repo.GetStats(c.Param("ad_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "No stats for this ad"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(stats))
}

// AdView handles POST /ad_analytics/ad_view.
func (h *AnalyticsHandler) AdView(c *gin.Context) {
	var req adEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if err := h.repo.RecordView(req.AdID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(nil))
}
