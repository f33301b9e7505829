package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/facturio/facturio/internal/logger"
	"github.com/facturio/facturio/internal/service"
)

type DashboardHandler struct {
	service service.DashboardService
	log     *logger.Logger
}

func NewDashboardHandler(service service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log,
	}
}

// @Summary Dashboard statistics
// @Description Invoice/client counts, paid revenue and per-status breakdown
// @Tags Dashboard
// @Produce json
// @Success 200 {object} dto.DashboardStatsResponse
// @Router /dashboard/stats [get]
func (h *DashboardHandler) GetStats(c *gin.Context) {
	resp, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
