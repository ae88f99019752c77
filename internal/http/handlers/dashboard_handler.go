package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/freelance-market/internal/pkg/apperror"
	"github.com/ignatzorin/freelance-market/internal/service"
)

type DashboardHandler struct {
	dashboards *service.DashboardService
}

// NewDashboardHandler создаёт хэндлер кабинетов.
func NewDashboardHandler(dashboards *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards}
}

// GetDashboard обрабатывает GET /dashboard: кабинет по роли актора.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	actor, err := currentActor(c)
	if err != nil {
		fail(c, apperror.ErrUnauthorized)
		return
	}

	if actor.IsFreelancer() {
		dashboard, err := h.dashboards.FreelancerDashboard(c.Request.Context(), actor)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, dashboard)
		return
	}

	dashboard, err := h.dashboards.ClientDashboard(c.Request.Context(), actor)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
