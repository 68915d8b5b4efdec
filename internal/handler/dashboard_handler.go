package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/service"
)

// DashboardHandler exposes the aggregate metric endpoints.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler creates a new handler instance.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Summary handles GET /dashboard/summary requests.
func (h *DashboardHandler) Summary(c echo.Context) error {
	return Success(c, http.StatusOK, "summary computed", h.dashboard.Summary(c.Request().Context()))
}

// States handles GET /dashboard/states requests.
func (h *DashboardHandler) States(c echo.Context) error {
	return Success(c, http.StatusOK, "state distribution computed", h.dashboard.StateHistogram(c.Request().Context()))
}

// Industries handles GET /dashboard/industries requests.
func (h *DashboardHandler) Industries(c echo.Context) error {
	return Success(c, http.StatusOK, "industry distribution computed", h.dashboard.IndustryHistogram(c.Request().Context()))
}

// Recent handles GET /dashboard/recent requests.
func (h *DashboardHandler) Recent(c echo.Context) error {
	return Success(c, http.StatusOK, "recent companies retrieved", h.dashboard.RecentCompanies(c.Request().Context()))
}
