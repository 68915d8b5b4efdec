package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/service"
)

// ActivityHandler exposes per-creator entry statistics.
type ActivityHandler struct {
	activity *service.ActivityService
}

// NewActivityHandler creates a new handler instance.
func NewActivityHandler(activity *service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// Stats handles GET /admin/activity requests.
func (h *ActivityHandler) Stats(c echo.Context) error {
	stats, err := h.activity.Stats(c.Request().Context())
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to compute activity stats")
	}
	return Success(c, http.StatusOK, "activity stats computed", stats)
}
