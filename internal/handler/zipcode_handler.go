package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
	"github.com/PritamDhobale/data-entry-webapp/internal/service"
)

// ZipHandler proxies ZIP code lookups.
type ZipHandler struct {
	zips *service.ZipLookupService
}

// NewZipHandler creates a new handler instance.
func NewZipHandler(zips *service.ZipLookupService) *ZipHandler {
	return &ZipHandler{zips: zips}
}

// Lookup handles GET /zipcode/:zip requests.
func (h *ZipHandler) Lookup(c echo.Context) error {
	info, err := h.zips.Lookup(c.Request().Context(), c.Param("zip"))
	if err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			return Error(c, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, repository.ErrZipNotFound):
			return Error(c, http.StatusNotFound, "zip code not found")
		default:
			return Error(c, http.StatusBadGateway, "zip lookup failed")
		}
	}
	return Success(c, http.StatusOK, "zip code resolved", info)
}
