package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/service"
)

// ImportHandler handles CSV ingestion and the matching template download.
type ImportHandler struct {
	records *service.RecordsService
}

// NewImportHandler wires a handler backed by the records service.
func NewImportHandler(records *service.RecordsService) *ImportHandler {
	return &ImportHandler{records: records}
}

// UploadCSV handles POST /records/import requests.
func (h *ImportHandler) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	userID, ok := currentUserID(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing user identity")
	}

	summary, err := h.records.ImportCSV(c.Request().Context(), file, currentRole(c), userID)
	if err != nil {
		var validationErr service.ValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to process csv")
	}

	return Success(c, http.StatusOK, "records CSV processed", summary)
}

// DownloadTemplate handles GET /records/template requests.
func (h *ImportHandler) DownloadTemplate(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="import-template.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.records.TemplateCSV(c.Response(), currentRole(c))
}

// ExportCSV handles GET /records/export requests.
func (h *ImportHandler) ExportCSV(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="companies-export.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return h.records.ExportCSV(c.Request().Context(), c.Response(), currentRole(c))
}
