package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/service"
)

// AutofillHandler exposes the website extraction endpoint used to
// pre-populate the entry form.
type AutofillHandler struct {
	autofill *service.AutofillService
}

// NewAutofillHandler creates a new handler instance.
func NewAutofillHandler(autofill *service.AutofillService) *AutofillHandler {
	return &AutofillHandler{autofill: autofill}
}

type autofillRequest struct {
	Website string `json:"website"`
}

// Extract handles POST /autofill requests.
func (h *AutofillHandler) Extract(c echo.Context) error {
	var req autofillRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.Website = strings.TrimSpace(req.Website)
	if req.Website == "" {
		return Error(c, http.StatusBadRequest, "website is required")
	}

	result, err := h.autofill.Autofill(c.Request().Context(), req.Website)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Error())
		}
		return Error(c, http.StatusBadGateway, "website extraction failed")
	}
	return Success(c, http.StatusOK, "website extracted", result)
}
