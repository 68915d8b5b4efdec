package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	middleware "github.com/PritamDhobale/data-entry-webapp/internal/middleware"
	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
	"github.com/PritamDhobale/data-entry-webapp/internal/service"
)

// RecordsHandler exposes company record CRUD endpoints.
type RecordsHandler struct {
	records *service.RecordsService
}

// NewRecordsHandler creates a new handler instance.
func NewRecordsHandler(records *service.RecordsService) *RecordsHandler {
	return &RecordsHandler{records: records}
}

// currentRole reads the authenticated role stored by the JWT middleware.
func currentRole(c echo.Context) string {
	role, _ := c.Get(middleware.ContextKeyUserRole).(string)
	return role
}

// currentUserID reads the authenticated user id stored by the JWT middleware.
func currentUserID(c echo.Context) (uuid.UUID, bool) {
	raw, _ := c.Get(middleware.ContextKeyUserID).(string)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func recordIDParam(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// List handles GET /records requests.
func (h *RecordsHandler) List(c echo.Context) error {
	records, err := h.records.ListRecords(c.Request().Context(), currentRole(c))
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list records")
	}
	return Success(c, http.StatusOK, "records retrieved", records)
}

// Get handles GET /records/:id requests.
func (h *RecordsHandler) Get(c echo.Context) error {
	id, err := recordIDParam(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid record id")
	}

	record, err := h.records.GetRecord(c.Request().Context(), id, currentRole(c))
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return Error(c, http.StatusNotFound, "record not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to fetch record")
	}
	return Success(c, http.StatusOK, "record retrieved", record)
}

// Create handles POST /records requests.
func (h *RecordsHandler) Create(c echo.Context) error {
	var payload dto.RecordPayload
	if err := c.Bind(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	userID, ok := currentUserID(c)
	if !ok {
		return Error(c, http.StatusUnauthorized, "missing user identity")
	}

	id, err := h.records.CreateRecord(c.Request().Context(), payload, currentRole(c), userID)
	if err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to create record")
	}
	return Success(c, http.StatusCreated, "record created", dto.CreateRecordResponse{ID: id})
}

// Update handles PUT /records/:id requests.
func (h *RecordsHandler) Update(c echo.Context) error {
	id, err := recordIDParam(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid record id")
	}

	var payload dto.RecordPayload
	if err := c.Bind(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	if err := h.records.UpdateRecord(c.Request().Context(), id, payload, currentRole(c)); err != nil {
		var vErr service.ValidationError
		switch {
		case errors.As(err, &vErr):
			return Error(c, http.StatusBadRequest, vErr.Error())
		case errors.Is(err, repository.ErrRecordNotFound):
			return Error(c, http.StatusNotFound, "record not found")
		default:
			return Error(c, http.StatusInternalServerError, "failed to update record")
		}
	}
	return Success(c, http.StatusOK, "record updated", nil)
}

// Delete handles DELETE /records/:id requests.
func (h *RecordsHandler) Delete(c echo.Context) error {
	id, err := recordIDParam(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid record id")
	}

	if err := h.records.DeleteRecord(c.Request().Context(), id); err != nil {
		var vErr service.ValidationError
		if errors.As(err, &vErr) {
			return Error(c, http.StatusBadRequest, vErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to delete record")
	}
	return Success(c, http.StatusOK, "record deleted", nil)
}
