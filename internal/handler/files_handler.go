package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/storage"
)

// FilesHandler manages per-record attachments.
type FilesHandler struct {
	store storage.FileStore
}

// NewFilesHandler creates a new handler instance.
func NewFilesHandler(store storage.FileStore) *FilesHandler {
	return &FilesHandler{store: store}
}

// Upload handles POST /records/:id/files requests. The multipart form
// carries the file plus a category field.
func (h *FilesHandler) Upload(c echo.Context) error {
	id, err := recordIDParam(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid record id")
	}

	category := c.FormValue("category")
	if !storage.ValidCategory(category) {
		return Error(c, http.StatusBadRequest, "category must be documents or agreements")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing file")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	info, err := h.store.Save(id, category, fileHeader.Filename, file)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Success(c, http.StatusCreated, "file uploaded", info)
}

// List handles GET /records/:id/files requests.
func (h *FilesHandler) List(c echo.Context) error {
	id, err := recordIDParam(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid record id")
	}

	files, err := h.store.List(id)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to list files")
	}
	return Success(c, http.StatusOK, "files retrieved", files)
}

// Download handles GET /records/:id/files/:category/:filename requests.
func (h *FilesHandler) Download(c echo.Context) error {
	id, err := recordIDParam(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid record id")
	}

	rc, err := h.store.Open(id, c.Param("category"), c.Param("filename"))
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return Error(c, http.StatusNotFound, "file not found")
		}
		return Error(c, http.StatusBadRequest, err.Error())
	}
	defer rc.Close()

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", c.Param("filename")))
	return c.Stream(http.StatusOK, echo.MIMEOctetStream, rc)
}

// Delete handles DELETE /records/:id/files/:category/:filename requests.
func (h *FilesHandler) Delete(c echo.Context) error {
	id, err := recordIDParam(c)
	if err != nil {
		return Error(c, http.StatusBadRequest, "invalid record id")
	}

	if err := h.store.Delete(id, c.Param("category"), c.Param("filename")); err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return Error(c, http.StatusNotFound, "file not found")
		}
		return Error(c, http.StatusBadRequest, err.Error())
	}
	return Success(c, http.StatusOK, "file deleted", nil)
}
