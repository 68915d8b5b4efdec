package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/dto"
	"github.com/PritamDhobale/data-entry-webapp/internal/schema"
)

// SchemaHandler serves the field registry filtered by the caller's role, so
// the entry form can be rendered without a hardcoded field list.
type SchemaHandler struct{}

// NewSchemaHandler creates a new handler instance.
func NewSchemaHandler() *SchemaHandler {
	return &SchemaHandler{}
}

// Fields handles GET /schema requests.
func (h *SchemaHandler) Fields(c echo.Context) error {
	role := currentRole(c)

	visible := schema.VisibleFields(role)
	fields := make([]dto.SchemaField, 0, len(visible))
	for _, f := range visible {
		fields = append(fields, dto.SchemaField{
			Section: string(f.Section),
			Label:   f.Label,
			Key:     f.Key,
			Type:    string(schema.InferType(f.Label, f.Key)),
		})
	}

	return Success(c, http.StatusOK, "schema retrieved", dto.SchemaResponse{
		Fields:       fields,
		Capabilities: schema.Capabilities(role),
	})
}
