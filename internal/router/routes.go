package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/PritamDhobale/data-entry-webapp/internal/auth"
	"github.com/PritamDhobale/data-entry-webapp/internal/config"
	"github.com/PritamDhobale/data-entry-webapp/internal/handler"
	middlewarepkg "github.com/PritamDhobale/data-entry-webapp/internal/middleware"
	"github.com/PritamDhobale/data-entry-webapp/internal/schema"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserAdminHandler
	Records   *handler.RecordsHandler
	Import    *handler.ImportHandler
	Dashboard *handler.DashboardHandler
	Zip       *handler.ZipHandler
	Autofill  *handler.AutofillHandler
	Files     *handler.FilesHandler
	Activity  *handler.ActivityHandler
	Schema    *handler.SchemaHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.GET("/schema", handlers.Schema.Fields)

	dash := secured.Group("/dashboard", middlewarepkg.RequireCapability(schema.CapViewDashboard))
	dash.GET("/summary", handlers.Dashboard.Summary)
	dash.GET("/states", handlers.Dashboard.States)
	dash.GET("/industries", handlers.Dashboard.Industries)
	dash.GET("/recent", handlers.Dashboard.Recent)

	secured.GET("/records", handlers.Records.List, middlewarepkg.RequireCapability(schema.CapViewCompanies))
	secured.GET("/records/:id", handlers.Records.Get, middlewarepkg.RequireCapability(schema.CapViewCompanies))
	secured.POST("/records", handlers.Records.Create, middlewarepkg.RequireCapability(schema.CapAdd))
	secured.PUT("/records/:id", handlers.Records.Update, middlewarepkg.RequireCapability(schema.CapEdit))
	secured.DELETE("/records/:id", handlers.Records.Delete, middlewarepkg.RequireCapability(schema.CapDelete))

	secured.POST("/records/import", handlers.Import.UploadCSV, middlewarepkg.RequireCapability(schema.CapAdd))
	secured.GET("/records/template", handlers.Import.DownloadTemplate, middlewarepkg.RequireCapability(schema.CapAdd))
	secured.GET("/records/export", handlers.Import.ExportCSV, middlewarepkg.RequireCapability(schema.CapViewReports))

	files := secured.Group("/records/:id/files", middlewarepkg.RequireCapability(schema.CapViewCompanies))
	files.POST("", handlers.Files.Upload, middlewarepkg.RequireCapability(schema.CapEdit))
	files.GET("", handlers.Files.List)
	files.GET("/:category/:filename", handlers.Files.Download)
	files.DELETE("/:category/:filename", handlers.Files.Delete, middlewarepkg.RequireCapability(schema.CapDelete))

	secured.GET("/zipcode/:zip", handlers.Zip.Lookup, middlewarepkg.ZipRateLimiter(cfg.RateLimitZip))
	secured.POST("/autofill", handlers.Autofill.Extract, middlewarepkg.RequireCapability(schema.CapAdd))

	admin := secured.Group("/admin", middlewarepkg.RequireRole(schema.RoleAdmin))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
	admin.GET("/activity", handlers.Activity.Stats)
}
