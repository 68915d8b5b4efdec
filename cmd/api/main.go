package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/PritamDhobale/data-entry-webapp/internal/auth"
	"github.com/PritamDhobale/data-entry-webapp/internal/config"
	"github.com/PritamDhobale/data-entry-webapp/internal/database"
	"github.com/PritamDhobale/data-entry-webapp/internal/handler"
	middlewarepkg "github.com/PritamDhobale/data-entry-webapp/internal/middleware"
	"github.com/PritamDhobale/data-entry-webapp/internal/repository"
	"github.com/PritamDhobale/data-entry-webapp/internal/router"
	"github.com/PritamDhobale/data-entry-webapp/internal/service"
	"github.com/PritamDhobale/data-entry-webapp/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	recordsRepo := repository.NewPGXRecordsRepository(pool)
	zipRepo := repository.NewPGXZipLookupRepository(pool)

	fileStore, err := storage.NewDiskStore(cfg.FileStoreRoot)
	if err != nil {
		log.Fatalf("failed to prepare file store: %v", err)
	}

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	recordsService := service.NewRecordsService(recordsRepo)
	dashboardService := service.NewDashboardService(recordsRepo)
	zipService := service.NewZipLookupService(cfg.ZipAPIBaseURL, zipRepo,
		service.WithZipCache(cfg.ZipCacheSize, cfg.ZipCacheTTL))
	autofillService := service.NewAutofillService(cfg.PhoneRegion)
	activityService := service.NewActivityService(recordsRepo, usersRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserAdminHandler(userService),
		Records:   handler.NewRecordsHandler(recordsService),
		Import:    handler.NewImportHandler(recordsService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Zip:       handler.NewZipHandler(zipService),
		Autofill:  handler.NewAutofillHandler(autofillService),
		Files:     handler.NewFilesHandler(fileStore),
		Activity:  handler.NewActivityHandler(activityService),
		Schema:    handler.NewSchemaHandler(),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
