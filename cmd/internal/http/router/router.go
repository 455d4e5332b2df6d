// Package router assembles the echo instance serving the REST API.
package router

import (
	"tagnotes/cmd/internal/config"
	"tagnotes/cmd/internal/domain/sqlite"
	"tagnotes/cmd/internal/domain/sqlite/repository"
	"tagnotes/cmd/internal/http/handler"
	authmw "tagnotes/cmd/internal/http/middleware"
	"tagnotes/cmd/internal/service"
	"tagnotes/cmd/internal/utils/validators"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers on top of db. A nil tokens
// validator leaves /api unauthenticated.
func New(cfg config.Config, db *gorm.DB, tokens authmw.TokenValidator) *echo.Echo {
	validate := validators.New()
	tx := sqlite.NewTransactor(db)

	// Repos
	noteRepo := repository.NewNoteRepository(db)
	tagRepo := repository.NewTagRepository(db)

	// Services
	noteService := service.NewNoteService(noteRepo, tagRepo, tx, validate, cfg.Page.MaxSize)
	tagService := service.NewTagService(tagRepo, tx, validate, cfg.Page.MaxSize)

	// Handlers
	noteRoutes := handler.NewNoteDefault(noteService)
	tagRoutes := handler.NewTagDefault(tagService)
	utilRoutes := handler.NewUtilRoute(cfg.App.Name, cfg.App.Env)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger.SetLevel(cfg.App.Level())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.HTTP.CORSOrigins,
		ExposeHeaders: []string{handler.HeaderTotalCount, "Link", echo.HeaderLocation},
	}))
	e.Use(middleware.BodyLimit(cfg.HTTP.BodyLimit))

	api := e.Group("/api", authmw.NewAuthMiddleware(&authmw.AuthMiddlewareConfig{Validator: tokens}))

	api.GET("/account", handler.GetAccount)

	// Notes
	api.GET("/notes", noteRoutes.GetNotes)
	api.GET("/notes/:id", noteRoutes.GetNote)
	api.POST("/notes", noteRoutes.CreateNote)
	api.PUT("/notes/:id", noteRoutes.UpdateNote)
	api.PATCH("/notes/:id", noteRoutes.PartialUpdateNote)
	api.DELETE("/notes/:id", noteRoutes.DeleteNote)

	// Tags
	api.GET("/tags", tagRoutes.GetTags)
	api.GET("/tags/:id", tagRoutes.GetTag)
	api.POST("/tags", tagRoutes.CreateTag)
	api.PUT("/tags/:id", tagRoutes.UpdateTag)
	api.PATCH("/tags/:id", tagRoutes.PartialUpdateTag)
	api.DELETE("/tags/:id", tagRoutes.DeleteTag)

	// Docker Compose healthcheck
	e.GET("/health", utilRoutes.Health)
	e.GET("/management/info", utilRoutes.GetInfo)

	return e
}
