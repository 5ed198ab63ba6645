package app

import (
	"kardetailing/config"
	"kardetailing/internal/controllers"
	"kardetailing/internal/database"
	"kardetailing/internal/handlers/middleware"
	"kardetailing/internal/repositories"
	"kardetailing/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database     database.DB
	Middleware   middleware.Middleware
	Config       config.Config
	Services     services.Service
	Repositories repositories.Repository
	Controllers  controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	if db.SQL == nil {
		return &App{}, log.ErrMsg("database is nil")
	}

	return Build(config, db, repositories.New(db))
}

// Build wires services, controllers and middleware on top of an existing
// store. Tests pass in-memory repositories and a zero DB.
func Build(
	config config.Config,
	db database.DB,
	repos repositories.Repository,
) (*App, error) {
	log := logger.New("app").Function("Build")

	services := services.New(config)
	controllers := controllers.New(services, repos)
	middleware := middleware.New(config, controllers.Auth)

	app := &App{
		Database:     db,
		Config:       config,
		Middleware:   middleware,
		Services:     services,
		Repositories: repos,
		Controllers:  controllers,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Repositories.User,
		a.Repositories.Booking,
		a.Repositories.Feedback,
		a.Controllers.Auth,
		a.Controllers.User,
		a.Controllers.Booking,
		a.Controllers.Feedback,
		a.Controllers.Assessment,
	}

	if a.Services.Password == nil || a.Services.Session == nil {
		return log.ErrMsg("services not initialized")
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
