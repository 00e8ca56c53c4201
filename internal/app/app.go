package app

import (
	"rutinas/config"
	"rutinas/internal/controllers"
	"rutinas/internal/database"
	"rutinas/internal/handlers/middleware"
	"rutinas/internal/repositories"
	"rutinas/internal/services"
	"rutinas/pkg/logger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	Config      config.Config
	Services    services.Service
	Repos       repositories.Repository
	Controllers controllers.Controllers
}

// New loads configuration, opens and migrates the database and wires the
// application.
func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	if err := db.MigrateModels(); err != nil {
		_ = db.Close()
		return &App{}, log.Err("failed to migrate database", err)
	}

	app, err := Build(config, db)
	if err != nil {
		_ = db.Close()
		return &App{}, err
	}

	return app, nil
}

// Build wires repositories, services, controllers and middleware around an
// already opened database.
func Build(config config.Config, db database.DB) (*App, error) {
	log := logger.New("app").Function("Build")

	repos := repositories.New()
	services := services.New(db)

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware.New(),
		Services:    services,
		Repos:       repos,
		Controllers: controllers.New(services, repos),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.Services.Transaction,
		a.Repos.Rutina,
		a.Repos.Ejercicio,
		a.Controllers.Rutina,
		a.Controllers.Ejercicio,
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
