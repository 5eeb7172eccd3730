package cmd

import (
	adapterstorage "stint/internal/adapters/storage"
	"stint/internal/ports"
	"stint/internal/services"
	"stint/internal/timer"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	ActivityService *services.ActivityService
	Analytics       *services.HabitAnalytics
	Engine          *timer.Engine
	EntryService    *services.EntryService
	Estimator       *services.AverageEstimator
	HabitService    *services.HabitService

	// Internal - for cleanup only
	store ports.TimeStore
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(dbPath string) (*Container, error) {
	store, err := adapterstorage.NewSQLiteRepository(dbPath)
	if err != nil {
		return nil, err
	}

	estimator := services.NewAverageEstimator(store)

	return &Container{
		ActivityService: services.NewActivityService(store, store),
		Analytics:       services.NewHabitAnalytics(store, store),
		Engine:          timer.NewEngine(estimator),
		EntryService:    services.NewEntryService(store, store, store),
		Estimator:       estimator,
		HabitService:    services.NewHabitService(store, store, store),
		store:           store,
	}, nil
}

// Store exposes the persistence layer for commands that commit reviews.
func (c *Container) Store() ports.TimeStore {
	return c.store
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.store != nil {
		return c.store.Close()
	}
	return nil
}
