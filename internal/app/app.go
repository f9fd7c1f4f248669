package app

import (
	"io"
	"log/slog"

	"github.com/vk/cellflow/internal/bag"
	"github.com/vk/cellflow/internal/handlers"
	"github.com/vk/cellflow/modules"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle: one App loads manifests, builds an instance, and evaluates it.
type App struct {
	outW     io.Writer
	errW     io.Writer
	logger   *slog.Logger
	config   *Config
	handlers *handlers.Handlers

	// finalBag holds the bag after the last completed Run, for inspection
	// by tests.
	finalBag bag.Bag
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and handler
// registry. Results go to outW, logs to errW.
func New(outW, errW io.Writer, config *Config) *App {
	logger := newLogger(config.LogLevel, config.LogFormat, errW)
	logger.Debug("Logger configured successfully.")

	h := handlers.New()
	modules.RegisterAll(h)
	logger.Debug("All built-in handler packs registered.", "count", h.Len())

	return &App{
		outW:     outW,
		errW:     errW,
		logger:   logger,
		config:   config,
		handlers: h,
	}
}

// Handlers returns the application's handler registry. This is primarily for
// tests that register scripted implementations before Run.
func (a *App) Handlers() *handlers.Handlers {
	return a.handlers
}

// FinalBag returns the bag left by the last completed Run, or nil.
func (a *App) FinalBag() bag.Bag {
	return a.finalBag
}
