package app

import (
	"context"
	"fmt"
	"net/http"

	"exposurestats/internal/config"
	"exposurestats/internal/library"
	"exposurestats/internal/logger"
	"exposurestats/internal/route"
	"exposurestats/internal/service"
	"exposurestats/internal/service/ai"
	"exposurestats/internal/service/websocket"
)

type App struct {
	config   *config.Config
	logger   *logger.Logger
	manager  *service.Manager
	hub      *websocket.HubService
	pipeline *ai.Pipeline
	watcher  *library.Watcher
}

func NewApp() *App {
	cfg := config.Load()
	log := logger.NewLogger(cfg)

	hub := websocket.NewHubService(log)
	manager := service.NewManager(cfg, log, hub)

	var pipeline *ai.Pipeline
	if cfg.GenAIKey != "" {
		tagger, err := ai.NewGenAITagger(context.Background(), cfg.GenAIKey, cfg.GenAIModel, cfg.TagLabels)
		if err != nil {
			log.Error("AI tagger disabled: %v", err)
		} else {
			pipeline = ai.NewPipeline(cfg, log, tagger)
		}
	}

	var watcher *library.Watcher
	if cfg.WatchLibrary {
		watcher = library.NewWatcher(cfg, log, manager.RescanAsync)
	}

	return &App{
		config:   cfg,
		logger:   log,
		manager:  manager,
		hub:      hub,
		pipeline: pipeline,
		watcher:  watcher,
	}
}

func (a *App) Run() error {
	defer a.logger.Sync()

	// Start background services
	go a.hub.Run()
	if a.watcher != nil {
		go func() {
			if err := a.watcher.Run(); err != nil {
				a.logger.Error("library watcher stopped: %v", err)
			}
		}()
	}

	// Initial scan before serving, the dashboard is useless without it
	if _, err := a.manager.Rescan(context.Background()); err != nil {
		a.logger.Error("initial library scan failed: %v", err)
	}

	router := route.SetupRoutes(a.manager, a.config, a.logger, a.hub, a.pipeline)

	fmt.Printf("📷 Exposure Stats\n")
	fmt.Printf("📍 URL: http://localhost:%d\n", a.config.Port)
	fmt.Printf("📁 Library: %s\n", a.config.LibraryPath)
	if a.pipeline != nil {
		fmt.Printf("🤖 AI tagging: %s\n", a.config.GenAIModel)
	}

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), router)
}
