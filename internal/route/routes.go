package route

import (
	"net/http"
	"os"
	"path/filepath"

	"exposurestats/internal/config"
	"exposurestats/internal/handler"
	"exposurestats/internal/logger"
	"exposurestats/internal/middleware"
	"exposurestats/internal/service"
	"exposurestats/internal/service/ai"
	"exposurestats/internal/service/websocket"
)

// dynamicHTMLHandler serves /path as <static>/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/" {
			path = "/index"
		}

		filePath := filepath.Join(staticDir, path+".html")
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.NotFound(w, r)
			return
		}
		http.ServeFile(w, r, filePath)
	}
}

// SetupRoutes registers the API endpoints, static file serving and wraps
// the mux with the authentication middleware.
func SetupRoutes(manager *service.Manager, cfg *config.Config, logger *logger.Logger,
	hub *websocket.HubService, pipeline *ai.Pipeline) http.Handler {
	mux := http.NewServeMux()

	// Static assets
	mux.Handle("/css/", http.FileServer(http.Dir(cfg.StaticDirectory)))
	mux.Handle("/js/", http.FileServer(http.Dir(cfg.StaticDirectory)))

	// API endpoints
	mux.HandleFunc("/api/library", handler.LibraryHandler(manager, logger))
	mux.HandleFunc("/api/library/reload", handler.ReloadHandler(manager, logger))
	mux.HandleFunc("/api/stats/cameras", handler.StatsHandler(manager, logger, "cameras"))
	mux.HandleFunc("/api/stats/lenses", handler.StatsHandler(manager, logger, "lenses"))
	mux.HandleFunc("/api/stats/focal-lengths", handler.StatsHandler(manager, logger, "focal-lengths"))
	mux.HandleFunc("/api/stats/dates", handler.StatsHandler(manager, logger, "dates"))
	mux.HandleFunc("/api/stats/keywords", handler.StatsHandler(manager, logger, "keywords"))
	mux.HandleFunc("/api/photos", handler.PhotosHandler(manager, logger))
	mux.HandleFunc("/api/photos/view", handler.ViewPhotoHandler(manager, cfg, logger))
	mux.HandleFunc("/api/photos/tag", handler.TagPhotoHandler(manager, pipeline, logger))
	mux.HandleFunc("/api/ws", handler.ScanProgressHandler(hub, logger))

	// Auth
	mux.HandleFunc("/auth/login", handler.LoginHandler(cfg, logger))
	mux.HandleFunc("/auth/logout", handler.LogoutHandler())

	// HTML pages
	mux.HandleFunc("/", dynamicHTMLHandler(cfg.StaticDirectory))

	return middleware.AuthMiddleware(cfg.Password, mux)
}
