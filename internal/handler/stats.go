package handler

import (
	"net/http"

	"exposurestats/internal/dto"
	"exposurestats/internal/logger"
	"exposurestats/internal/model"
	"exposurestats/internal/service"
	"exposurestats/internal/stats"
)

// StatsHandler serves one count-by chart from the current snapshot.
// dimension selects which grouping to apply.
func StatsHandler(manager *service.Manager, logger *logger.Logger, dimension string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := filtersFromQuery(r.URL.Query())
		snap := manager.Snapshot()
		photos := stats.Filter(snap.Photos, filter)

		var rows []dto.CountRow
		switch dimension {
		case "cameras":
			rows = stats.ByCamera(photos)
		case "lenses":
			rows = stats.ByLens(photos)
		case "focal-lengths":
			rows = stats.ByFocalLength(photos)
		case "dates":
			rows = stats.ByDate(photos)
		case "keywords":
			rows = stats.ByKeyword(snap.Keywords, filter)
		default:
			http.Error(w, "Unknown stats dimension", http.StatusNotFound)
			return
		}

		if rows == nil {
			rows = []dto.CountRow{}
		}
		if err := writeJSON(w, rows); err != nil {
			logger.Error("Error encoding stats response: %v", err)
		}
	}
}

// LibraryHandler returns the snapshot summary.
func LibraryHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := stats.Summary(manager.Snapshot())
		info.Scanning = manager.Scanning()
		if err := writeJSON(w, info); err != nil {
			logger.Error("Error encoding library info: %v", err)
		}
	}
}

// ReloadHandler starts a background rescan.
func ReloadHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if manager.Scanning() {
			http.Error(w, "Scan already in progress", http.StatusConflict)
			return
		}
		logger.Info("library reload requested")
		manager.RescanAsync()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = writeJSON(w, map[string]string{"status": "scanning"})
	}
}

// PhotosHandler returns a paged, filtered photo listing.
func PhotosHandler(manager *service.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := atoiDefault(q.Get("page"), 1)
		limit := atoiDefault(q.Get("limit"), 24)

		photos := stats.Filter(manager.Snapshot().Photos, filtersFromQuery(q))
		total := len(photos)

		start := (page - 1) * limit
		if start > total {
			start = total
		}
		end := start + limit
		if end > total {
			end = total
		}
		pagePhotos := photos[start:end]
		if pagePhotos == nil {
			pagePhotos = []model.Photo{}
		}

		data := dto.PhotosPage{
			Photos:      pagePhotos,
			Length:      total,
			TotalPages:  (total + limit - 1) / limit,
			CurrentPage: page,
			Limit:       limit,
		}
		if err := writeJSON(w, data); err != nil {
			logger.Error("Error encoding photos response: %v", err)
		}
	}
}
