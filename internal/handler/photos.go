package handler

import (
	"net/http"

	"exposurestats/internal/config"
	"exposurestats/internal/logger"
	"exposurestats/internal/service"
	"exposurestats/internal/service/ai"
	"exposurestats/internal/service/imaging"
)

// ViewPhotoHandler serves a resized JPEG preview of a library photo.
func ViewPhotoHandler(manager *service.Manager, cfg *config.Config, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Name required", http.StatusBadRequest)
			return
		}

		photo, ok := manager.Snapshot().FindPhoto(name)
		if !ok {
			http.Error(w, "Photo not found", http.StatusNotFound)
			return
		}

		size := atoiDefault(r.URL.Query().Get("size"), imaging.DefaultSize)
		data, err := imaging.Open(photo.FilePath)
		if err != nil {
			logger.Warning("preview: image missing for %s: %v", name, err)
			http.Error(w, "Image file not found", http.StatusNotFound)
			return
		}
		preview, err := imaging.Resize(data, size, size, true)
		if err != nil {
			logger.Error("preview: failed to resize %s: %v", name, err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/jpeg")
		if _, err := w.Write(preview); err != nil {
			logger.Error("preview: write failed: %v", err)
		}
	}
}

// TagPhotoHandler runs the AI tagger against one photo and returns the tags.
func TagPhotoHandler(manager *service.Manager, pipeline *ai.Pipeline, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if pipeline == nil {
			http.Error(w, "AI tagging is not configured", http.StatusServiceUnavailable)
			return
		}

		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "Name required", http.StatusBadRequest)
			return
		}
		photo, ok := manager.Snapshot().FindPhoto(name)
		if !ok {
			http.Error(w, "Photo not found", http.StatusNotFound)
			return
		}

		result, err := pipeline.TagImage(r.Context(), photo.FilePath)
		if err != nil {
			logger.Error("AI tagging failed for %s: %v", name, err)
			http.Error(w, "Tagging failed", http.StatusBadGateway)
			return
		}
		result.Name = name

		if err := writeJSON(w, result); err != nil {
			logger.Error("Error encoding tag response: %v", err)
		}
	}
}
