package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"exposurestats/internal/dto"
)

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}

func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// filtersFromQuery reads the shared chart filters from query parameters.
func filtersFromQuery(q url.Values) *dto.PhotoFilters {
	return &dto.PhotoFilters{
		Cameras:    splitList(q.Get("cameras")),
		Lenses:     splitList(q.Get("lenses")),
		DateAfter:  parseDate(q.Get("dateAfter")),
		DateBefore: parseDate(q.Get("dateBefore")),
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
