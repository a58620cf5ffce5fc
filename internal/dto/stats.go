package dto

import (
	"time"

	"exposurestats/internal/model"
)

// CountRow is one bar of a dashboard chart: a label and how many photos
// fall under it.
type CountRow struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LibraryInfo summarises the current in-memory snapshot.
type LibraryInfo struct {
	PhotoCount       int       `json:"photo_count"`
	Cameras          []string  `json:"cameras"`
	Lenses           []string  `json:"lenses"`
	DanglingSidecars int       `json:"dangling_sidecars"`
	UnloadedSidecars int       `json:"unloaded_sidecars"`
	LastScan         time.Time `json:"last_scan"`
	Scanning         bool      `json:"scanning"`
}

// PhotosPage is a paged photo listing response.
type PhotosPage struct {
	Photos      []model.Photo `json:"photos"`
	Length      int           `json:"length"`
	TotalPages  int           `json:"total_pages"`
	CurrentPage int           `json:"current_page"`
	Limit       int           `json:"limit"`
}

// ScanEvent is pushed to websocket clients while a rescan runs.
type ScanEvent struct {
	Stage    string `json:"stage"` // "walking", "parsing", "done", "error"
	Current  int    `json:"current"`
	Total    int    `json:"total"`
	Message  string `json:"message,omitempty"`
	Dangling int    `json:"dangling,omitempty"`
	Unloaded int    `json:"unloaded,omitempty"`
}

// TagResult is the AI tagger response for one image.
type TagResult struct {
	Name           string   `json:"name"`
	Tags           []string `json:"tags"`
	AdditionalTags []string `json:"additional_tags"`
	Explanation    string   `json:"explanation"`
}
