package model

import "time"

// Photo is one normalized record read from an Exposure sidecar file.
type Photo struct {
	ID                    int64     `json:"id,omitempty"`
	Name                  string    `json:"name"`
	CreateDate            time.Time `json:"create_date"`
	Date                  string    `json:"date"` // capture day, YYYY-MM-DD
	FocalLength           int       `json:"focal_length"`
	FNumber               float64   `json:"f_number"`
	Camera                string    `json:"camera"`
	Lens                  string    `json:"lens"`
	Flag                  int       `json:"flag"`
	CropFactor            float64   `json:"crop_factor"`
	EquivalentFocalLength float64   `json:"equivalent_focal_length"`
	Keywords              []string  `json:"keywords"`
	FilePath              string    `json:"file_path"`
	SidecarPath           string    `json:"-"`
}

// Keyword categories.
const (
	CategoryManual = "manual"
	CategoryAI     = "ai"
)

// Keyword is a tag attached to photos, either read from sidecars or
// produced by the AI tagger.
type Keyword struct {
	ID      int64  `json:"id,omitempty"`
	Keyword string `json:"keyword"`
	AITag   bool   `json:"ai_tag"`
	// Category distinguishes manual sidecar keywords from AI ones.
	Category string `json:"category"`
}

// KeywordRow is one exploded (photo, keyword) pair used by the keyword chart.
type KeywordRow struct {
	Name    string `json:"name"`
	Camera  string `json:"camera"`
	Lens    string `json:"lens"`
	Keyword string `json:"keyword"`
}
