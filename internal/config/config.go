package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// FieldMap maps record fields to the XMP attributes they are read from.
type FieldMap struct {
	CreateDate  string
	FocalLength string
	FNumber     string
	Camera      string
	Lens        string
	Flag        string
	Keywords    string
}

type Config struct {
	Port            int
	Password        string
	LibraryPath     string
	DatabasePath    string
	LogDirectory    string
	StaticDirectory string

	CurrentVersion   string
	SidecarTypes     []string
	DirsToAvoid      []string
	DropFlags        []int
	DeleteDangling   bool
	RunForDuplicates bool
	WatchLibrary     bool
	CropFactors      map[string]float64

	// AI tagging
	GenAIKey   string
	GenAIModel string
	TagLabels  []string

	// Attribute sets tried in order when reading a sidecar. Sidecars written
	// by DxO PureRaw or Affinity Photo carry the capture date under a
	// different attribute than Exposure's own.
	FieldsToRead FieldMap
	FallbackMaps []FieldMap
}

// Load reads configuration from the environment, with a .env file as fallback.
func Load() *Config {
	_ = godotenv.Load()

	primary := FieldMap{
		CreateDate:  "xmp:CreateDate",
		FocalLength: "exif:FocalLength",
		FNumber:     "exif:FNumber",
		Camera:      "tiff:Model",
		Lens:        "alienexposure:lens",
		Flag:        "alienexposure:pickflag",
		Keywords:    "alienexposure:virtualpaths",
	}
	alt1 := primary
	alt1.CreateDate = "photoshop:DateCreated"
	alt2 := primary
	alt2.CreateDate = "alienexposure:capture_time"

	return &Config{
		Port:             getEnvAsInt("PORT", 8080),
		Password:         getEnv("DASHBOARD_PASSWORD", ""),
		LibraryPath:      getEnv("LIBRARY_DIR", filepath.Join(".", "library")),
		DatabasePath:     getEnv("DATABASE_PATH", filepath.Join(".", "data", "exposurestats.db")),
		LogDirectory:     getEnv("LOG_DIR", filepath.Join(".", "logs")),
		StaticDirectory:  getEnv("STATIC_DIR", "static"),
		CurrentVersion:   getEnv("EXPOSURE_VERSION", "exposurex7"),
		SidecarTypes:     getEnvAsList("SIDECAR_TYPES", []string{"exposurex6", "exposurex7"}),
		DirsToAvoid:      getEnvAsList("DIRS_TO_AVOID", []string{"recycling", "incoming"}),
		DropFlags:        []int{2}, // rejected photos
		DeleteDangling:   getEnvAsBool("DELETE_DANGLING_SIDECARS", false),
		RunForDuplicates: getEnvAsBool("RUN_FOR_DUPLICATES", true),
		WatchLibrary:     getEnvAsBool("WATCH_LIBRARY", false),
		CropFactors: map[string]float64{
			"OLYMPUS E-M5 MARK III": 2.0,
		},
		GenAIKey:   getEnv("GENAI_API_KEY", ""),
		GenAIModel: getEnv("GENAI_MODEL", "gemini-2.0-flash"),
		TagLabels: getEnvAsList("TAG_LABELS", []string{
			"landscape", "BIF", "mountain", "city", "night",
			"stars", "golden-hour", "blue-hour",
		}),
		FieldsToRead: primary,
		FallbackMaps: []FieldMap{alt1, alt2},
	}
}

// CropFactor returns the configured crop factor for a camera model,
// defaulting to 1.
func (c *Config) CropFactor(camera string) float64 {
	if f, ok := c.CropFactors[camera]; ok {
		return f
	}
	return 1.0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}
