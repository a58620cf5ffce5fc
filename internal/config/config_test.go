package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "exposurex7", cfg.CurrentVersion)
	assert.Equal(t, []string{"exposurex6", "exposurex7"}, cfg.SidecarTypes)
	assert.Equal(t, []string{"recycling", "incoming"}, cfg.DirsToAvoid)
	assert.Equal(t, []int{2}, cfg.DropFlags)
	assert.True(t, cfg.RunForDuplicates)
	assert.False(t, cfg.DeleteDangling)
	assert.Equal(t, "xmp:CreateDate", cfg.FieldsToRead.CreateDate)
	assert.Len(t, cfg.FallbackMaps, 2)
	assert.Equal(t, "photoshop:DateCreated", cfg.FallbackMaps[0].CreateDate)
	assert.Equal(t, "alienexposure:capture_time", cfg.FallbackMaps[1].CreateDate)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LIBRARY_DIR", "/photos")
	t.Setenv("EXPOSURE_VERSION", "exposurex6")
	t.Setenv("SIDECAR_TYPES", "exposurex5, exposurex6")
	t.Setenv("DELETE_DANGLING_SIDECARS", "true")
	t.Setenv("RUN_FOR_DUPLICATES", "false")
	t.Setenv("TAG_LABELS", "birds,macro")

	cfg := Load()

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/photos", cfg.LibraryPath)
	assert.Equal(t, "exposurex6", cfg.CurrentVersion)
	assert.Equal(t, []string{"exposurex5", "exposurex6"}, cfg.SidecarTypes)
	assert.True(t, cfg.DeleteDangling)
	assert.False(t, cfg.RunForDuplicates)
	assert.Equal(t, []string{"birds", "macro"}, cfg.TagLabels)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")
	t.Setenv("WATCH_LIBRARY", "maybe")

	cfg := Load()

	assert.Equal(t, 8080, cfg.Port)
	assert.False(t, cfg.WatchLibrary)
}

func TestCropFactor(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 2.0, cfg.CropFactor("OLYMPUS E-M5 MARK III"))
	assert.Equal(t, 1.0, cfg.CropFactor("NIKON Z6"))
}
