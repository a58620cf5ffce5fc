package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exposurestats/internal/config"
	"exposurestats/internal/logger"
	"exposurestats/internal/repository/sqlite"
)

func testConfig(libraryPath string) *config.Config {
	primary := config.FieldMap{
		CreateDate:  "xmp:CreateDate",
		FocalLength: "exif:FocalLength",
		FNumber:     "exif:FNumber",
		Camera:      "tiff:Model",
		Lens:        "alienexposure:lens",
		Flag:        "alienexposure:pickflag",
		Keywords:    "alienexposure:virtualpaths",
	}
	return &config.Config{
		LibraryPath:    libraryPath,
		CurrentVersion: "exposurex7",
		SidecarTypes:   []string{"exposurex6", "exposurex7"},
		DirsToAvoid:    []string{"recycling", "incoming"},
		DropFlags:      []int{2},
		CropFactors:    map[string]float64{},
		FieldsToRead:   primary,
	}
}

func addPhoto(t *testing.T, root, name string, keywords ...string) {
	t.Helper()
	items := ""
	for _, kw := range keywords {
		items += fmt.Sprintf("<rdf:li>kywd:||%s|</rdf:li>", kw)
	}
	content := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<x:xmpmeta xmlns:x="adobe:ns:meta/">
 <rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#">
  <rdf:Description rdf:about=""
    xmlns:xmp="http://ns.adobe.com/xap/1.0/"
    xmlns:exif="http://ns.adobe.com/exif/1.0/"
    xmlns:tiff="http://ns.adobe.com/tiff/1.0/"
    xmlns:alienexposure="http://www.alienskin.com/xmp/1.0/"
    xmp:CreateDate="2021-07-27T10:21:00"
    exif:FocalLength="500/10"
    exif:FNumber="28/10"
    tiff:Model="OLYMPUS E-M5 MARK III"
    alienexposure:lens="M.75-300mm"
    alienexposure:pickflag="0">
   <alienexposure:virtualpaths><rdf:Bag>%s</rdf:Bag></alienexposure:virtualpaths>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>`, items)

	scDir := filepath.Join(root, "Exposure Software", "Exposure X7")
	require.NoError(t, os.MkdirAll(scDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("img"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(scDir, name+".exposurex7"), []byte(content), 0644))
}

func TestManager_Rescan(t *testing.T) {
	root := t.TempDir()
	addPhoto(t, root, "P1.orf", "birds")
	addPhoto(t, root, "P2.orf")

	m := NewManager(testConfig(root), logger.NewConsoleLogger(), nil)
	assert.Empty(t, m.Snapshot().Photos)

	snap, err := m.Rescan(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Photos, 2)

	// the manager now serves the new snapshot
	assert.Len(t, m.Snapshot().Photos, 2)
	assert.False(t, m.Scanning())
}

func TestManager_LoadToDB(t *testing.T) {
	root := t.TempDir()
	addPhoto(t, root, "P1.orf", "birds", "nature")
	addPhoto(t, root, "P2.orf", "birds")

	m := NewManager(testConfig(root), logger.NewConsoleLogger(), nil)
	_, err := m.Rescan(context.Background())
	require.NoError(t, err)

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	photoRepo := sqlite.NewPhotoRepository(db)
	kwRepo := sqlite.NewKeywordRepository(db)
	require.NoError(t, m.LoadToDB(photoRepo, kwRepo))

	count, err := photoRepo.GetTotalCount(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	keywords, err := kwRepo.GetAllKeywords()
	require.NoError(t, err)
	assert.Len(t, keywords, 2) // birds, nature

	p1, err := photoRepo.GetByName("P1.orf")
	require.NoError(t, err)
	kws, err := kwRepo.GetKeywordsByPhotoID(p1.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"birds", "nature"}, kws)
}

func TestManager_LoadToDB_EmptySnapshot(t *testing.T) {
	m := NewManager(testConfig(t.TempDir()), logger.NewConsoleLogger(), nil)

	db, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	err = m.LoadToDB(sqlite.NewPhotoRepository(db), sqlite.NewKeywordRepository(db))
	assert.Error(t, err)
}
