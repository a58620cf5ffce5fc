package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	img "github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exposurestats/internal/config"
	"exposurestats/internal/dto"
	"exposurestats/internal/logger"
	"exposurestats/internal/service"
)

func libraryConfig(root string) *config.Config {
	return &config.Config{
		LibraryPath:    root,
		CurrentVersion: "exposurex7",
		SidecarTypes:   []string{"exposurex6", "exposurex7"},
		DirsToAvoid:    []string{"recycling"},
		DropFlags:      []int{2},
		CropFactors:    map[string]float64{},
		FieldsToRead: config.FieldMap{
			CreateDate:  "xmp:CreateDate",
			FocalLength: "exif:FocalLength",
			FNumber:     "exif:FNumber",
			Camera:      "tiff:Model",
			Lens:        "alienexposure:lens",
			Flag:        "alienexposure:pickflag",
			Keywords:    "alienexposure:virtualpaths",
		},
	}
}

func addPhoto(t *testing.T, root, name, camera, date string, keywords ...string) {
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
    xmp:CreateDate="%sT10:21:00"
    exif:FocalLength="500/10"
    exif:FNumber="28/10"
    tiff:Model="%s"
    alienexposure:lens="M.75-300mm"
    alienexposure:pickflag="0">
   <alienexposure:virtualpaths><rdf:Bag>%s</rdf:Bag></alienexposure:virtualpaths>
  </rdf:Description>
 </rdf:RDF>
</x:xmpmeta>`, date, camera, items)

	scDir := filepath.Join(root, "Exposure Software", "Exposure X7")
	require.NoError(t, os.MkdirAll(scDir, 0755))
	src := img.New(64, 64, color.NRGBA{30, 30, 30, 255})
	require.NoError(t, img.Save(src, filepath.Join(root, name)))
	require.NoError(t, os.WriteFile(filepath.Join(scDir, name+".exposurex7"), []byte(content), 0644))
}

func newTestManager(t *testing.T) (*service.Manager, *config.Config) {
	t.Helper()
	root := t.TempDir()
	addPhoto(t, root, "P1.jpg", "OLYMPUS E-M5 MARK III", "2021-07-27", "birds")
	addPhoto(t, root, "P2.jpg", "NIKON Z6", "2022-01-10")

	cfg := libraryConfig(root)
	m := service.NewManager(cfg, logger.NewConsoleLogger(), nil)
	_, err := m.Rescan(context.Background())
	require.NoError(t, err)
	return m, cfg
}

func TestStatsHandler_Cameras(t *testing.T) {
	m, _ := newTestManager(t)
	log := logger.NewConsoleLogger()

	req := httptest.NewRequest(http.MethodGet, "/api/stats/cameras", nil)
	rec := httptest.NewRecorder()
	StatsHandler(m, log, "cameras")(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var rows []dto.CountRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "NIKON Z6", rows[0].Label)
	assert.Equal(t, 1, rows[0].Count)
}

func TestStatsHandler_FilterByCamera(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/lenses?cameras=NIKON+Z6", nil)
	rec := httptest.NewRecorder()
	StatsHandler(m, logger.NewConsoleLogger(), "lenses")(rec, req)

	var rows []dto.CountRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Count)
}

func TestStatsHandler_Keywords(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/keywords", nil)
	rec := httptest.NewRecorder()
	StatsHandler(m, logger.NewConsoleLogger(), "keywords")(rec, req)

	var rows []dto.CountRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "birds", rows[0].Label)
}

func TestStatsHandler_UnknownDimension(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stats/bogus", nil)
	rec := httptest.NewRecorder()
	StatsHandler(m, logger.NewConsoleLogger(), "bogus")(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLibraryHandler(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/library", nil)
	rec := httptest.NewRecorder()
	LibraryHandler(m, logger.NewConsoleLogger())(rec, req)

	var info dto.LibraryInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, 2, info.PhotoCount)
	assert.Equal(t, []string{"NIKON Z6", "OLYMPUS E-M5 MARK III"}, info.Cameras)
	assert.False(t, info.Scanning)
}

func TestReloadHandler(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodPost, "/api/library/reload", nil)
	rec := httptest.NewRecorder()
	ReloadHandler(m, logger.NewConsoleLogger())(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	// the background rescan should settle quickly on a tiny library
	deadline := time.Now().Add(5 * time.Second)
	for m.Scanning() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	assert.False(t, m.Scanning())
}

func TestReloadHandler_GetRejected(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/library/reload", nil)
	rec := httptest.NewRecorder()
	ReloadHandler(m, logger.NewConsoleLogger())(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPhotosHandler_Paging(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/photos?page=1&limit=1", nil)
	rec := httptest.NewRecorder()
	PhotosHandler(m, logger.NewConsoleLogger())(rec, req)

	var page dto.PhotosPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Length)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Photos, 1)
	// newest first
	assert.Equal(t, "P2.jpg", page.Photos[0].Name)
}

func TestPhotosHandler_PageBeyondEnd(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/photos?page=9&limit=10", nil)
	rec := httptest.NewRecorder()
	PhotosHandler(m, logger.NewConsoleLogger())(rec, req)

	var page dto.PhotosPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Empty(t, page.Photos)
}

func TestViewPhotoHandler(t *testing.T) {
	m, cfg := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/photos/view?name=P1.jpg&size=128", nil)
	rec := httptest.NewRecorder()
	ViewPhotoHandler(m, cfg, logger.NewConsoleLogger())(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestViewPhotoHandler_NotFound(t *testing.T) {
	m, cfg := newTestManager(t)

	req := httptest.NewRequest(http.MethodGet, "/api/photos/view?name=nope.jpg", nil)
	rec := httptest.NewRecorder()
	ViewPhotoHandler(m, cfg, logger.NewConsoleLogger())(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTagPhotoHandler_NotConfigured(t *testing.T) {
	m, _ := newTestManager(t)

	req := httptest.NewRequest(http.MethodPost, "/api/photos/tag?name=P1.jpg", nil)
	rec := httptest.NewRecorder()
	TagPhotoHandler(m, nil, logger.NewConsoleLogger())(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLoginHandler(t *testing.T) {
	cfg := &config.Config{Password: "secret"}
	log := logger.NewConsoleLogger()

	form := url.Values{"password": {"secret"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.PostForm = form
	rec := httptest.NewRecorder()
	LoginHandler(cfg, log)(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "authenticated", cookies[0].Name)
	assert.Equal(t, "true", cookies[0].Value)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	cfg := &config.Config{Password: "secret"}

	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.PostForm = url.Values{"password": {"wrong"}}
	rec := httptest.NewRecorder()
	LoginHandler(cfg, logger.NewConsoleLogger())(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestFiltersFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("cameras", "A, B")
	q.Set("dateAfter", "2021-01-01")

	f := filtersFromQuery(q)
	assert.Equal(t, []string{"A", "B"}, f.Cameras)
	assert.Nil(t, f.Lenses)
	assert.Equal(t, 2021, f.DateAfter.Year())
	assert.True(t, f.DateBefore.IsZero())
}
