package sidecar

import (
	"errors"
	"path/filepath"
	"strings"

	"exposurestats/internal/config"
	"exposurestats/internal/model"
)

// Reader turns sidecar files into Photo records using the configured
// attribute sets.
type Reader struct {
	cfg *config.Config
}

func NewReader(cfg *config.Config) *Reader {
	return &Reader{cfg: cfg}
}

// ReadFile parses one sidecar file. When the primary attribute set misses
// its capture date the fallback sets are tried in order; sidecars written
// through DxO PureRaw or Affinity Photo store the date elsewhere.
func (r *Reader) ReadFile(path string) (model.Photo, error) {
	sc, err := ParseFile(path)
	if err != nil {
		return model.Photo{}, err
	}

	rec, err := sc.Extract(r.cfg.FieldsToRead)
	if err != nil {
		var missing *MissingFieldError
		if !errors.As(err, &missing) || missing.Field != r.cfg.FieldsToRead.CreateDate {
			return model.Photo{}, err
		}
		for _, fields := range r.cfg.FallbackMaps {
			if rec, err = sc.Extract(fields); err == nil {
				break
			}
		}
		if err != nil {
			return model.Photo{}, err
		}
	}

	rec.Name = PhotoName(path, r.cfg.SidecarTypes)

	photo, err := Normalize(rec, r.cfg.CropFactor)
	if err != nil {
		return model.Photo{}, err
	}
	photo.SidecarPath = path
	photo.FilePath = ImagePath(path, r.cfg.SidecarTypes)
	return photo, nil
}

// PhotoName derives the image filename from a sidecar path:
// "P1011881.orf.exposurex7" -> "P1011881.orf".
func PhotoName(path string, sidecarTypes []string) string {
	name := filepath.Base(path)
	for _, t := range sidecarTypes {
		if strings.HasSuffix(name, t) {
			return strings.TrimSuffix(name, "."+t)
		}
	}
	return name
}

// ImagePath locates the image a sidecar belongs to. Exposure keeps sidecars
// under "<dir>/Exposure Software/Exposure X7/", three levels below the
// directory holding the image itself.
func ImagePath(sidecarPath string, sidecarTypes []string) string {
	root := filepath.Dir(filepath.Dir(filepath.Dir(sidecarPath)))
	return filepath.Join(root, PhotoName(sidecarPath, sidecarTypes))
}
