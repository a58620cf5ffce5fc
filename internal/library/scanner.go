// Package library scans an Exposure photo library on disk and builds the
// in-memory snapshot the dashboard aggregates over.
package library

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"exposurestats/internal/config"
	"exposurestats/internal/dto"
	"exposurestats/internal/logger"
	"exposurestats/internal/model"
	"exposurestats/internal/sidecar"
)

// ProgressFunc receives scan progress events.
type ProgressFunc func(dto.ScanEvent)

// Scanner walks the library directory and reads every sidecar it finds.
type Scanner struct {
	cfg    *config.Config
	log    *logger.Logger
	reader *sidecar.Reader
}

func NewScanner(cfg *config.Config, log *logger.Logger) *Scanner {
	return &Scanner{
		cfg:    cfg,
		log:    log,
		reader: sidecar.NewReader(cfg),
	}
}

// Scan builds a library snapshot. Unreadable sidecars are dropped and
// counted, never fatal.
func (s *Scanner) Scan(ctx context.Context, progress ProgressFunc) (*Snapshot, error) {
	started := time.Now()
	notify := func(ev dto.ScanEvent) {
		if progress != nil {
			progress(ev)
		}
	}

	notify(dto.ScanEvent{Stage: "walking"})

	files, err := s.findSidecars()
	if err != nil {
		return nil, err
	}

	if removed := s.cleanDuplicates(files); removed > 0 {
		// old-version duplicates were deleted, pick up the survivors
		s.log.Warning("%d duplicated sidecars removed, re-reading directory", removed)
		if files, err = s.findSidecars(); err != nil {
			return nil, err
		}
	}

	var (
		photos   []model.Photo
		dangling int
		unloaded int
	)

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if i%50 == 0 {
			notify(dto.ScanEvent{Stage: "parsing", Current: i, Total: len(files)})
		}

		photo, err := s.reader.ReadFile(file)
		if err != nil {
			if s.isDangling(file) {
				dangling++
				s.log.Warning("sidecar has no matching image: %s", file)
				if s.cfg.DeleteDangling {
					s.log.Warning("deleting dangling sidecar %s", file)
					if err := os.Remove(file); err != nil {
						s.log.Error("failed to delete dangling sidecar: %v", err)
					}
				}
				continue
			}
			unloaded++
			s.log.Warning("could not read sidecar %s: %v", file, err)
			continue
		}
		if s.dropByFlag(photo.Flag) {
			continue
		}
		photos = append(photos, photo)
	}

	snap := buildSnapshot(photos, dangling, unloaded)

	s.log.Info("it took %ds to get the data", int(time.Since(started).Seconds()))
	s.log.Warning("%d photos in library", len(snap.Photos))
	s.log.Warning("%d dangling sidecar files found", dangling)
	s.log.Warning("%d unloaded sidecar files found", unloaded)

	notify(dto.ScanEvent{
		Stage:    "done",
		Current:  len(files),
		Total:    len(files),
		Dangling: dangling,
		Unloaded: unloaded,
	})

	return snap, nil
}

// findSidecars recursively collects sidecar files, skipping the
// configured directories.
func (s *Scanner) findSidecars() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.cfg.LibraryPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			for _, avoid := range s.cfg.DirsToAvoid {
				if strings.EqualFold(d.Name(), avoid) {
					s.log.Warning("skipping dir to avoid: %s", path)
					return filepath.SkipDir
				}
			}
			return nil
		}
		for _, t := range s.cfg.SidecarTypes {
			if strings.HasSuffix(d.Name(), t) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// cleanDuplicates handles sidecars that exist for the same photo more than
// once. A photo carrying sidecars from two Exposure versions keeps only the
// current one; duplicated names whose image no longer exists are phantom
// leftovers and are removed too. Returns how many files were deleted.
func (s *Scanner) cleanDuplicates(files []string) int {
	byName := map[string][]string{}
	for _, f := range files {
		name := sidecar.PhotoName(f, s.cfg.SidecarTypes)
		byName[name] = append(byName[name], f)
	}

	removed := 0
	for name, paths := range byName {
		if len(paths) < 2 {
			continue
		}
		s.log.Warning("duplicated sidecars detected for %s", name)

		// distinct sidecar versions present for this photo
		versions := map[string]bool{}
		for _, p := range paths {
			versions[strings.TrimPrefix(filepath.Ext(p), ".")] = true
		}
		if len(versions) > 1 {
			for _, p := range paths {
				if strings.HasSuffix(p, s.cfg.CurrentVersion) {
					continue
				}
				s.log.Warning("removing sidecar from a previous exposure version: %s", p)
				if err := os.Remove(p); err != nil {
					s.log.Error("failed to remove duplicated sidecar: %v", err)
					continue
				}
				removed++
			}
			continue
		}

		if !s.cfg.RunForDuplicates {
			continue
		}
		for _, p := range paths {
			if s.isDangling(p) {
				s.log.Warning("removing sidecar %s without associated image file", p)
				if err := os.Remove(p); err != nil {
					s.log.Error("failed to remove phantom sidecar: %v", err)
					continue
				}
				removed++
			}
		}
	}
	return removed
}

// isDangling reports whether the image a sidecar points at is gone.
func (s *Scanner) isDangling(sidecarPath string) bool {
	_, err := os.Stat(sidecar.ImagePath(sidecarPath, s.cfg.SidecarTypes))
	return os.IsNotExist(err)
}

func (s *Scanner) dropByFlag(flag int) bool {
	for _, f := range s.cfg.DropFlags {
		if flag == f {
			return true
		}
	}
	return false
}
