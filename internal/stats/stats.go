// Package stats aggregates the library snapshot into the count tables the
// dashboard charts are drawn from.
package stats

import (
	"sort"
	"strconv"

	"exposurestats/internal/dto"
	"exposurestats/internal/library"
	"exposurestats/internal/model"
)

// Filter returns the photos passing the given filters.
func Filter(photos []model.Photo, f *dto.PhotoFilters) []model.Photo {
	if f == nil {
		return photos
	}
	out := make([]model.Photo, 0, len(photos))
	for _, p := range photos {
		if f.MatchCamera(p.Camera) && f.MatchLens(p.Lens) && f.MatchDate(p.CreateDate) {
			out = append(out, p)
		}
	}
	return out
}

// ByCamera counts photos per camera model, sorted by label.
func ByCamera(photos []model.Photo) []dto.CountRow {
	return countBy(photos, func(p model.Photo) string { return p.Camera }, sortLexical)
}

// ByLens counts photos per lens, sorted by label.
func ByLens(photos []model.Photo) []dto.CountRow {
	return countBy(photos, func(p model.Photo) string { return p.Lens }, sortLexical)
}

// ByFocalLength counts photos per focal length, in ascending millimetres.
func ByFocalLength(photos []model.Photo) []dto.CountRow {
	return countBy(photos, func(p model.Photo) string {
		return strconv.Itoa(p.FocalLength)
	}, sortNumeric)
}

// ByDate counts photos per capture day, chronologically.
func ByDate(photos []model.Photo) []dto.CountRow {
	return countBy(photos, func(p model.Photo) string { return p.Date }, sortLexical)
}

// ByKeyword counts keyword rows per keyword, honouring the camera and lens
// filters the keyword chart shares with the others.
func ByKeyword(rows []model.KeywordRow, f *dto.PhotoFilters) []dto.CountRow {
	counts := map[string]int{}
	for _, r := range rows {
		if f != nil && (!f.MatchCamera(r.Camera) || !f.MatchLens(r.Lens)) {
			continue
		}
		counts[r.Keyword]++
	}
	return toRows(counts, sortLexical)
}

// Summary condenses a snapshot for the library endpoint.
func Summary(snap *library.Snapshot) dto.LibraryInfo {
	return dto.LibraryInfo{
		PhotoCount:       len(snap.Photos),
		Cameras:          snap.Cameras,
		Lenses:           snap.Lenses,
		DanglingSidecars: snap.DanglingSidecars,
		UnloadedSidecars: snap.UnloadedSidecars,
		LastScan:         snap.ScannedAt,
	}
}

type sortMode int

const (
	sortLexical sortMode = iota
	sortNumeric
)

func countBy(photos []model.Photo, key func(model.Photo) string, mode sortMode) []dto.CountRow {
	counts := map[string]int{}
	for _, p := range photos {
		counts[key(p)]++
	}
	return toRows(counts, mode)
}

func toRows(counts map[string]int, mode sortMode) []dto.CountRow {
	rows := make([]dto.CountRow, 0, len(counts))
	for label, count := range counts {
		rows = append(rows, dto.CountRow{Label: label, Count: count})
	}
	switch mode {
	case sortNumeric:
		sort.Slice(rows, func(i, j int) bool {
			a, _ := strconv.Atoi(rows[i].Label)
			b, _ := strconv.Atoi(rows[j].Label)
			return a < b
		})
	default:
		sort.Slice(rows, func(i, j int) bool { return rows[i].Label < rows[j].Label })
	}
	return rows
}
