package library

import (
	"sort"
	"time"

	"exposurestats/internal/model"
)

// Snapshot is one complete read of the library: the photo table plus the
// derived lookups the dashboard needs.
type Snapshot struct {
	Photos           []model.Photo
	Cameras          []string
	Lenses           []string
	Keywords         []model.KeywordRow
	DanglingSidecars int
	UnloadedSidecars int
	ScannedAt        time.Time
}

func buildSnapshot(photos []model.Photo, dangling, unloaded int) *Snapshot {
	// newest first, same order the database listing uses
	sort.SliceStable(photos, func(i, j int) bool {
		return photos[i].CreateDate.After(photos[j].CreateDate)
	})

	cameras := map[string]bool{}
	lenses := map[string]bool{}
	var keywordRows []model.KeywordRow

	for _, p := range photos {
		cameras[p.Camera] = true
		lenses[p.Lens] = true
		for _, kw := range p.Keywords {
			keywordRows = append(keywordRows, model.KeywordRow{
				Name:    p.Name,
				Camera:  p.Camera,
				Lens:    p.Lens,
				Keyword: kw,
			})
		}
	}

	return &Snapshot{
		Photos:           photos,
		Cameras:          sortedKeys(cameras),
		Lenses:           sortedKeys(lenses),
		Keywords:         keywordRows,
		DanglingSidecars: dangling,
		UnloadedSidecars: unloaded,
		ScannedAt:        time.Now(),
	}
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// FindPhoto looks a photo up by name.
func (s *Snapshot) FindPhoto(name string) (model.Photo, bool) {
	for _, p := range s.Photos {
		if p.Name == name {
			return p, true
		}
	}
	return model.Photo{}, false
}
