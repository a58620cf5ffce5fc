package dto

import "time"

// PhotoFilters narrows the library snapshot before aggregation.
// Empty slices mean no filtering on that dimension.
type PhotoFilters struct {
	Cameras    []string
	Lenses     []string
	DateAfter  time.Time
	DateBefore time.Time
}

// MatchCamera reports whether a camera passes the filter.
func (f *PhotoFilters) MatchCamera(camera string) bool {
	return matchIn(f.Cameras, camera)
}

// MatchLens reports whether a lens passes the filter.
func (f *PhotoFilters) MatchLens(lens string) bool {
	return matchIn(f.Lenses, lens)
}

// MatchDate reports whether a capture time falls inside the date range.
func (f *PhotoFilters) MatchDate(t time.Time) bool {
	if !f.DateAfter.IsZero() && t.Before(f.DateAfter) {
		return false
	}
	if !f.DateBefore.IsZero() && t.After(f.DateBefore) {
		return false
	}
	return true
}

func matchIn(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
