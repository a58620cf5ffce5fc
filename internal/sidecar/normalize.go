package sidecar

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"exposurestats/internal/model"
)

// NoLens labels photos shot without electronic lens contacts.
const NoLens = "No Lens"

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize converts a raw record into a Photo. cropFactor maps a camera
// model to its sensor crop factor.
func Normalize(rec Record, cropFactor func(string) float64) (model.Photo, error) {
	var p model.Photo

	created, err := ParseDate(rec.CreateDate)
	if err != nil {
		return p, fmt.Errorf("bad CreateDate %q: %w", rec.CreateDate, err)
	}

	focal, err := ParseRational(rec.FocalLength)
	if err != nil {
		return p, fmt.Errorf("bad FocalLength %q: %w", rec.FocalLength, err)
	}

	fnumber, err := ParseFNumber(rec.FNumber)
	if err != nil {
		return p, fmt.Errorf("bad FNumber %q: %w", rec.FNumber, err)
	}

	flag := 0
	if rec.Flag != "" {
		if flag, err = strconv.Atoi(strings.TrimSpace(rec.Flag)); err != nil {
			return p, fmt.Errorf("bad pick flag %q: %w", rec.Flag, err)
		}
	}

	lens := strings.TrimSpace(rec.Lens)
	if lens == "" {
		lens = NoLens
	}
	camera := strings.TrimRight(rec.Camera, " ")

	p = model.Photo{
		Name:        rec.Name,
		CreateDate:  created,
		Date:        created.Format("2006-01-02"),
		FocalLength: int(math.Round(focal)),
		FNumber:     fnumber,
		Camera:      camera,
		Lens:        lens,
		Flag:        flag,
		CropFactor:  cropFactor(camera),
		Keywords:    rec.Keywords,
	}
	p.EquivalentFocalLength = float64(p.FocalLength) * p.CropFactor

	return p, nil
}

// ParseDate reads the capture timestamp formats seen in sidecars.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date format")
}

// ParseRational evaluates an EXIF rational like "500/10", or a plain number.
func ParseRational(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, err
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil {
			return 0, err
		}
		if d == 0 {
			return 0, fmt.Errorf("zero denominator")
		}
		return n / d, nil
	}
	return strconv.ParseFloat(s, 64)
}

// ParseFNumber reads an aperture value written as an EXIF rational.
// The "/1" substring is dropped before evaluating ("28/10" -> 280), so
// values land in hundredths and are scaled back below 90. Manual lenses
// report apertures already in hundredths as well.
func ParseFNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "/1", "")
	if s == "" {
		return 0, fmt.Errorf("empty FNumber")
	}
	v, err := ParseRational(s)
	if err != nil {
		return 0, err
	}
	for v > 90 {
		v = v / 100.0
	}
	return v, nil
}
