// Package sidecar reads photo metadata from Exposure sidecar files
// (.exposurex6 / .exposurex7). Sidecars are XMP documents; the metadata
// lives as attributes on the rdf:Description element, keywords as an
// rdf:Bag under alienexposure:virtualpaths.
package sidecar

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"exposurestats/internal/config"
)

// MissingFieldError reports a required attribute absent from a sidecar.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing sidecar field: %s", e.Field)
}

// Sidecar is the decoded content of one sidecar file.
type Sidecar struct {
	// Attrs holds the rdf:Description attributes keyed by local name
	// (namespace prefixes vary between writing applications).
	Attrs map[string]string
	// Keywords are the raw rdf:li items of the virtualpaths bag.
	Keywords []string
}

// Record is the raw, string-valued metadata extracted with one field map.
type Record struct {
	Name        string
	CreateDate  string
	FocalLength string
	FNumber     string
	Camera      string
	Lens        string
	Flag        string
	Keywords    []string
}

// Parse decodes a sidecar XMP document.
func Parse(r io.Reader) (*Sidecar, error) {
	dec := xml.NewDecoder(r)
	sc := &Sidecar{Attrs: map[string]string{}}

	inBag := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse sidecar xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "Description":
				// first Description carries the metadata attributes
				if len(sc.Attrs) == 0 {
					for _, a := range t.Attr {
						sc.Attrs[a.Name.Local] = a.Value
					}
				}
			case "virtualpaths":
				inBag = true
			case "li":
				if inBag {
					var item string
					if err := dec.DecodeElement(&item, &t); err != nil {
						return nil, fmt.Errorf("failed to parse keyword item: %w", err)
					}
					sc.Keywords = append(sc.Keywords, strings.TrimSpace(item))
				}
			}
		case xml.EndElement:
			if t.Name.Local == "virtualpaths" {
				inBag = false
			}
		}
	}

	if len(sc.Attrs) == 0 {
		return nil, fmt.Errorf("sidecar has no rdf:Description element")
	}
	return sc, nil
}

// ParseFile decodes a sidecar file from disk.
func ParseFile(path string) (*Sidecar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sidecar: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Extract pulls the fields named by one field map out of the sidecar.
// It returns a MissingFieldError for the first absent attribute.
func (s *Sidecar) Extract(fields config.FieldMap) (Record, error) {
	var rec Record
	var err error

	if rec.CreateDate, err = s.attr(fields.CreateDate); err != nil {
		return rec, err
	}
	if rec.FocalLength, err = s.attr(fields.FocalLength); err != nil {
		return rec, err
	}
	if rec.FNumber, err = s.attr(fields.FNumber); err != nil {
		return rec, err
	}
	if rec.Camera, err = s.attr(fields.Camera); err != nil {
		return rec, err
	}
	if rec.Lens, err = s.attr(fields.Lens); err != nil {
		return rec, err
	}
	if rec.Flag, err = s.attr(fields.Flag); err != nil {
		return rec, err
	}
	rec.Keywords = CleanKeywords(s.Keywords)

	return rec, nil
}

// attr looks up a "prefix:local" field name by its local part.
func (s *Sidecar) attr(field string) (string, error) {
	local := field
	if i := strings.LastIndex(field, ":"); i >= 0 {
		local = field[i+1:]
	}
	if v, ok := s.Attrs[local]; ok {
		return v, nil
	}
	return "", &MissingFieldError{Field: field}
}

// CleanKeywords turns raw virtualpath items into plain keywords.
// Only "kywd:" paths are keywords; collection paths are dropped.
// "kywd:||urban|" becomes "urban".
func CleanKeywords(items []string) []string {
	keywords := []string{}
	for _, item := range items {
		if !strings.HasPrefix(item, "kywd") {
			continue
		}
		kw := strings.TrimPrefix(item, "kywd:||")
		kw = strings.ReplaceAll(kw, "|", "")
		if kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return keywords
}
