package csv2yolo

// The in-memory representation of the annotation table.

import (
	"fmt"
	"strings"
)

// AnnotationRow is one annotated object, i.e. one row of the annotation table.
type AnnotationRow struct {
	Filename string     // The image file name, relative to the image directory of its split.
	Width    int        // The image width in pixels.
	Height   int        // The image height in pixels.
	Class    string     // The class name.
	Coords   [4]float64 // Absolute xmin, ymin, xmax, ymax offsets from the top-left corner.
}

// BoxWidth is the object width from r.Coords.
func (r AnnotationRow) BoxWidth() float64 {
	return r.Coords[2] - r.Coords[0]
}

// BoxHeight is the object height from r.Coords.
func (r AnnotationRow) BoxHeight() float64 {
	return r.Coords[3] - r.Coords[1]
}

// ImageGroup holds all rows that annotate the same image.
//
// Width and Height are taken from the first row of the group. The dimensions reported by later
// rows are not compared against them.
type ImageGroup struct {
	Filename string
	Width    int
	Height   int
	Rows     []AnnotationRow
}

// GroupRows partitions rows into one ImageGroup per file name. Groups are returned in the order
// in which their file names first occur, and rows keep their relative order within a group.
func GroupRows(rows []AnnotationRow) []ImageGroup {
	groups := make([]ImageGroup, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, r := range rows {
		i, found := index[r.Filename]
		if !found {
			i = len(groups)
			index[r.Filename] = i
			groups = append(groups, ImageGroup{
				Filename: r.Filename,
				Width:    r.Width,
				Height:   r.Height,
			})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}

	return groups
}

// labelMapping is a single old=new class name substitution.
type labelMapping struct{ old, new string }

// parseLabelMappings parses mappings of the format old=new.
func parseLabelMappings(mappings []string) ([]labelMapping, error) {
	replacements := make([]labelMapping, len(mappings))
	for i, v := range mappings {
		a := strings.Split(v, "=")
		if len(a) != 2 || a[0] == "" {
			return nil, fmt.Errorf("invalid mapping: %v", v)
		}

		replacements[i].old = a[0]
		replacements[i].new = a[1]
	}
	return replacements, nil
}

// MapLabels replaces class name (sub-)strings in rows with substitution values, as specified in
// mappings. The replacements are applied in order, each to the result of the previous one.
//
// The format of mappings is old=new. Returns the number of rows whose class name changed.
func MapLabels(rows []AnnotationRow, mappings []string) (int, error) {
	if len(mappings) == 0 {
		return 0, nil
	}

	replacements, err := parseLabelMappings(mappings)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := range rows {
		r := &rows[i]

		oldClass := r.Class
		for _, m := range replacements {
			r.Class = strings.Replace(r.Class, m.old, m.new, -1)
		}

		if r.Class != oldClass {
			count++
		}
	}

	return count, nil
}
