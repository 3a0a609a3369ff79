package csv2yolo

// Table Reader for CSV bounding box annotations, one row per object.

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// The required table columns. Additional columns are ignored.
const (
	ColumnFilename = "filename"
	ColumnWidth    = "width"
	ColumnHeight   = "height"
	ColumnClass    = "class"
	ColumnXMin     = "xmin"
	ColumnYMin     = "ymin"
	ColumnXMax     = "xmax"
	ColumnYMax     = "ymax"
)

// RequiredColumns lists the columns that every annotation table must contain, in the order of the
// fields of AnnotationRow.
var RequiredColumns = [...]string{
	ColumnFilename, ColumnWidth, ColumnHeight, ColumnClass,
	ColumnXMin, ColumnYMin, ColumnXMax, ColumnYMax,
}

// ReadTable reads and parses the CSV annotation table at path.
func ReadTable(path string) (rows []AnnotationRow, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &MalformedInputError{Path: path, Err: err}
	}
	defer closeWithErrCheck(file, &err)

	return ParseTable(file, path)
}

// ParseTable parses a CSV annotation table with a header row from r. The name is used in errors.
//
// Rows are returned in source order. Numeric values are parsed but not range checked.
func ParseTable(r io.Reader, name string) ([]AnnotationRow, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &MalformedInputError{Path: name, Err: fmt.Errorf("missing header row")}
	} else if err != nil {
		return nil, malformed(name, err)
	}

	columns, err := columnIndices(header)
	if err != nil {
		return nil, &MalformedInputError{Path: name, Line: 1, Err: err}
	}

	var rows []AnnotationRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, malformed(name, err)
		}

		row, err := parseRow(record, columns)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, &MalformedInputError{Path: name, Line: line, Err: err}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// malformed wraps a CSV reader error, keeping the line number of parse errors.
func malformed(name string, err error) error {
	if pe, ok := err.(*csv.ParseError); ok {
		return &MalformedInputError{Path: name, Line: pe.Line, Err: pe.Err}
	}
	return &MalformedInputError{Path: name, Err: err}
}

// columnIndices maps each of the RequiredColumns to its index in header.
func columnIndices(header []string) ([len(RequiredColumns)]int, error) {
	var columns [len(RequiredColumns)]int

	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := positions[h]; !dup {
			positions[h] = i
		}
	}

	var missing []string
	for i, name := range RequiredColumns {
		pos, found := positions[name]
		if !found {
			missing = append(missing, name)
			continue
		}
		columns[i] = pos
	}
	if len(missing) > 0 {
		return columns, fmt.Errorf("missing required columns %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

// parseRow converts the CSV record into an AnnotationRow, using the column indices from
// columnIndices. The file name and class are kept verbatim; white space is only trimmed around
// numeric values.
func parseRow(record []string, columns [len(RequiredColumns)]int) (AnnotationRow, error) {
	field := func(i int) string {
		return record[columns[i]]
	}

	row := AnnotationRow{
		Filename: field(0),
		Class:    field(3),
	}

	var err error
	if row.Width, err = parseDimension(field(1)); err != nil {
		return row, fmt.Errorf("invalid %s %q: %v", ColumnWidth, field(1), err)
	}
	if row.Height, err = parseDimension(field(2)); err != nil {
		return row, fmt.Errorf("invalid %s %q: %v", ColumnHeight, field(2), err)
	}
	for i := 0; i < 4; i++ {
		v := field(4 + i)
		if row.Coords[i], err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
			return row, fmt.Errorf("invalid %s %q: %v", RequiredColumns[4+i], v, err)
		}
	}

	return row, nil
}

// parseDimension parses an integral pixel dimension. Float notation with a zero fraction, such
// as "640.0", is accepted.
func parseDimension(s string) (int, error) {
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer")
	}
	return int(f), nil
}
