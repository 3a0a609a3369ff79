package csv2yolo

// YOLO label format specific functionality.

import (
	"fmt"
	"path/filepath"
	"strings"
)

// LabelFileExt is the file extension of label files.
const LabelFileExt = ".txt"

// NormalizedBox is a single YOLO annotation. The coordinates are fractions of the image width and
// height. They lie in [0, 1] for boxes within the image bounds but are not clamped.
type NormalizedBox struct {
	ClassID int
	XCenter float64
	YCenter float64
	Width   float64
	Height  float64
}

// Normalize converts the pixel-space box of r to a NormalizedBox for an image of the given
// width and height.
func Normalize(r AnnotationRow, width, height, classID int) NormalizedBox {
	w, h := float64(width), float64(height)
	xmin, ymin, xmax, ymax := r.Coords[0], r.Coords[1], r.Coords[2], r.Coords[3]

	return NormalizedBox{
		ClassID: classID,
		XCenter: ((xmin + xmax) / 2.0) / w,
		YCenter: ((ymin + ymax) / 2.0) / h,
		Width:   (xmax - xmin) / w,
		Height:  (ymax - ymin) / h,
	}
}

// Denormalize returns the absolute xmin, ymin, xmax, ymax coordinates of b in an image of the
// given width and height.
func (b NormalizedBox) Denormalize(width, height int) [4]float64 {
	w, h := float64(width), float64(height)
	return [4]float64{
		(b.XCenter - b.Width/2) * w,
		(b.YCenter - b.Height/2) * h,
		(b.XCenter + b.Width/2) * w,
		(b.YCenter + b.Height/2) * h,
	}
}

// String formats b as a label line: the class id followed by the four coordinates with six
// decimal places, separated by spaces.
func (b NormalizedBox) String() string {
	return fmt.Sprintf("%d %.6f %.6f %.6f %.6f", b.ClassID, b.XCenter, b.YCenter, b.Width, b.Height)
}

// LabelRecord is the YOLO label data for a single image. The boxes are in table order.
type LabelRecord struct {
	Filename string // The image file name.
	Boxes    []NormalizedBox
}

// Lines returns one formatted line per box.
func (l LabelRecord) Lines() []string {
	lines := make([]string, len(l.Boxes))
	for i, b := range l.Boxes {
		lines[i] = b.String()
	}
	return lines
}

// Bytes returns the content of the label file: the lines joined by newlines, without a trailing
// newline. A record without boxes yields an empty file.
func (l LabelRecord) Bytes() []byte {
	return []byte(strings.Join(l.Lines(), "\n"))
}

// LabelFileName returns the label file name for the image file name, i.e. the image base name
// with its extension replaced by LabelFileExt.
func LabelFileName(imageFilename string) string {
	return fileStem(imageFilename) + LabelFileExt
}

// imagesDir returns the image directory for split below the output directory.
func imagesDir(outputDir string, split Split) string {
	return filepath.Join(outputDir, "images", string(split))
}

// labelsDir returns the label directory for split below the output directory.
func labelsDir(outputDir string, split Split) string {
	return filepath.Join(outputDir, "labels", string(split))
}
