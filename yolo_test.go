package csv2yolo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExample(t *testing.T) {
	r := AnnotationRow{
		Filename: "a.jpg", Width: 200, Height: 100, Class: "Gloves",
		Coords: [4]float64{50, 20, 150, 80},
	}

	b := Normalize(r, r.Width, r.Height, 3)
	assert.Equal(t, "3 0.500000 0.500000 0.500000 0.600000", b.String())
}

func TestNormalizeWithinUnitRange(t *testing.T) {
	const width, height = 640, 480

	for _, x := range [][2]float64{{0, 1}, {0, width}, {0.5, 320}, {639, width}, {100, 101.25}} {
		for _, y := range [][2]float64{{0, 1}, {0, height}, {17, 18}, {240.5, 479.5}} {
			r := AnnotationRow{Coords: [4]float64{x[0], y[0], x[1], y[1]}}
			b := Normalize(r, width, height, 0)

			for _, v := range []float64{b.XCenter, b.YCenter, b.Width, b.Height} {
				assert.GreaterOrEqual(t, v, 0.0, "box %v", r.Coords)
				assert.LessOrEqual(t, v, 1.0, "box %v", r.Coords)
			}
		}
	}
}

func TestNormalizeDenormalizeRoundTrip(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		coords        [4]float64
	}{
		{"full image", 200, 100, [4]float64{0, 0, 200, 100}},
		{"centered", 200, 100, [4]float64{50, 20, 150, 80}},
		{"fractional", 1920, 1080, [4]float64{12.25, 33.5, 801.75, 1079.9}},
		{"thin", 37, 53, [4]float64{1, 2, 1.5, 52}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Normalize(AnnotationRow{Coords: tt.coords}, tt.width, tt.height, 1)
			got := b.Denormalize(tt.width, tt.height)
			for i := range got {
				assert.InDelta(t, tt.coords[i], got[i], 1e-9)
			}
		})
	}
}

func TestNormalizeDoesNotClamp(t *testing.T) {
	b := Normalize(AnnotationRow{Coords: [4]float64{-10, 0, 210, 100}}, 200, 100, 0)
	assert.Equal(t, "0 0.500000 0.500000 1.100000 1.000000", b.String())
}

func TestLabelRecordBytes(t *testing.T) {
	l := LabelRecord{
		Filename: "a.jpg",
		Boxes: []NormalizedBox{
			{ClassID: 3, XCenter: 0.5, YCenter: 0.5, Width: 0.5, Height: 0.6},
			{ClassID: 0, XCenter: 0.1, YCenter: 0.2, Width: 0.0123456789, Height: 1},
		},
	}
	assert.Equal(t, "3 0.500000 0.500000 0.500000 0.600000\n0 0.100000 0.200000 0.012346 1.000000",
		string(l.Bytes()))

	assert.Empty(t, LabelRecord{Filename: "b.jpg"}.Bytes())
}

func TestLabelFileName(t *testing.T) {
	tests := map[string]string{
		"a.jpg":         "a.txt",
		"img.0001.png":  "img.0001.txt",
		"noext":         "noext.txt",
		"sub/dir/x.JPG": "x.txt",
		".hidden":       ".hidden.txt",
	}
	for in, want := range tests {
		assert.Equal(t, want, LabelFileName(in), in)
	}
}
