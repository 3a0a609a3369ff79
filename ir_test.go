package csv2yolo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRows(t *testing.T) {
	rows := []AnnotationRow{
		{Filename: "b.jpg", Width: 10, Height: 20, Class: "Mask"},
		{Filename: "a.jpg", Width: 30, Height: 40, Class: "Gloves"},
		{Filename: "b.jpg", Width: 99, Height: 99, Class: "Goggles"},
		{Filename: "a.jpg", Width: 30, Height: 40, Class: "Mask"},
		{Filename: "c.jpg", Width: 50, Height: 60, Class: "Full Cover"},
	}

	groups := GroupRows(rows)
	require.Len(t, groups, 3)

	// First-seen order of file names.
	assert.Equal(t, "b.jpg", groups[0].Filename)
	assert.Equal(t, "a.jpg", groups[1].Filename)
	assert.Equal(t, "c.jpg", groups[2].Filename)

	// The first row's dimensions apply to the whole group.
	assert.Equal(t, 10, groups[0].Width)
	assert.Equal(t, 20, groups[0].Height)

	// Row order within a group.
	require.Len(t, groups[0].Rows, 2)
	assert.Equal(t, "Mask", groups[0].Rows[0].Class)
	assert.Equal(t, "Goggles", groups[0].Rows[1].Class)
	assert.Equal(t, []AnnotationRow{rows[1], rows[3]}, groups[1].Rows)

	assert.Empty(t, GroupRows(nil))
}

func TestBoxSize(t *testing.T) {
	r := AnnotationRow{Coords: [4]float64{10, 20, 35, 80}}
	assert.Equal(t, 25.0, r.BoxWidth())
	assert.Equal(t, 60.0, r.BoxHeight())
}

func TestMapLabels(t *testing.T) {
	rows := []AnnotationRow{
		{Class: "mask"},
		{Class: "face_shield"},
		{Class: "Gloves"},
	}

	count, err := MapLabels(rows, []string{"mask=Mask", "face_shield=Face Shield", "Face=Full"})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "Mask", rows[0].Class)
	assert.Equal(t, "Full Shield", rows[1].Class)
	assert.Equal(t, "Gloves", rows[2].Class)

	count, err = MapLabels(rows, nil)
	assert.NoError(t, err)
	assert.Zero(t, count)

	for _, m := range []string{"no-separator", "=empty-old", "a=b=c"} {
		_, err := MapLabels(rows, []string{m})
		assert.Error(t, err, m)
	}
}
