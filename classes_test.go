package csv2yolo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassIndex(t *testing.T) {
	index, err := ParseClassIndex("Mask=0, Face Shield=1,Full Cover =2,Gloves=3,Goggles=4")
	require.NoError(t, err)
	assert.Equal(t, DefaultClassIndex(), index)

	id, ok := index.Lookup("Face Shield")
	assert.True(t, ok)
	assert.Equal(t, 1, id)

	// The lookup is exact.
	_, ok = index.Lookup("gloves")
	assert.False(t, ok)
}

func TestParseClassIndexErrors(t *testing.T) {
	for _, s := range []string{"", " , ", "Mask", "=1", "Mask=x", "Mask=-1", "Mask=0,Mask=1"} {
		_, err := ParseClassIndex(s)
		assert.Error(t, err, "%q", s)
	}
}

func TestClassIndexString(t *testing.T) {
	assert.Equal(t, "Mask=0,Face Shield=1,Full Cover=2,Gloves=3,Goggles=4",
		DefaultClassIndex().String())

	index, err := ParseClassIndex(DefaultClassIndex().String())
	require.NoError(t, err)
	assert.Equal(t, DefaultClassIndex(), index)
}

func TestClassIndexNames(t *testing.T) {
	assert.Equal(t, []string{"Mask", "Face Shield", "Full Cover", "Gloves", "Goggles"},
		DefaultClassIndex().Names())

	index := ClassIndex{"person": 0, "pedestrian": 0, "car": 2}
	assert.Equal(t, []string{"pedestrian", "", "car"}, index.Names())

	assert.Empty(t, ClassIndex{}.Names())
}

func TestClassIndexValidate(t *testing.T) {
	assert.NoError(t, DefaultClassIndex().Validate())
	assert.Error(t, ClassIndex{}.Validate())
	assert.Error(t, ClassIndex{"x": -1}.Validate())
}

func TestLoadLabelMap(t *testing.T) {
	dir := t.TempDir()

	write := func(name, text string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(text), 0644))
		return path
	}

	path := write("label_map.pbtxt", `
item {
  id: 1
  name: 'Mask'
}
item {
  name: "Face Shield"
  id: 2
  display_name: "face shield"
}
item {
  id: 4
  name: 'Gloves'
}
`)
	index, err := LoadLabelMap(path)
	require.NoError(t, err)
	assert.Equal(t, ClassIndex{"Mask": 0, "Face Shield": 1, "Gloves": 3}, index)

	tests := []struct {
		name string
		text string
	}{
		{"zero id", "item { id: 0 name: 'background' }"},
		{"missing name", "item { id: 1 }"},
		{"no items", ""},
		{"syntax error", "item { id: 1 name: 'Mask' "},
		{"unknown field", "item { id: 1 name: 'Mask' color: 'red' }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLabelMap(write(tt.name+".pbtxt", tt.text))
			assert.Error(t, err)
		})
	}

	_, err = LoadLabelMap(filepath.Join(dir, "missing.pbtxt"))
	assert.Error(t, err)
}
