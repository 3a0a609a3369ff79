package main

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sensorable/csv2yolo"
)

func TestParseArgsDefaultLayout(t *testing.T) {
	cfg, err := parseArgs("csv2yolo", []string{"-root", "project/", "-dataset-yaml"}, io.Discard)
	require.NoError(t, err)

	want := csv2yolo.DefaultConfig("project")
	want.DatasetYAML = true
	assert.Equal(t, want, cfg)
}

func TestParseArgsExplicitJobs(t *testing.T) {
	cfg, err := parseArgs("csv2yolo", []string{
		"-tables", "a.csv, b.csv",
		"-images", "img/a,img/b",
		"-splits", "train,fold-2",
		"-out", "out/",
		"-classes", "person=0,car=1",
		"-map-labels", "Person=person",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "out", cfg.OutputDir)
	assert.Equal(t, csv2yolo.ClassIndex{"person": 0, "car": 1}, cfg.Classes)
	assert.Equal(t, []string{"Person=person"}, cfg.LabelMappings)
	assert.Equal(t, []csv2yolo.Job{
		{Table: "a.csv", ImageDir: filepath.Join("img", "a"), Split: csv2yolo.Train},
		{Table: "b.csv", ImageDir: filepath.Join("img", "b"), Split: csv2yolo.Split("fold-2")},
	}, cfg.Jobs)
}

func TestParseArgsLabelMap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "label_map.pbtxt")
	require.NoError(t, os.WriteFile(path, []byte("item { id: 1 name: 'Mask' }"), 0644))

	cfg, err := parseArgs("csv2yolo", []string{"-label-map", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, csv2yolo.ClassIndex{"Mask": 0}, cfg.Classes)
}

func TestParseArgsConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: data\n"), 0644))

	cfg, err := parseArgs("csv2yolo", []string{"-config", path, "-dataset-yaml"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "yolo_dataset"), cfg.OutputDir)
	assert.True(t, cfg.DatasetYAML)
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"mismatched lists", []string{"-tables", "a.csv,b.csv", "-images", "img", "-splits", "train,val"}},
		{"bad classes", []string{"-classes", "Mask"}},
		{"bad split", []string{"-tables", "a.csv", "-images", "img", "-splits", ".."}},
		{"images into output", []string{"-tables", "a.csv", "-images", "out/images/train",
			"-splits", "train", "-out", "out"}},
		{"positional argument", []string{"extra"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("csv2yolo", tt.args, io.Discard)
			assert.Error(t, err)
		})
	}
}
