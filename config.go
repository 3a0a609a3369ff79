package csv2yolo

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Job is one conversion pass: the rows of Table are converted into Split, with the annotated
// images read from ImageDir.
type Job struct {
	Table    string
	ImageDir string
	Split    Split
}

// Config is the configuration of a conversion run. It is fixed before the run starts.
type Config struct {
	OutputDir     string     // The dataset root; receives images/<split> and labels/<split>.
	Classes       ClassIndex // The class name to id mapping.
	LabelMappings []string   // Optional old=new class name substitutions, applied before lookup.
	Jobs          []Job      // The conversion passes, run in order.
	DatasetYAML   bool       // Write a data.yaml dataset descriptor after all jobs.
}

// The file layout of the personal protective equipment project, relative to its root directory.
const (
	defaultOutputDir = "yolo_dataset"
	defaultTableDir  = "tf_record_files"
	defaultImageDir  = "ppe_dataset"
)

// DefaultJobs returns the train and validation jobs of the project layout below root. The test
// table and images of the source dataset become the validation split.
func DefaultJobs(root string) []Job {
	return []Job{
		{
			Table:    resolvePath(root, filepath.Join(defaultTableDir, "train_labels.csv")),
			ImageDir: resolvePath(root, filepath.Join(defaultImageDir, "train")),
			Split:    Train,
		},
		{
			Table:    resolvePath(root, filepath.Join(defaultTableDir, "test_labels.csv")),
			ImageDir: resolvePath(root, filepath.Join(defaultImageDir, "test")),
			Split:    Val,
		},
	}
}

// DefaultConfig returns the configuration for the project layout below root.
func DefaultConfig(root string) Config {
	return Config{
		OutputDir: resolvePath(root, defaultOutputDir),
		Classes:   DefaultClassIndex(),
		Jobs:      DefaultJobs(root),
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return fmt.Errorf("missing output directory")
	}
	if err := c.Classes.Validate(); err != nil {
		return err
	}
	if _, err := parseLabelMappings(c.LabelMappings); err != nil {
		return err
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("no conversion jobs")
	}
	for i, j := range c.Jobs {
		if j.Table == "" || j.ImageDir == "" {
			return fmt.Errorf("job %d: missing table or image directory", i+1)
		}
		if err := j.Split.Validate(); err != nil {
			return fmt.Errorf("job %d: %v", i+1, err)
		}
	}
	return nil
}

// Splits returns the distinct splits of all jobs, in job order.
func (c Config) Splits() []Split {
	var splits []Split
	seen := make(map[Split]bool, len(c.Jobs))
	for _, j := range c.Jobs {
		if !seen[j.Split] {
			seen[j.Split] = true
			splits = append(splits, j.Split)
		}
	}
	return splits
}

// fileConfig is the YAML representation of Config.
type fileConfig struct {
	Root        string         `yaml:"root"`
	Output      string         `yaml:"output"`
	Classes     map[string]int `yaml:"classes"`
	LabelMap    string         `yaml:"label_map"`
	MapLabels   []string       `yaml:"map_labels"`
	DatasetYAML bool           `yaml:"dataset_yaml"`
	Jobs        []struct {
		Table  string `yaml:"table"`
		Images string `yaml:"images"`
		Split  string `yaml:"split"`
	} `yaml:"jobs"`
}

// LoadConfig reads a YAML configuration file.
//
// Relative paths are resolved against the "root" key when it is set. Missing keys fall back to
// DefaultConfig for that root. The classes may be given inline or as a TensorFlow label map,
// but not both.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read the configuration")
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && err != io.EOF {
		return Config{}, errors.Wrapf(err, "failed to parse the configuration %q", path)
	}

	cfg := DefaultConfig(fc.Root)
	if fc.Output != "" {
		cfg.OutputDir = resolvePath(fc.Root, fc.Output)
	}
	cfg.LabelMappings = fc.MapLabels
	cfg.DatasetYAML = fc.DatasetYAML

	switch {
	case len(fc.Classes) > 0 && fc.LabelMap != "":
		return Config{}, fmt.Errorf("%q: classes and label_map are mutually exclusive", path)
	case len(fc.Classes) > 0:
		cfg.Classes = ClassIndex(fc.Classes)
	case fc.LabelMap != "":
		if cfg.Classes, err = LoadLabelMap(resolvePath(fc.Root, fc.LabelMap)); err != nil {
			return Config{}, err
		}
	}

	if len(fc.Jobs) > 0 {
		cfg.Jobs = make([]Job, len(fc.Jobs))
		for i, j := range fc.Jobs {
			cfg.Jobs[i] = Job{
				Table:    resolvePath(fc.Root, j.Table),
				ImageDir: resolvePath(fc.Root, j.Images),
				Split:    Split(j.Split),
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "invalid configuration %q", path)
	}
	return cfg, nil
}
