package csv2yolo

// The dataset descriptor read by YOLO training tools.

import (
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DatasetYAMLFile is the file name of the dataset descriptor in the output directory.
const DatasetYAMLFile = "data.yaml"

// DatasetYAML returns the dataset descriptor for the output directory: the absolute dataset path,
// the image directory of each split, the number of classes and the class names by id.
func DatasetYAML(outputDir string, classes ClassIndex, splits []Split) ([]byte, error) {
	path, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, err
	}

	names := make(map[int]string, len(classes))
	for id, name := range classes.Names() {
		if name != "" {
			names[id] = name
		}
	}

	// A mapping node keeps the keys in insertion order.
	doc := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value interface{}) error {
		var k, v yaml.Node
		if err := k.Encode(key); err != nil {
			return err
		}
		if err := v.Encode(value); err != nil {
			return err
		}
		doc.Content = append(doc.Content, &k, &v)
		return nil
	}

	if err := add("path", path); err != nil {
		return nil, err
	}
	for _, s := range splits {
		if err := add(string(s), filepath.ToSlash(filepath.Join("images", string(s)))); err != nil {
			return nil, err
		}
	}
	if err := add("nc", len(classes.Names())); err != nil {
		return nil, err
	}
	if err := add("names", names); err != nil {
		return nil, err
	}

	return yaml.Marshal(doc)
}

// WriteDatasetYAML writes the dataset descriptor to DatasetYAMLFile in the output directory,
// replacing any existing file.
func WriteDatasetYAML(store FileStore, outputDir string, classes ClassIndex, splits []Split) error {
	data, err := DatasetYAML(outputDir, classes, splits)
	if err != nil {
		return err
	}

	path := filepath.Join(outputDir, DatasetYAMLFile)
	if err := store.WriteFile(path, data); err != nil {
		return &DestinationWriteError{Op: "write", Path: path, Err: err}
	}
	return nil
}
