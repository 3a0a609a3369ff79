package csv2yolo

import (
	"fmt"
	"path/filepath"

	"github.com/pkg/errors"
)

// Stats counts the outcome of a conversion.
type Stats struct {
	Rows           int // Table rows read.
	Images         int // Image groups converted, i.e. label files written.
	Boxes          int // Label lines written.
	ImagesCopied   int // Images copied to the output directory.
	ImagesExisting int // Images already present in the output directory, left untouched.
	MissingImages  int // Image groups skipped because the source image does not exist.
	UnknownClasses int // Boxes skipped because of a class name missing from the class index.
}

func (s *Stats) add(o Stats) {
	s.Rows += o.Rows
	s.Images += o.Images
	s.Boxes += o.Boxes
	s.ImagesCopied += o.ImagesCopied
	s.ImagesExisting += o.ImagesExisting
	s.MissingImages += o.MissingImages
	s.UnknownClasses += o.UnknownClasses
}

// Converter converts annotation tables into YOLO labels and copies the annotated images into the
// split directories of the output directory.
//
// A Converter must not be used concurrently, nor may several converters share an output
// directory at the same time.
type Converter struct {
	outputDir string
	classes   ClassIndex
	mappings  []string
	store     FileStore
	observer  Observer
}

// NewConverter creates a Converter for the output directory and classes of cfg. The jobs of cfg
// are not used, see Run.
//
// A nil store defaults to OSStore and a nil observer to a LogObserver for the standard logger.
func NewConverter(cfg Config, store FileStore, observer Observer) (*Converter, error) {
	if cfg.OutputDir == "" {
		return nil, fmt.Errorf("missing output directory")
	}
	if err := cfg.Classes.Validate(); err != nil {
		return nil, err
	}
	if _, err := parseLabelMappings(cfg.LabelMappings); err != nil {
		return nil, err
	}
	if store == nil {
		store = OSStore{}
	}
	if observer == nil {
		observer = LogObserver{}
	}

	return &Converter{
		outputDir: cfg.OutputDir,
		classes:   cfg.Classes,
		mappings:  cfg.LabelMappings,
		store:     store,
		observer:  observer,
	}, nil
}

// Prepare creates the image and label directories for all splits.
func (c *Converter) Prepare(splits ...Split) error {
	for _, s := range splits {
		if err := s.Validate(); err != nil {
			return err
		}
		for _, dir := range []string{imagesDir(c.outputDir, s), labelsDir(c.outputDir, s)} {
			if err := c.store.MkdirAll(dir); err != nil {
				return &DestinationWriteError{Op: "mkdir", Path: dir, Err: err}
			}
		}
	}
	return nil
}

// Convert converts the rows of group into a LabelRecord. Rows with a class name that is not in
// the class index are skipped, with an UnknownClassWarning for each.
func (c *Converter) Convert(group ImageGroup, split Split) LabelRecord {
	record := LabelRecord{
		Filename: group.Filename,
		Boxes:    make([]NormalizedBox, 0, len(group.Rows)),
	}

	for _, r := range group.Rows {
		id, ok := c.classes.Lookup(r.Class)
		if !ok {
			c.observer.Observe(Diagnostic{
				Kind:     UnknownClassWarning,
				Split:    split,
				Filename: group.Filename,
				Class:    r.Class,
			})
			continue
		}
		record.Boxes = append(record.Boxes, Normalize(r, group.Width, group.Height, id))
	}

	return record
}

// ConvertRows converts rows into split, with the annotated images read from imageDir.
//
// Groups whose image does not exist in imageDir, or whose file name is absolute or escapes
// imageDir, are skipped with a MissingImageWarning. For all other groups the image is copied
// unless it already exists in the output directory, and the label file is written, replacing any
// previous one.
//
// The label mappings of the Converter are applied to a copy of rows. The split directories must
// exist, see Prepare.
func (c *Converter) ConvertRows(rows []AnnotationRow, imageDir string, split Split) (Stats, error) {
	stats := Stats{Rows: len(rows)}
	if err := split.Validate(); err != nil {
		return stats, err
	}

	if len(c.mappings) > 0 {
		rows = append([]AnnotationRow(nil), rows...)
		count, err := MapLabels(rows, c.mappings)
		if err != nil {
			return stats, err
		}
		c.observer.Observe(Diagnostic{Kind: LabelsMapped, Split: split, Rows: count})
	}

	for _, g := range GroupRows(rows) {
		// Names that leave the image directory are treated as missing, so that nothing is
		// written outside the split directories.
		src := filepath.Join(imageDir, g.Filename)
		found := isLocalName(g.Filename)
		if found {
			var err error
			if found, err = c.store.Exists(src); err != nil {
				return stats, errors.Wrapf(err, "cannot access image %q", src)
			}
		}
		if !found {
			stats.MissingImages++
			c.observer.Observe(Diagnostic{
				Kind:     MissingImageWarning,
				Split:    split,
				Path:     imageDir,
				Filename: g.Filename,
			})
			continue
		}

		copied, err := c.copyImage(src, filepath.Join(imagesDir(c.outputDir, split), g.Filename))
		if err != nil {
			return stats, err
		}
		if copied {
			stats.ImagesCopied++
		} else {
			stats.ImagesExisting++
		}

		record := c.Convert(g, split)
		labelPath := filepath.Join(labelsDir(c.outputDir, split), LabelFileName(g.Filename))
		if err := c.store.WriteFile(labelPath, record.Bytes()); err != nil {
			return stats, &DestinationWriteError{Op: "write", Path: labelPath, Err: err}
		}

		stats.Images++
		stats.Boxes += len(record.Boxes)
		stats.UnknownClasses += len(g.Rows) - len(record.Boxes)
	}

	return stats, nil
}

// copyImage copies src to dst unless dst exists. It reports whether the image was copied.
func (c *Converter) copyImage(src, dst string) (bool, error) {
	exists, err := c.store.Exists(dst)
	if err != nil {
		return false, &DestinationWriteError{Op: "copy", Path: dst, Err: err}
	}
	if exists {
		return false, nil
	}
	if err := c.store.CopyFile(dst, src); err != nil {
		return false, &DestinationWriteError{Op: "copy", Path: dst, Err: err}
	}
	return true, nil
}

// ConvertTable reads the table of job and converts its rows.
func (c *Converter) ConvertTable(job Job) (Stats, error) {
	rows, err := ReadTable(job.Table)
	if err != nil {
		return Stats{}, err
	}
	c.observer.Observe(Diagnostic{Kind: TableRead, Split: job.Split, Path: job.Table, Rows: len(rows)})

	return c.ConvertRows(rows, job.ImageDir, job.Split)
}

// Run prepares the split directories of all jobs and then runs the jobs in order. It stops at the
// first error.
func (c *Converter) Run(jobs []Job) (Stats, error) {
	var total Stats

	splits := Config{Jobs: jobs}.Splits()
	if err := c.Prepare(splits...); err != nil {
		return total, err
	}

	for _, job := range jobs {
		stats, err := c.ConvertTable(job)
		total.add(stats)
		if err != nil {
			return total, err
		}
	}

	return total, nil
}

// Run converts all jobs of cfg and writes the dataset descriptor if cfg.DatasetYAML is set. See
// NewConverter for the defaults of store and observer.
func Run(cfg Config, store FileStore, observer Observer) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	conv, err := NewConverter(cfg, store, observer)
	if err != nil {
		return Stats{}, err
	}

	stats, err := conv.Run(cfg.Jobs)
	if err != nil {
		return stats, err
	}

	if cfg.DatasetYAML {
		if err := WriteDatasetYAML(conv.store, cfg.OutputDir, cfg.Classes, cfg.Splits()); err != nil {
			return stats, err
		}
	}

	return stats, nil
}
