// Converts CSV bounding box annotations, one row per object, to YOLO labels and arranges the
// annotated images into split directories.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sensorable/csv2yolo"
)

// options holds the command line arguments.
type options struct {
	configPath  string // The YAML configuration file.
	root        string // The project root for the default layout and relative config paths.
	outDir      string // The output dataset directory.
	tables      string // Comma-separated CSV tables.
	images      string // Comma-separated image directories, one per table.
	splits      string // Comma-separated splits, one per table.
	classes     string // Comma-separated name=id class mappings.
	labelMap    string // A TensorFlow label map file to read the classes from.
	mapLabels   string // Comma-separated old=new class name substitutions.
	datasetYAML bool   // Write data.yaml.
}

// newFlagSet registers the command line flags in a new flag set that writes usage to output.
func newFlagSet(name string, output io.Writer) (*flag.FlagSet, *options) {
	opts := &options{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(output, "Usage of %s:\n", name)
		_, _ = fmt.Fprintln(output, "  default layout:\t-root <dir>")
		_, _ = fmt.Fprintln(output, "  explicit jobs:\t-tables <file[,...]> -images <dir[,...]> -splits <split[,...]>"+
				" -out <dir>")
		_, _ = fmt.Fprintln(output, "  config file:\t\t-config <file>")
		_, _ = fmt.Fprintln(output)
		fs.PrintDefaults()
	}

	fs.StringVar(&opts.configPath, "config", "",
		"The YAML configuration `file` (other flags are ignored except -dataset-yaml)")
	fs.StringVar(&opts.root, "root", ".",
		"The project root `path` with tf_record_files/ and ppe_dataset/ (used when -tables is empty)")
	fs.StringVar(&opts.outDir, "out", "",
		"The output dataset `path` (default <root>/yolo_dataset)")
	fs.StringVar(&opts.tables, "tables", "",
		"The comma-separated CSV annotation tables (`path[,...]`)")
	fs.StringVar(&opts.images, "images", "",
		"The comma-separated image directories (`path[,...]`), one per table")
	fs.StringVar(&opts.splits, "splits", "train,val",
		"The comma-separated output splits (`split[,...]`), one per table")
	fs.StringVar(&opts.classes, "classes", csv2yolo.DefaultClassIndex().String(),
		"The comma-separated class ids (`name=id[,...]`)")
	fs.StringVar(&opts.labelMap, "label-map", "",
		"A TensorFlow label map `file` to read the classes from (ids are shifted down by one)")
	fs.StringVar(&opts.mapLabels, "map-labels", "",
		"Comma-separated list of old=new class name (sub-)string replacements")
	fs.BoolVar(&opts.datasetYAML, "dataset-yaml", false,
		"Write "+csv2yolo.DatasetYAMLFile+" to the output directory")

	return fs, opts
}

// parseArgs parses and validates the command line arguments into a configuration.
func parseArgs(name string, args []string, output io.Writer) (csv2yolo.Config, error) {
	fs, opts := newFlagSet(name, output)
	if err := fs.Parse(args); err != nil {
		return csv2yolo.Config{}, err
	}
	if fs.NArg() > 0 {
		return csv2yolo.Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if opts.configPath != "" {
		cfg, err := csv2yolo.LoadConfig(opts.configPath)
		if err != nil {
			return csv2yolo.Config{}, err
		}
		cfg.DatasetYAML = cfg.DatasetYAML || opts.datasetYAML
		return cfg, nil
	}

	cfg := csv2yolo.DefaultConfig(filepath.Clean(opts.root))
	if opts.outDir != "" {
		cfg.OutputDir = filepath.Clean(opts.outDir)
	}
	cfg.LabelMappings = splitNonEmpty(opts.mapLabels)
	cfg.DatasetYAML = opts.datasetYAML

	// Classes.
	var err error
	if opts.labelMap != "" {
		cfg.Classes, err = csv2yolo.LoadLabelMap(filepath.Clean(opts.labelMap))
	} else {
		cfg.Classes, err = csv2yolo.ParseClassIndex(opts.classes)
	}
	if err != nil {
		return csv2yolo.Config{}, err
	}

	// Jobs. The default layout is used without explicit tables.
	if opts.tables != "" {
		tables := splitNonEmpty(opts.tables)
		images := splitNonEmpty(opts.images)
		splits := splitNonEmpty(opts.splits)
		if len(images) != len(tables) || len(splits) != len(tables) {
			return csv2yolo.Config{}, fmt.Errorf("the number of values in -tables, -images and" +
					" -splits must match")
		}

		cfg.Jobs = make([]csv2yolo.Job, len(tables))
		for i := range tables {
			cfg.Jobs[i] = csv2yolo.Job{
				Table:    filepath.Clean(tables[i]),
				ImageDir: filepath.Clean(images[i]),
				Split:    csv2yolo.Split(splits[i]),
			}
		}
	}

	// Images are never copied onto themselves.
	for _, j := range cfg.Jobs {
		if j.ImageDir == filepath.Join(cfg.OutputDir, "images", string(j.Split)) {
			return csv2yolo.Config{}, fmt.Errorf("the image input and output paths cannot be identical")
		}
	}

	return cfg, cfg.Validate()
}

// splitNonEmpty splits a comma-separated list and drops blank values.
func splitNonEmpty(s string) []string {
	var values []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func main() {
	name := filepath.Base(os.Args[0])
	cfg, err := parseArgs(name, os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(0)
	} else if err != nil {
		log.Fatal("Invalid arguments: ", err)
	}

	stats, err := csv2yolo.Run(cfg, csv2yolo.OSStore{}, csv2yolo.LogObserver{})
	if err != nil {
		log.Fatal("Conversion failed: ", err)
	}

	log.Printf("Wrote labels for %d images (%d boxes) to %s", stats.Images, stats.Boxes,
		cfg.OutputDir)
	log.Printf("Copied %d images, %d already present", stats.ImagesCopied, stats.ImagesExisting)
	if stats.MissingImages > 0 || stats.UnknownClasses > 0 {
		log.Printf("Skipped %d images without a source file and %d boxes with an unknown class",
			stats.MissingImages, stats.UnknownClasses)
	}
	log.Print("Total number of rows: ", stats.Rows)
}
