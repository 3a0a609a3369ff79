package csv2yolo

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"

	"github.com/sensorable/csv2yolo/protos"
)

// ClassIndex maps class names to the integer class ids of the label format. Several names may
// share an id.
type ClassIndex map[string]int

// DefaultClassIndex returns the class index of the personal protective equipment dataset.
func DefaultClassIndex() ClassIndex {
	return ClassIndex{
		"Mask":        0,
		"Face Shield": 1,
		"Full Cover":  2,
		"Gloves":      3,
		"Goggles":     4,
	}
}

// Lookup returns the id for the class name. The name must match exactly.
func (c ClassIndex) Lookup(name string) (int, bool) {
	id, ok := c[name]
	return id, ok
}

// Validate checks that the index is not empty and that all ids are non-negative.
func (c ClassIndex) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("the class index is empty")
	}
	for name, id := range c {
		if id < 0 {
			return fmt.Errorf("negative id %d for class %q", id, name)
		}
	}
	return nil
}

// Names returns the class name for each id from zero to the largest id. If several names share
// an id, the lexicographically smallest one is used. Ids without a name yield an empty string.
func (c ClassIndex) Names() []string {
	maxID := -1
	for _, id := range c {
		if id > maxID {
			maxID = id
		}
	}

	names := make([]string, maxID+1)
	for name, id := range c {
		if id < 0 {
			continue
		}
		if names[id] == "" || name < names[id] {
			names[id] = name
		}
	}
	return names
}

// String formats the index as a comma-separated list of name=id pairs, ordered by id and name.
// ParseClassIndex accepts the result.
func (c ClassIndex) String() string {
	type entry struct {
		name string
		id   int
	}
	entries := make([]entry, 0, len(c))
	for name, id := range c {
		entries = append(entries, entry{name, id})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].id != entries[j].id {
			return entries[i].id < entries[j].id
		}
		return entries[i].name < entries[j].name
	})

	pairs := make([]string, len(entries))
	for i, e := range entries {
		pairs[i] = e.name + "=" + strconv.Itoa(e.id)
	}
	return strings.Join(pairs, ",")
}

// ParseClassIndex parses a comma-separated list of name=id pairs, e.g. "Mask=0,Face Shield=1".
func ParseClassIndex(s string) (ClassIndex, error) {
	pairs := splitList(s)
	if len(pairs) == 0 {
		return nil, fmt.Errorf("empty class index")
	}

	index := make(ClassIndex, len(pairs))
	for _, p := range pairs {
		i := strings.LastIndex(p, "=")
		if i <= 0 {
			return nil, fmt.Errorf("invalid class mapping: %q", p)
		}
		name := strings.TrimSpace(p[:i])
		id, err := strconv.Atoi(strings.TrimSpace(p[i+1:]))
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid class id in %q", p)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate class name %q", name)
		}
		index[name] = id
	}

	return index, nil
}

// LoadLabelMap loads a TensorFlow Object Detection label map in prototxt format from path.
//
// Label map ids start at 1, with 0 reserved for the background, whereas the label format counts
// from 0. Each item therefore maps to its id minus one.
func LoadLabelMap(path string) (ClassIndex, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read the label map")
	}

	var labelMap protos.StringIntLabelMap
	if err := proto.UnmarshalText(string(text), &labelMap); err != nil {
		return nil, errors.Wrapf(err, "failed to parse the label map %q", path)
	}

	index := make(ClassIndex, len(labelMap.Item))
	for _, item := range labelMap.GetItem() {
		k, v := item.GetName(), item.GetId()
		if k == "" || v <= 0 {
			return nil, fmt.Errorf("invalid label map entry in %q: %s: %d", path, k, v)
		}
		index[k] = int(v) - 1
	}
	if len(index) == 0 {
		return nil, fmt.Errorf("the label map %q has no entries", path)
	}

	return index, nil
}
