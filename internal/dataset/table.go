package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidTable is returned for a table without path and label columns
// or with an empty path.
var ErrInvalidTable = errors.New("dataset: invalid table")

// Split tells whether an item is augmented.
type Split string

const (
	// SplitTrain items yield the original and one augmented spectrogram.
	SplitTrain Split = "train"
	// SplitTest items yield the original spectrogram only.
	SplitTest Split = "test"
)

// RowsPerItem returns the number of spectrogram rows an item of s yields.
func (s Split) RowsPerItem() int {
	if s == SplitTrain {
		return 2
	}

	return 1
}

// Item is one labelled audio file.
type Item struct {
	Path  string
	Label string
	Split Split
}

// ReadTable reads a CSV table with a header naming at least the path and
// label columns. Relative paths are resolved against the table's directory.
func ReadTable(path string, split Split) ([]Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	items, err := ParseTable(f, filepath.Dir(path), split)
	if err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}

	return items, nil
}

// ParseTable reads a path,label table from r. Relative paths are joined to
// baseDir when it is not empty.
func ParseTable(r io.Reader, baseDir string, split Split) ([]Item, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", ErrInvalidTable)
		}

		return nil, err
	}

	pathCol, labelCol := -1, -1

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "path":
			pathCol = i
		case "label":
			labelCol = i
		}
	}

	if pathCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("%w: header %v needs path and label columns", ErrInvalidTable, header)
	}

	var items []Item

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		p := strings.TrimSpace(rec[pathCol])
		if p == "" {
			return nil, fmt.Errorf("%w: line %d: empty path", ErrInvalidTable, line)
		}

		if baseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}

		items = append(items, Item{Path: p, Label: strings.TrimSpace(rec[labelCol]), Split: split})
	}

	return items, nil
}
