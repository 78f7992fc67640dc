package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cwbudde/algo-augment/features"
)

// Status values of the manifest.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

var (
	labelsHeader   = []string{"row", "item", "label", "split", "variant"}
	manifestHeader = []string{"run_id", "item", "path", "label", "split", "seed", "chain", "status", "error"}
	variants       = []string{"original", "augmented"}
)

type outputs struct {
	files    []*os.File
	specs    *features.NPYWriter
	labels   *csv.Writer
	manifest *csv.Writer
	zero     []float64
	row      int
}

func createOutputs(dir string, sum Summary) (*outputs, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	out := &outputs{zero: make([]float64, sum.NMels*sum.Frames)}

	create := func(name string) (*os.File, error) {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}

		out.files = append(out.files, f)

		return f, nil
	}

	specs, err := create(SpectrogramsFile)
	if err != nil {
		out.close()
		return nil, err
	}

	out.specs, err = features.NewNPYWriter(specs, sum.Rows, sum.NMels, sum.Frames)
	if err != nil {
		out.close()
		return nil, fmt.Errorf("dataset: %w", err)
	}

	labels, err := create(LabelsFile)
	if err != nil {
		out.close()
		return nil, err
	}

	manifest, err := create(ManifestFile)
	if err != nil {
		out.close()
		return nil, err
	}

	out.labels = csv.NewWriter(labels)
	out.manifest = csv.NewWriter(manifest)

	err = errors.Join(out.labels.Write(labelsHeader), out.manifest.Write(manifestHeader))
	if err != nil {
		out.close()
		return nil, fmt.Errorf("dataset: %w", err)
	}

	return out, nil
}

// write appends the rows, labels and manifest entry of one item.
func (o *outputs) write(runID string, it Item, r result) error {
	rows := it.Split.RowsPerItem()

	for j := range rows {
		var err error
		if r.err == nil {
			err = o.specs.WriteSpectrogram(r.specs[j])
		} else {
			err = o.specs.WriteRow(o.zero)
		}

		if err != nil {
			return fmt.Errorf("dataset: item %d: %w", r.index, err)
		}

		err = o.labels.Write([]string{
			strconv.Itoa(o.row),
			strconv.Itoa(r.index),
			it.Label,
			string(it.Split),
			variants[j],
		})
		if err != nil {
			return fmt.Errorf("dataset: %w", err)
		}

		o.row++
	}

	status, msg, seed := StatusOK, "", ""
	if r.err != nil {
		status, msg = StatusFailed, r.err.Error()
	}

	if it.Split == SplitTrain {
		seed = strconv.FormatUint(r.seed, 10)
	}

	err := o.manifest.Write([]string{
		runID,
		strconv.Itoa(r.index),
		it.Path,
		it.Label,
		string(it.Split),
		seed,
		r.chain,
		status,
		msg,
	})
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	return nil
}

// finish flushes every output and checks that all rows were written.
func (o *outputs) finish() error {
	o.labels.Flush()
	o.manifest.Flush()

	err := errors.Join(o.specs.Close(), o.labels.Error(), o.manifest.Error())
	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	for _, f := range o.files {
		err = errors.Join(err, f.Sync())
	}

	if err != nil {
		return fmt.Errorf("dataset: %w", err)
	}

	return nil
}

func (o *outputs) close() {
	for _, f := range o.files {
		_ = f.Close()
	}

	o.files = nil
}
