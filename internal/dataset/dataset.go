// Package dataset turns labelled audio tables into a mel spectrogram
// training set, augmenting every training item with its own seeded effect
// chain.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-augment/augment"
	"github.com/cwbudde/algo-augment/dsp/core"
	"github.com/cwbudde/algo-augment/dsp/resample"
	"github.com/cwbudde/algo-augment/features"
	"github.com/cwbudde/algo-augment/internal/audiofile"
)

// Output file names inside the run directory.
const (
	SpectrogramsFile = "spectrograms.npy"
	LabelsFile       = "labels.csv"
	ManifestFile     = "manifest.csv"
)

// ErrNoItems is returned by Run for an empty item list.
var ErrNoItems = errors.New("dataset: no items")

// Loader decodes the audio file at path.
type Loader func(path string) (augment.Waveform, error)

// ItemError records the failure of one item.
type ItemError struct {
	Index int
	Path  string
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("dataset: item %d (%s): %v", e.Index, e.Path, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// Summary describes a finished run.
type Summary struct {
	RunID  string
	Items  int
	Rows   int
	NMels  int
	Frames int
	// Failed lists the items whose rows were written as zeros.
	Failed []*ItemError
}

// Option configures a Builder.
type Option func(*Builder)

// WithWorkers sets the number of items processed concurrently.
// Non-positive values select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}

		b.workers = n
	}
}

// WithSeed sets the base seed; item i is augmented with SeedFor(seed, i).
func WithSeed(seed uint64) Option {
	return func(b *Builder) {
		b.seed = seed
	}
}

// WithLogger sets the logger that receives per-item and per-run events.
func WithLogger(l logrus.FieldLogger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithFailFast stops the run at the first failed item instead of writing
// zero rows for it.
func WithFailFast(failFast bool) Option {
	return func(b *Builder) {
		b.failFast = failFast
	}
}

// WithLoader replaces audiofile.Read as the audio decoder.
func WithLoader(load Loader) Option {
	return func(b *Builder) {
		if load != nil {
			b.load = load
		}
	}
}

// WithResampleQuality sets the quality of the conversion to the target
// sample rate.
func WithResampleQuality(q resample.Quality) Option {
	return func(b *Builder) {
		b.quality = q
	}
}

// Builder runs dataset preparation for one configuration.
type Builder struct {
	aug     *augment.Augmenter
	mel     features.MelConfig
	snippet int

	workers  int
	seed     uint64
	failFast bool
	logger   logrus.FieldLogger
	load     Loader
	quality  resample.Quality
}

// New returns a Builder that fits every item to snippetSamples samples at
// mel.SampleRate, augments training items with aug and analyses both
// signals with mel.
func New(aug *augment.Augmenter, mel features.MelConfig, snippetSamples int, opts ...Option) (*Builder, error) {
	if aug == nil {
		return nil, errors.New("dataset: nil augmenter")
	}

	if snippetSamples <= 0 {
		return nil, fmt.Errorf("dataset: snippet length must be positive: %d", snippetSamples)
	}

	err := mel.Validate()
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	b := &Builder{
		aug:     aug,
		mel:     mel,
		snippet: snippetSamples,
		workers: runtime.GOMAXPROCS(0),
		logger:  discard,
		load:    audiofile.Read,
		quality: resample.QualityBalanced,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b, nil
}

// Frames returns the frame count of every spectrogram of a run.
func (b *Builder) Frames() int {
	return features.FrameCount(b.snippet, b.mel.Hop)
}

type result struct {
	index int
	seed  uint64
	chain string
	specs []features.Spectrogram
	err   error
}

// Run processes items on the worker pool and writes spectrograms.npy,
// labels.csv and manifest.csv to outDir. Rows are written in item order:
// a training item yields its original and then its augmented spectrogram,
// a test item only the original.
//
// A failed item is logged, recorded in the manifest and Summary.Failed, and
// its rows are zero; with WithFailFast the run stops with its error instead.
func (b *Builder) Run(ctx context.Context, items []Item, outDir string) (Summary, error) {
	if len(items) == 0 {
		return Summary{}, ErrNoItems
	}

	err := ctx.Err()
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		RunID:  uuid.New().String(),
		Items:  len(items),
		NMels:  b.mel.NMels,
		Frames: b.Frames(),
	}

	for _, it := range items {
		sum.Rows += it.Split.RowsPerItem()
	}

	out, err := createOutputs(outDir, sum)
	if err != nil {
		return sum, err
	}
	defer out.close()

	log := b.logger.WithField("run_id", sum.RunID)
	log.WithFields(logrus.Fields{
		"items":   sum.Items,
		"rows":    sum.Rows,
		"workers": b.workers,
		"seed":    b.seed,
	}).Info("dataset run started")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan result, b.workers)

	var wg sync.WaitGroup

	for range b.workers {
		wg.Add(1)

		go func() {
			defer wg.Done()
			b.work(ctx, items, jobs, results)
		}()
	}

	go func() {
		defer close(jobs)

		for i := range items {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var (
		runErr  error
		next    int
		pending = make(map[int]result, b.workers)
	)

	for r := range results {
		if runErr != nil {
			continue
		}

		pending[r.index] = r

		for runErr == nil {
			p, ok := pending[next]
			if !ok {
				break
			}

			delete(pending, next)

			runErr = b.emit(log, out, items[next], p, &sum)
			if runErr != nil {
				cancel()
			}

			next++
		}
	}

	if runErr == nil && next < len(items) {
		runErr = ctx.Err()
	}

	if runErr != nil {
		log.WithError(runErr).Error("dataset run aborted")
		return sum, runErr
	}

	err = out.finish()
	if err != nil {
		return sum, err
	}

	log.WithFields(logrus.Fields{
		"rows":   sum.Rows,
		"failed": len(sum.Failed),
	}).Info("dataset run finished")

	return sum, nil
}

func (b *Builder) work(ctx context.Context, items []Item, jobs <-chan int, results chan<- result) {
	an, err := features.NewAnalyzer(b.mel)

	for i := range jobs {
		r := result{index: i, err: err}
		if err == nil {
			r = b.process(an, i, items[i])
		}

		select {
		case results <- r:
		case <-ctx.Done():
			return
		}
	}
}

func (b *Builder) process(an *features.Analyzer, index int, it Item) result {
	r := result{index: index, seed: augment.SeedFor(b.seed, index)}

	w, err := b.load(it.Path)
	if err != nil {
		r.err = err
		return r
	}

	samples := w.Samples
	if w.SampleRate != b.mel.SampleRate {
		samples, err = resample.Resample(samples, w.SampleRate, b.mel.SampleRate, resample.WithQuality(b.quality))
		if err != nil {
			r.err = err
			return r
		}
	}

	samples = core.FitLength(samples, b.snippet)

	orig, err := an.Compute(samples)
	if err != nil {
		r.err = err
		return r
	}

	r.specs = append(r.specs, orig)

	if it.Split != SplitTrain {
		return r
	}

	processed, chain, err := b.aug.AugmentItem(augment.Waveform{Samples: samples, SampleRate: b.mel.SampleRate}, b.seed, index)
	if chain.Len() > 0 {
		r.chain = chain.String()
	}

	if err != nil {
		r.err = err
		return r
	}

	augmented, err := an.Compute(core.FitLength(processed.Samples, b.snippet))
	if err != nil {
		r.err = err
		return r
	}

	r.specs = append(r.specs, augmented)

	return r
}

func (b *Builder) emit(log logrus.FieldLogger, out *outputs, it Item, r result, sum *Summary) error {
	fields := logrus.Fields{
		"item": r.index,
		"path": it.Path,
		"seed": r.seed,
	}
	if r.chain != "" {
		fields["chain"] = r.chain
	}

	if r.err != nil {
		ie := &ItemError{Index: r.index, Path: it.Path, Err: r.err}
		log.WithFields(fields).WithError(r.err).Warn("item failed")

		if b.failFast {
			return ie
		}

		sum.Failed = append(sum.Failed, ie)
	} else {
		log.WithFields(fields).Debug("item processed")
	}

	return out.write(sum.RunID, it, r)
}
