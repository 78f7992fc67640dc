package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-augment/augment"
	"github.com/cwbudde/algo-augment/dsp/effectchain"
	"github.com/cwbudde/algo-augment/dsp/resample"
	"github.com/cwbudde/algo-augment/internal/audiofile"
	"github.com/cwbudde/algo-augment/internal/config"
	"github.com/cwbudde/algo-augment/internal/dataset"
)

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}

	return config.Load(configPath)
}

// runSeed returns the seed given on the command line, else the configured
// one. ok is false when neither is set.
func runSeed(cmd *cobra.Command, cfg *config.Config) (uint64, bool) {
	if cmd.Flags().Changed("seed") {
		return seed, true
	}

	return cfg.BaseSeed()
}

func newRand(cmd *cobra.Command, cfg *config.Config) augment.Rand {
	if s, ok := runSeed(cmd, cfg); ok {
		return augment.NewRand(s)
	}

	return augment.NewEntropyRand()
}

func newAugmenter(cfg *config.Config) (*augment.Augmenter, *augment.Processor, error) {
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, nil, err
	}

	fallback, err := cfg.FallbackChain()
	if err != nil {
		return nil, nil, err
	}

	proc := augment.NewProcessor(effectchain.NewLibrary(nil), cfg.ProcessorOptions()...)

	aug, err := augment.NewAugmenter(cat, cfg.EffectConfig(), fallback, proc)
	if err != nil {
		return nil, nil, err
	}

	return aug, proc, nil
}

func runRoll(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	fallback, err := cfg.FallbackChain()
	if err != nil {
		return err
	}

	return printRoll(cmd.OutOrStdout(), cat, cfg.EffectConfig(), fallback, newRand(cmd, cfg))
}

// printRoll rolls cfg once and prints every roll and the built chain.
func printRoll(w io.Writer, cat *augment.Catalog, cfg augment.EffectConfig, fallback augment.FallbackChain, rng augment.Rand) error {
	rolled, err := augment.RollConfig(cat, cfg, rng)
	if err != nil {
		return err
	}

	chain, err := augment.Build(rolled, fallback)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tP\tROLL")

	for i, r := range rolled {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", cfg[i].Kind, cfg[i].Probability, r)
	}

	err = tw.Flush()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "\nchain: %s\n", chain)

	return err
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	return printCatalog(cmd.OutOrStdout(), cat)
}

// printCatalog prints one line per parameter of every kind in cat.
func printCatalog(w io.Writer, cat *augment.Catalog) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KIND\tPARAM\tRANGE")

	for _, kind := range cat.Kinds() {
		d, _ := cat.Lookup(kind)
		if len(d.Params) == 0 {
			fmt.Fprintf(tw, "%s\t-\t-\n", kind)
			continue
		}

		for _, p := range d.Params {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", kind, p.Name, p.Range)
		}
	}

	return tw.Flush()
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cat, err := cfg.Catalog()
	if err != nil {
		return err
	}

	cfg.Effects = config.EffectsOf(cat)

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}

func runTracks(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	aug, proc, err := newAugmenter(cfg)
	if err != nil {
		return err
	}

	chain, err := aug.Chain(newRand(cmd, cfg))
	if err != nil {
		return err
	}

	files, err := audiofile.List(tracksIn)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no audio files in %s", tracksIn)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return augmentTracks(ctx, logger, proc, chain, files, tracksOut, cfg.SampleRate)
}

// augmentTracks applies chain to every file at sampleRate and writes
// <stem>_processed.wav files to outDir. A failed file is logged and the
// remaining files are still processed.
func augmentTracks(ctx context.Context, log logrus.FieldLogger, proc *augment.Processor, chain augment.EffectChain, files []string, outDir string, sampleRate int) error {
	err := os.MkdirAll(outDir, 0o755)
	if err != nil {
		return err
	}

	log.WithField("chain", chain.String()).Info("rolled chain")

	var failed int

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		out := filepath.Join(outDir, audiofile.Stem(path)+"_processed.wav")
		fields := logrus.Fields{"path": path, "out": out}

		err := augmentTrack(proc, chain, path, out, sampleRate)
		if err != nil {
			failed++

			log.WithFields(fields).WithError(err).Error("track failed")

			continue
		}

		log.WithFields(fields).Info("track processed")
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tracks failed", failed, len(files))
	}

	return nil
}

func augmentTrack(proc *augment.Processor, chain augment.EffectChain, path, out string, sampleRate int) error {
	w, err := audiofile.Read(path)
	if err != nil {
		return err
	}

	if w.SampleRate != sampleRate {
		w.Samples, err = resample.Resample(w.Samples, w.SampleRate, sampleRate)
		if err != nil {
			return err
		}

		w.SampleRate = sampleRate
	}

	processed, err := proc.Process(w, chain)
	if err != nil {
		return err
	}

	return audiofile.WriteWAV(out, processed)
}

func runDataset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("workers") {
		cfg.Workers = workers
	}

	base, ok := runSeed(cmd, cfg)
	if !ok {
		base = config.DefaultSeed
	}

	items, err := dataset.ReadTable(trainTable, dataset.SplitTrain)
	if err != nil {
		return err
	}

	if testTable != "" {
		test, err := dataset.ReadTable(testTable, dataset.SplitTest)
		if err != nil {
			return err
		}

		items = append(items, test...)
	}

	aug, _, err := newAugmenter(cfg)
	if err != nil {
		return err
	}

	b, err := dataset.New(aug, cfg.MelConfig(), cfg.SnippetSamples(),
		dataset.WithSeed(base),
		dataset.WithWorkers(cfg.Workers),
		dataset.WithLogger(logger),
		dataset.WithFailFast(failFast),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sum, err := b.Run(ctx, items, datasetOut)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d items, %d rows of %dx%d, %d failed\n",
		sum.RunID, sum.Items, sum.Rows, sum.NMels, sum.Frames, len(sum.Failed))

	if len(sum.Failed) > 0 {
		errs := make([]error, len(sum.Failed))
		for i, f := range sum.Failed {
			errs[i] = f
		}

		logger.WithError(errors.Join(errs...)).Warn("some items were written as zero rows")
	}

	return nil
}
