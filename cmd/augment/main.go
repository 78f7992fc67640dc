// Command augment rolls randomized effect chains and applies them to audio
// files or whole labelled datasets.
//
// Usage:
//
//	augment roll [--seed N]
//	augment catalog
//	augment config
//	augment tracks --in DIR --out DIR [--seed N]
//	augment dataset --train train.csv [--test test.csv] --out DIR
//
// Every command accepts --config with a YAML run configuration.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	logLevel   string
	seed       uint64

	tracksIn  string
	tracksOut string

	trainTable string
	testTable  string
	datasetOut string
	workers    int
	failFast   bool
)

var logger = logrus.New()

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "augment",
	Short: "Randomized audio augmentation with seeded effect chains",
	Long: `augment rolls a chain of audio effects from per-effect inclusion
probabilities and parameter ranges, and applies it to audio.

Each effect candidate is included with its probability; included effects
get parameters sampled from their ranges. When nothing is included a fixed
fallback chain is used, so every output is processed.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogger,
}

var rollCmd = &cobra.Command{
	Use:   "roll",
	Short: "Roll one effect chain and print it",
	Long: `Roll every candidate of the configuration once and print the
outcome of each roll and the resulting chain.

Examples:
  augment roll --seed 42
  augment roll --config run.yaml`,
	Args: cobra.NoArgs,
	RunE: runRoll,
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the effect kinds and their parameter ranges",
	Args:  cobra.NoArgs,
	RunE:  runCatalog,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration that commands run with: the defaults, or
the file given with --config applied over them. The effects section lists
the full parameter table.

Example:
  augment config > run.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Apply one rolled chain to every audio file in a directory",
	Long: `Roll a single effect chain and apply it to every WAV and MP3 file
in the input directory. Results are written as <name>_processed.wav.

Examples:
  augment tracks --in ./dev_tracks --out ./dev_tracks_aug
  augment tracks --in ./dev_tracks --out ./aug --seed 7`,
	Args: cobra.NoArgs,
	RunE: runTracks,
}

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build an augmented mel spectrogram dataset",
	Long: `Read path,label tables and write spectrograms.npy, labels.csv and
manifest.csv. Every training item yields its original and one augmented
spectrogram; test items yield the original only. Item i of the run is
augmented with seed base+i.

Examples:
  augment dataset --train train.csv --test test.csv --out ./features
  augment dataset --train train.csv --out ./features --workers 8 --fail-fast`,
	Args: cobra.NoArgs,
	RunE: runDataset,
}

func init() {
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	logger.SetOutput(os.Stderr)

	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(tracksCmd)
	rootCmd.AddCommand(datasetCmd)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML run configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	for _, cmd := range []*cobra.Command{rollCmd, tracksCmd, datasetCmd} {
		cmd.Flags().Uint64VarP(&seed, "seed", "s", 0, "Base seed (overrides the configuration)")
	}

	tracksCmd.Flags().StringVarP(&tracksIn, "in", "i", "", "Directory with input audio files")
	tracksCmd.Flags().StringVarP(&tracksOut, "out", "o", "", "Output directory")
	tracksCmd.MarkFlagRequired("in")
	tracksCmd.MarkFlagRequired("out")

	datasetCmd.Flags().StringVar(&trainTable, "train", "", "CSV table of training items (path,label)")
	datasetCmd.Flags().StringVar(&testTable, "test", "", "CSV table of test items (path,label)")
	datasetCmd.Flags().StringVarP(&datasetOut, "out", "o", "", "Output directory")
	datasetCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent items (overrides the configuration, 0 = all CPUs)")
	datasetCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop at the first failed item")
	datasetCmd.MarkFlagRequired("train")
	datasetCmd.MarkFlagRequired("out")
}

func setupLogger(cmd *cobra.Command, args []string) error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	logger.SetLevel(level)

	return nil
}
