// Package config loads the YAML run configuration shared by the augment
// commands and converts it into the types of the augment, features and
// dataset packages.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-augment/augment"
	"github.com/cwbudde/algo-augment/features"
)

// DefaultSeed is the base seed of dataset runs when the file sets none.
const DefaultSeed uint64 = 42

// ErrInvalidConfig is returned by Validate and Load for unusable values.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the top-level run configuration.
type Config struct {
	// Seed is the base seed. Nil means dataset runs use DefaultSeed and
	// single runs draw from process entropy.
	Seed           *uint64           `yaml:"seed,omitempty"`
	SampleRate     int               `yaml:"sample_rate"`
	SnippetSeconds float64           `yaml:"snippet_seconds"`
	Peak           float64           `yaml:"peak"`
	Workers        int               `yaml:"workers"`
	Candidates     []CandidateConfig `yaml:"candidates"`
	Fallback       []EffectConfig    `yaml:"fallback"`
	Effects        Effects           `yaml:"effects,omitempty"`
	Spectrogram    SpectrogramConfig `yaml:"spectrogram"`
}

// CandidateConfig is one rolled effect kind.
type CandidateConfig struct {
	Kind        string  `yaml:"kind"`
	Probability float64 `yaml:"probability"`
}

// EffectConfig is one fully parameterized effect, used for the fallback
// chain. Params keep their file order.
type EffectConfig struct {
	Kind   string        `yaml:"kind"`
	Params yaml.MapSlice `yaml:"params,omitempty"`
}

// SpectrogramConfig sets the mel analysis of dataset runs.
type SpectrogramConfig struct {
	NFFT  int     `yaml:"n_fft"`
	Hop   int     `yaml:"hop"`
	NMels int     `yaml:"n_mels"`
	FMin  float64 `yaml:"f_min,omitempty"`
	FMax  float64 `yaml:"f_max,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		SampleRate:     22050,
		SnippetSeconds: 30,
		Peak:           augment.DefaultPeak,
		Spectrogram: SpectrogramConfig{
			NFFT:  features.DefaultNFFT,
			Hop:   features.DefaultHop,
			NMels: features.DefaultNMels,
		},
	}

	for _, c := range augment.DefaultConfig() {
		cfg.Candidates = append(cfg.Candidates, CandidateConfig{Kind: c.Kind, Probability: c.Probability})
	}

	for _, e := range augment.DefaultFallback() {
		cfg.Fallback = append(cfg.Fallback, effectConfigOf(e))
	}

	return cfg
}

// Load reads the YAML file at path over Default and validates the result.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes data over Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	err := yaml.UnmarshalStrict(data, cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Marshal encodes c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// Validate checks every section, including that the candidates and the
// fallback only name kinds of the resulting catalog.
func (c *Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate %d", ErrInvalidConfig, c.SampleRate)
	case !(c.SnippetSeconds > 0) || math.IsInf(c.SnippetSeconds, 0):
		return fmt.Errorf("%w: snippet_seconds %v", ErrInvalidConfig, c.SnippetSeconds)
	case !(c.Peak > 0) || math.IsInf(c.Peak, 0):
		return fmt.Errorf("%w: peak %v", ErrInvalidConfig, c.Peak)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	}

	cat, err := c.Catalog()
	if err != nil {
		return err
	}

	err = c.EffectConfig().Validate(cat)
	if err != nil {
		return err
	}

	fallback, err := c.FallbackChain()
	if err != nil {
		return err
	}

	for i, e := range fallback {
		if _, ok := cat.Lookup(e.Kind); !ok {
			return fmt.Errorf("config: fallback %d: %w: %q", i, augment.ErrUnknownEffect, e.Kind)
		}
	}

	err = c.MelConfig().Validate()
	if err != nil {
		return fmt.Errorf("config: spectrogram: %w", err)
	}

	return nil
}

// BaseSeed returns the configured seed and whether one was set.
func (c *Config) BaseSeed() (uint64, bool) {
	if c.Seed == nil {
		return 0, false
	}

	return *c.Seed, true
}

// SetSeed sets the base seed.
func (c *Config) SetSeed(seed uint64) {
	c.Seed = &seed
}

// SnippetSamples returns the length every dataset item is padded or
// truncated to.
func (c *Config) SnippetSamples() int {
	return int(math.Round(c.SnippetSeconds * float64(c.SampleRate)))
}

// Catalog returns the built-in catalog with the effects section applied:
// listed kinds replace the built-in descriptor, new kinds are appended.
func (c *Config) Catalog() (*augment.Catalog, error) {
	if len(c.Effects) == 0 {
		return augment.DefaultCatalog(), nil
	}

	descs, err := c.Effects.Descriptors()
	if err != nil {
		return nil, err
	}

	cat, err := augment.DefaultCatalog().With(descs...)
	if err != nil {
		return nil, fmt.Errorf("config: effects: %w", err)
	}

	return cat, nil
}

// EffectConfig returns the candidates in file order.
func (c *Config) EffectConfig() augment.EffectConfig {
	cfg := make(augment.EffectConfig, len(c.Candidates))
	for i, cand := range c.Candidates {
		cfg[i] = augment.Candidate{Kind: cand.Kind, Probability: cand.Probability}
	}

	return cfg
}

// FallbackChain returns the fallback effects with their parameters in file
// order.
func (c *Config) FallbackChain() (augment.FallbackChain, error) {
	chain := make(augment.FallbackChain, 0, len(c.Fallback))

	for i, ec := range c.Fallback {
		if ec.Kind == "" {
			return nil, fmt.Errorf("%w: fallback %d has no kind", ErrInvalidConfig, i)
		}

		settings := make([]augment.Setting, 0, len(ec.Params))
		for _, item := range ec.Params {
			name, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("%w: fallback %d (%s): parameter name %v", ErrInvalidConfig, i, ec.Kind, item.Key)
			}

			settings = append(settings, augment.Set(name, item.Value))
		}

		chain = append(chain, augment.NewEffect(ec.Kind, settings...))
	}

	return chain, nil
}

// MelConfig returns the spectrogram analysis at the configured sample rate.
func (c *Config) MelConfig() features.MelConfig {
	return features.MelConfig{
		SampleRate: c.SampleRate,
		NFFT:       c.Spectrogram.NFFT,
		Hop:        c.Spectrogram.Hop,
		NMels:      c.Spectrogram.NMels,
		FMin:       c.Spectrogram.FMin,
		FMax:       c.Spectrogram.FMax,
	}
}

// ProcessorOptions returns the options the processor is built with.
func (c *Config) ProcessorOptions() []augment.ProcessorOption {
	return []augment.ProcessorOption{augment.WithPeak(c.Peak)}
}

func effectConfigOf(e augment.Effect) EffectConfig {
	ec := EffectConfig{Kind: e.Kind}
	for _, s := range e.Params {
		ec.Params = append(ec.Params, yaml.MapItem{Key: s.Name, Value: s.Value})
	}

	return ec
}
