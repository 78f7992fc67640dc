// Package audiofile decodes WAV and MP3 files into mono waveforms and
// writes 16-bit PCM WAV files.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cwbudde/algo-augment/augment"
)

// ErrUnsupportedFormat is returned for files that are neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("audiofile: unsupported format")

// Format identifies a container format.
type Format string

const (
	FormatWAV Format = "wav"
	FormatMP3 Format = "mp3"
)

// FormatOf returns the format implied by the file extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".wave":
		return FormatWAV, nil
	case ".mp3":
		return FormatMP3, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Read decodes the file at path and downmixes it to mono.
func Read(path string) (augment.Waveform, error) {
	format, err := FormatOf(path)
	if err != nil {
		return augment.Waveform{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return augment.Waveform{}, fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()

	w, err := Decode(f, format)
	if err != nil {
		return augment.Waveform{}, fmt.Errorf("audiofile: %s: %w", path, err)
	}

	return w, nil
}

// Decode reads a whole stream of the given format as a mono waveform.
func Decode(r io.ReadSeeker, format Format) (augment.Waveform, error) {
	switch format {
	case FormatWAV:
		return decodeWAV(r)
	case FormatMP3:
		return decodeMP3(r)
	default:
		return augment.Waveform{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// List returns the supported audio files directly inside dir, sorted by
// name.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}

	var out []string

	for _, e := range entries {
		if e.IsDir() {
			continue
		}

		if _, err := FormatOf(e.Name()); err == nil {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}

	slices.Sort(out)

	return out, nil
}

// Stem returns the file name of path without directory and extension.
func Stem(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// downmix averages interleaved channels into one.
func downmix(interleaved []float64, channels int) []float64 {
	if channels <= 1 {
		return interleaved
	}

	out := make([]float64, len(interleaved)/channels)
	inv := 1 / float64(channels)

	for i := range out {
		var sum float64
		for c := range channels {
			sum += interleaved[i*channels+c]
		}

		out[i] = sum * inv
	}

	return out
}
