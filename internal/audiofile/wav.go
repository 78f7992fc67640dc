package audiofile

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-augment/augment"
)

// WAVBitDepth is the sample width of written WAV files.
const WAVBitDepth = 16

const wavFormatPCM = 1

func decodeWAV(r io.ReadSeeker) (augment.Waveform, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return augment.Waveform{}, fmt.Errorf("invalid WAV file")
	}

	if dec.BitDepth == 0 || dec.BitDepth > 32 {
		return augment.Waveform{}, fmt.Errorf("unsupported WAV bit depth %d", dec.BitDepth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return augment.Waveform{}, fmt.Errorf("decode WAV: %w", err)
	}

	channels := int(dec.NumChans)
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		channels = buf.Format.NumChannels
	}

	// 8-bit WAV is unsigned; go-audio leaves it offset by 128.
	var offset float64
	if dec.BitDepth == 8 {
		offset = 128
	}

	scale := 1 / math.Exp2(float64(dec.BitDepth-1))
	samples := make([]float64, len(buf.Data))

	for i, v := range buf.Data {
		samples[i] = (float64(v) - offset) * scale
	}

	return augment.Waveform{Samples: downmix(samples, channels), SampleRate: int(dec.SampleRate)}, nil
}

// EncodeWAV writes w as 16-bit mono PCM. Samples are clipped to [-1, 1].
func EncodeWAV(ws io.WriteSeeker, w augment.Waveform) error {
	if w.SampleRate <= 0 {
		return fmt.Errorf("audiofile: sample rate must be positive: %d", w.SampleRate)
	}

	enc := wav.NewEncoder(ws, w.SampleRate, WAVBitDepth, 1, wavFormatPCM)

	ints := make([]int, len(w.Samples))
	for i, v := range w.Samples {
		ints[i] = int(math.Round(max(-1, min(1, v)) * math.MaxInt16))
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  w.SampleRate,
		},
		Data:           ints,
		SourceBitDepth: WAVBitDepth,
	}

	err := enc.Write(buf)
	if err != nil {
		return fmt.Errorf("audiofile: encode WAV: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("audiofile: finish WAV: %w", err)
	}

	return nil
}

// WriteWAV writes w to path as 16-bit mono PCM, replacing any existing file.
func WriteWAV(path string, w augment.Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	err = EncodeWAV(f, w)
	if err != nil {
		_ = f.Close()

		return err
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}

	return nil
}
