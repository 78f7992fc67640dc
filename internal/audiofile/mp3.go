package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/cwbudde/algo-augment/augment"
)

// go-mp3 always decodes to interleaved signed 16-bit little-endian stereo.
const (
	mp3Channels       = 2
	mp3BytesPerSample = 2
	mp3FrameBytes     = mp3Channels * mp3BytesPerSample
)

func decodeMP3(r io.Reader) (augment.Waveform, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return augment.Waveform{}, fmt.Errorf("create MP3 decoder: %w", err)
	}

	var pcm []byte

	if n := dec.Length(); n > 0 {
		pcm = make([]byte, n)

		read, err := io.ReadFull(dec, pcm)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return augment.Waveform{}, fmt.Errorf("read MP3 PCM: %w", err)
		}

		pcm = pcm[:read]
	} else {
		pcm, err = io.ReadAll(dec)
		if err != nil {
			return augment.Waveform{}, fmt.Errorf("read MP3 PCM: %w", err)
		}
	}

	frames := len(pcm) / mp3FrameBytes
	interleaved := make([]float64, frames*mp3Channels)

	for i := range interleaved {
		v := int16(binary.LittleEndian.Uint16(pcm[i*mp3BytesPerSample:]))
		interleaved[i] = float64(v) / 32768
	}

	return augment.Waveform{Samples: downmix(interleaved, mp3Channels), SampleRate: dec.SampleRate()}, nil
}
