package audio

import (
	"fmt"
	"io"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
	"github.com/minicodemonkey/birthday/internal/melody"
)

// waveformStreamer streams a mono waveform as beep stereo frames.
type waveformStreamer struct {
	samples []float32
	pos     int
}

// Stream returns a beep.Streamer over the waveform samples.
func Stream(w melody.Waveform) beep.Streamer {
	return &waveformStreamer{samples: w.Samples}
}

// Format returns the beep format used for 16-bit mono output of w.
func Format(w melody.Waveform) beep.Format {
	return beep.Format{
		SampleRate:  beep.SampleRate(w.SampleRate),
		NumChannels: 1,
		Precision:   2,
	}
}

func (s *waveformStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	for n < len(samples) && s.pos < len(s.samples) {
		v := float64(s.samples[s.pos])
		samples[n][0], samples[n][1] = v, v
		n++
		s.pos++
	}
	return n, true
}

func (s *waveformStreamer) Err() error { return nil }

// EncodeWAV writes w as a 16-bit mono WAV.
func EncodeWAV(out io.WriteSeeker, w melody.Waveform) error {
	if err := wav.Encode(out, Stream(w), Format(w)); err != nil {
		return fmt.Errorf("failed to encode WAV: %w", err)
	}
	return nil
}

// WriteWAV encodes w into a new file at path.
func WriteWAV(path string, w melody.Waveform) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodeWAV(f, w); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
