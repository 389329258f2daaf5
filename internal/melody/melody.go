// Package melody renders note sequences into mono PCM waveforms.
package melody

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// SampleRate is the rate every waveform is rendered at.
	SampleRate = 44100
	// Volume is the master gain applied after the envelope.
	Volume = 0.2

	envelopeStart = 1.0
	envelopeEnd   = 0.2
)

var (
	// ErrUnknownPitch is returned when an event names a pitch missing from the table.
	ErrUnknownPitch = errors.New("unknown pitch")
	// ErrInvalidTempo is returned for a non-positive beats-per-minute value.
	ErrInvalidTempo = errors.New("tempo must be positive")
	// ErrInvalidBeats is returned for a negative or non-finite event length.
	ErrInvalidBeats = errors.New("event length must be a finite, non-negative number of beats")
)

// Event is a single note (or rest) lasting Beats beats.
type Event struct {
	Pitch string
	Beats float64
}

// Waveform is a rendered mono buffer.
type Waveform struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the playing time of the buffer.
func (w Waveform) Duration() time.Duration {
	if w.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(w.Samples)) / float64(w.SampleRate) * float64(time.Second))
}

// Int16 rescales the samples to signed 16-bit PCM.
func (w Waveform) Int16() []int16 {
	out := make([]int16, len(w.Samples))
	for i, s := range w.Samples {
		v := float64(s) * 32767
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		out[i] = int16(v)
	}
	return out
}

// BeatDuration returns the length of one beat in seconds.
func BeatDuration(bpm int) float64 {
	return 60 / float64(bpm)
}

// SampleCount returns the number of samples an event of the given length occupies.
func SampleCount(beats float64, bpm int) int {
	return int(math.Round(SampleRate * BeatDuration(bpm) * beats))
}

// Duration returns the nominal length of a sequence at the given tempo.
func Duration(events []Event, bpm int) time.Duration {
	var beats float64
	for _, e := range events {
		beats += e.Beats
	}
	return time.Duration(BeatDuration(bpm) * beats * float64(time.Second))
}

// Synthesize renders events in order into a single waveform.
func Synthesize(events []Event, bpm int) (Waveform, error) {
	if bpm <= 0 {
		return Waveform{}, fmt.Errorf("%w: %d", ErrInvalidTempo, bpm)
	}

	total := 0
	for i, e := range events {
		if !(e.Beats >= 0) || math.IsInf(e.Beats, 1) {
			return Waveform{}, fmt.Errorf("event %d: %w: %v", i, ErrInvalidBeats, e.Beats)
		}
		total += SampleCount(e.Beats, bpm)
	}

	samples := make([]float32, 0, total)
	for i, e := range events {
		n := SampleCount(e.Beats, bpm)
		if e.Pitch == Rest {
			samples = append(samples, make([]float32, n)...)
			continue
		}
		freq, ok := Frequency(e.Pitch)
		if !ok {
			return Waveform{}, fmt.Errorf("event %d: %w %q", i, ErrUnknownPitch, e.Pitch)
		}
		samples = append(samples, Tone(freq, n)...)
	}

	return Waveform{Samples: samples, SampleRate: SampleRate}, nil
}

// Tone renders n samples of a decaying sine at freq Hz.
func Tone(freq float64, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / SampleRate
		out[i] = float32(math.Sin(2*math.Pi*freq*t) * Envelope(i, n) * Volume)
	}
	return out
}

// Envelope returns the linear decay gain for sample i of n, from 1.0 down to 0.2
// at the last sample.
func Envelope(i, n int) float64 {
	if n <= 1 {
		return envelopeStart
	}
	return envelopeStart + (envelopeEnd-envelopeStart)*float64(i)/float64(n-1)
}
