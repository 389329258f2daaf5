// Package audio plays synthesized waveforms through one of two backends:
// an in-process oto device, or a system command-line player fed a WAV file.
package audio

import (
	"context"
	"errors"
	"fmt"

	"github.com/minicodemonkey/birthday/internal/logger"
	"github.com/minicodemonkey/birthday/internal/melody"
)

// ErrNoBackend is returned by Select when no playback backend is usable.
var ErrNoBackend = errors.New("no audio backend available")

// Player plays a waveform, blocking until playback finishes.
type Player interface {
	Name() string
	Play(ctx context.Context, w melody.Waveform) error
}

// Backend names accepted by Select.
const (
	BackendAuto    = "auto"
	BackendOto     = "oto"
	BackendCommand = "command"
)

// probes are the backend constructors Select tries, in order.
var probes = []struct {
	name  string
	probe func() (Player, error)
}{
	{BackendOto, func() (Player, error) { return NewOtoPlayer(melody.SampleRate) }},
	{BackendCommand, func() (Player, error) { return NewCommandPlayer() }},
}

// Select returns the first usable backend. backend restricts the choice to a
// single named backend; "auto" or "" tries all of them.
func Select(backend string) (Player, error) {
	if backend == "" {
		backend = BackendAuto
	}

	var errs []error
	for _, p := range probes {
		if backend != BackendAuto && backend != p.name {
			continue
		}
		player, err := p.probe()
		if err != nil {
			logger.Debug("audio backend unavailable", logger.String("backend", p.name), logger.Err(err))
			errs = append(errs, fmt.Errorf("%s: %w", p.name, err))
			continue
		}
		return player, nil
	}

	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: unknown backend %q", ErrNoBackend, backend)
	}
	return nil, fmt.Errorf("%w: %w", ErrNoBackend, errors.Join(errs...))
}
