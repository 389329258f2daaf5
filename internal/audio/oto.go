package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"github.com/minicodemonkey/birthday/internal/melody"
)

var (
	otoContext *oto.Context
	otoRate    int
	initOnce   sync.Once
	initErr    error
)

// OtoPlayer plays through the audio device in-process.
type OtoPlayer struct {
	context    *oto.Context
	sampleRate int
}

// NewOtoPlayer opens the audio device. The oto context can only be created once
// per process, so every player shares it.
func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	initOnce.Do(func() {
		// mono, 16-bit signed = 2 bytes
		ctx, ready, err := oto.NewContext(sampleRate, 1, 2)
		if err != nil {
			initErr = err
			return
		}
		<-ready
		otoContext = ctx
		otoRate = sampleRate
	})
	if initErr != nil {
		return nil, initErr
	}
	if otoRate != sampleRate {
		return nil, fmt.Errorf("audio device already opened at %d Hz", otoRate)
	}
	return &OtoPlayer{context: otoContext, sampleRate: sampleRate}, nil
}

// Name implements Player.
func (p *OtoPlayer) Name() string { return BackendOto }

// Play implements Player.
func (p *OtoPlayer) Play(ctx context.Context, w melody.Waveform) error {
	if w.SampleRate != p.sampleRate {
		return fmt.Errorf("waveform rate %d Hz does not match device rate %d Hz", w.SampleRate, p.sampleRate)
	}
	if len(w.Samples) == 0 {
		return nil
	}

	player := p.context.NewPlayer(bytes.NewReader(PCM16(w)))
	defer player.Close()

	player.Play()

	// Wait for playback to complete
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// PCM16 returns the waveform as little-endian signed 16-bit mono PCM.
func PCM16(w melody.Waveform) []byte {
	samples := w.Int16()
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(s))
	}
	return buf
}
