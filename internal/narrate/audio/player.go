// Package audio plays synthesized PCM speech through the system's audio
// device using oto.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// PCM format produced by the speech engines and consumed by the player.
const (
	SampleRate     = 22050
	Channels       = 1
	BytesPerSample = 2
)

// Format is the oto sample format for our PCM data.
const Format = oto.FormatSignedInt16LE

var (
	otoContext *oto.Context
	otoOnce    sync.Once
	otoErr     error
)

// context returns the process-wide oto context. oto allows only one context
// per process, so it is created lazily and shared by every Player.
func context() (*oto.Context, error) {
	otoOnce.Do(func() {
		options := &oto.NewContextOptions{
			SampleRate:   SampleRate,
			ChannelCount: Channels,
			Format:       Format,
		}
		switch runtime.GOOS {
		case "darwin":
			options.BufferSize = 100 * time.Millisecond
		default:
			options.BufferSize = 50 * time.Millisecond
		}

		ctx, ready, err := oto.NewContext(options)
		if err != nil {
			otoErr = fmt.Errorf("unable to create audio context: %w", err)
			return
		}
		<-ready
		otoContext = ctx
	})
	return otoContext, otoErr
}

// Player plays one PCM clip at a time. Starting a new clip stops the
// previous one.
type Player struct {
	mu      sync.Mutex
	current *oto.Player
}

// NewPlayer creates a player, initializing the shared audio context.
func NewPlayer() (*Player, error) {
	if _, err := context(); err != nil {
		return nil, err
	}
	return &Player{}, nil
}

// PlayPCM starts playing the clip, replacing whatever was playing.
func (p *Player) PlayPCM(pcm []byte) error {
	if len(pcm) == 0 {
		return errors.New("empty audio data")
	}
	if len(pcm)%BytesPerSample != 0 {
		return fmt.Errorf("pcm data not aligned to %d-byte samples", BytesPerSample)
	}

	ctx, err := context()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopLocked()
	p.current = ctx.NewPlayer(bytes.NewReader(pcm))
	p.current.Play()
	return nil
}

// IsPlaying reports whether a clip is currently audible.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != nil && p.current.IsPlaying()
}

// Stop silences the player immediately.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

func (p *Player) stopLocked() {
	if p.current == nil {
		return
	}
	p.current.Pause()
	p.current.Close()
	p.current = nil
}

// Close stops playback. The shared audio context stays open for the life of
// the process.
func (p *Player) Close() error {
	p.Stop()
	return nil
}
