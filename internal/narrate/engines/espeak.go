package engines

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/webshoplabs/accesspanel/internal/narrate"
)

const (
	// espeakBaseWPM is espeak-ng's default words-per-minute; the utterance
	// rate multiplies it.
	espeakBaseWPM = 175

	// espeakTimeout bounds one synthesis run. Utterances are at most a few
	// sentences, so a slow run means a wedged subprocess.
	espeakTimeout = 30 * time.Second
)

// Espeak synthesizes speech by piping text through the espeak-ng binary
// and playing the resulting PCM. The subprocess gets its stdin before it
// starts, which avoids a write race on short inputs.
type Espeak struct {
	binary string
	player Player
	cache  *pcmCache

	mu     sync.Mutex
	cancel context.CancelFunc
}

var _ narrate.Synthesizer = (*Espeak)(nil)

// NewEspeak locates the espeak-ng binary and wires it to player. A missing
// binary is not an error; the engine reports itself unavailable instead.
func NewEspeak(player Player) *Espeak {
	e := &Espeak{player: player}
	for _, name := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(name); err == nil {
			e.binary = path
			break
		}
	}
	// Cache setup cannot fail with a nil writer target; a nil cache just
	// means every utterance resynthesizes.
	e.cache, _ = newPCMCache(defaultCacheCapacity)
	return e
}

// Available reports whether the espeak binary was found.
func (e *Espeak) Available() bool {
	return e.binary != ""
}

// Speak synthesizes and plays the utterance, blocking until playback ends,
// ctx is cancelled, or Cancel is called.
func (e *Espeak) Speak(ctx context.Context, u narrate.Utterance) error {
	if !e.Available() {
		return narrate.ErrSynthUnavailable
	}
	if strings.TrimSpace(u.Text) == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, espeakTimeout)
	e.mu.Lock()
	e.cancel = cancel
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.cancel = nil
		e.mu.Unlock()
		cancel()
	}()

	key := cacheKey(u)
	pcm, cached := e.cachedPCM(key)
	if !cached {
		var err error
		pcm, err = e.synthesize(ctx, u)
		if err != nil {
			return err
		}
		e.storePCM(key, pcm)
	}
	if err := e.player.PlayPCM(pcm); err != nil {
		return fmt.Errorf("unable to play speech: %w", err)
	}
	return e.waitForPlayback(ctx)
}

func (e *Espeak) cachedPCM(key string) ([]byte, bool) {
	if e.cache == nil {
		return nil, false
	}
	return e.cache.get(key)
}

func (e *Espeak) storePCM(key string, pcm []byte) {
	if e.cache != nil {
		e.cache.put(key, pcm)
	}
}

// synthesize runs the subprocess and returns raw PCM samples.
func (e *Espeak) synthesize(ctx context.Context, u narrate.Utterance) ([]byte, error) {
	rate := u.Rate
	if rate <= 0 {
		rate = 1.0
	}
	base, _ := u.Language.Base()

	args := []string{
		"--stdout",
		"--stdin",
		"-v", base.String(),
		"-s", fmt.Sprintf("%d", int(espeakBaseWPM*rate)),
	}

	cmd := exec.CommandContext(ctx, e.binary, args...)
	// Stdin must be wired before Start; espeak reads it immediately.
	cmd.Stdin = strings.NewReader(u.Text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("unable to start espeak: %w", err)
	}
	err := cmd.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("espeak failed: %w: %s", err, msg)
		}
		return nil, fmt.Errorf("espeak failed: %w", err)
	}

	return pcmFromWAV(stdout.Bytes())
}

// waitForPlayback polls the player until the clip ends or ctx cancels.
func (e *Espeak) waitForPlayback(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.player.Stop()
			return ctx.Err()
		case <-ticker.C:
			if !e.player.IsPlaying() {
				return nil
			}
		}
	}
}

// Cancel interrupts the in-flight Speak, if any.
func (e *Espeak) Cancel() {
	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	e.player.Stop()
}

// Close cancels any speech and releases the player.
func (e *Espeak) Close() error {
	e.Cancel()
	return e.player.Close()
}
