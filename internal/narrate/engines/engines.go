// Package engines provides speech synthesizer implementations: an
// espeak-ng subprocess engine for real speech and a mock engine for tests
// and silent demos.
package engines

// Player plays raw PCM speech audio. Satisfied by audio.Player.
type Player interface {
	PlayPCM(pcm []byte) error
	IsPlaying() bool
	Stop()
	Close() error
}
