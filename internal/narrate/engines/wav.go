package engines

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// pcmFromWAV extracts the raw sample data from a RIFF/WAVE byte stream.
// espeak-ng's --stdout emits a standard 16-bit mono WAV; the player wants
// the bare PCM.
func pcmFromWAV(data []byte) ([]byte, error) {
	if len(data) < 12 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, errors.New("not a RIFF/WAVE stream")
	}

	// Walk the chunk list looking for "data".
	offset := 12
	for offset+8 <= len(data) {
		chunkID := string(data[offset : offset+4])
		chunkSize := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		if chunkID == "data" {
			end := body + chunkSize
			// espeak streams to a pipe and cannot seek back to patch the
			// size field, so it may be zero or short. Trust the payload.
			if chunkSize == 0 || end > len(data) {
				end = len(data)
			}
			pcm := data[body:end]
			if len(pcm)%2 != 0 {
				pcm = pcm[:len(pcm)-1]
			}
			if len(pcm) == 0 {
				return nil, errors.New("wav data chunk is empty")
			}
			return pcm, nil
		}

		// Chunks are word-aligned.
		if chunkSize%2 != 0 {
			chunkSize++
		}
		next := body + chunkSize
		if next <= offset {
			return nil, fmt.Errorf("malformed wav chunk %q", chunkID)
		}
		offset = next
	}

	return nil, errors.New("wav stream has no data chunk")
}
