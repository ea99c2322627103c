package engines

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/webshoplabs/accesspanel/internal/narrate"
)

// defaultCacheCapacity bounds the compressed PCM held in memory (8MB).
const defaultCacheCapacity = 8 * 1024 * 1024

// pcmCache is an LRU cache of synthesized speech. Entries are stored
// zstd-compressed; a page's labels repeat heavily and element narration is
// pure text-in PCM-out, so hits skip the subprocess entirely.
type pcmCache struct {
	mu       sync.Mutex
	capacity int64
	size     int64
	items    map[string]*list.Element
	eviction *list.List

	enc *zstd.Encoder
	dec *zstd.Decoder
}

type pcmCacheEntry struct {
	key        string
	compressed []byte
}

func newPCMCache(capacity int64) (*pcmCache, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("unable to create compressor: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("unable to create decompressor: %w", err)
	}
	return &pcmCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
		enc:      enc,
		dec:      dec,
	}, nil
}

// cacheKey is deterministic over everything that changes the waveform.
func cacheKey(u narrate.Utterance) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%.2f", u.Text, u.Language, u.Rate)))
	return hex.EncodeToString(sum[:])
}

func (c *pcmCache) get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.eviction.MoveToFront(elem)

	entry := elem.Value.(*pcmCacheEntry)
	pcm, err := c.dec.DecodeAll(entry.compressed, nil)
	if err != nil {
		c.removeElement(elem)
		return nil, false
	}
	return pcm, true
}

func (c *pcmCache) put(key string, pcm []byte) {
	compressed := c.enc.EncodeAll(pcm, nil)
	entrySize := int64(len(compressed))
	if entrySize > c.capacity {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*pcmCacheEntry)
		c.size += entrySize - int64(len(entry.compressed))
		entry.compressed = compressed
		c.eviction.MoveToFront(elem)
		return
	}

	for c.size+entrySize > c.capacity && c.eviction.Len() > 0 {
		c.removeElement(c.eviction.Back())
	}

	elem := c.eviction.PushFront(&pcmCacheEntry{key: key, compressed: compressed})
	c.items[key] = elem
	c.size += entrySize
}

// removeElement must be called with the lock held.
func (c *pcmCache) removeElement(elem *list.Element) {
	entry := elem.Value.(*pcmCacheEntry)
	delete(c.items, entry.key)
	c.eviction.Remove(elem)
	c.size -= int64(len(entry.compressed))
}
