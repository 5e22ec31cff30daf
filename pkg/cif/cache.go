package cif

import (
	"container/list"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/norimage/norimage/pkg/compress"
)

// fingerprint keys a chunk computation: it binds the direction, strategy,
// strategy options, chunk offset, and chunk bytes, so two computations share
// a cache slot only when their results are guaranteed identical.
type fingerprint [32]byte

func chunkFingerprint(direction, codecName string, opts compress.Options, offset int, data []byte) fingerprint {
	h := blake3.New()
	var hdr [64]byte
	n := copy(hdr[:], direction)
	hdr[n] = 0
	n++
	n += copy(hdr[n:], codecName)
	hdr[n] = 0
	n++
	hdr[n] = byte(opts.Stride)
	hdr[n+1] = byte(opts.Quality)
	putUint32(hdr[n+2:n+6], uint32(offset))
	h.Write(hdr[:n+6])
	h.Write(data)

	var fp fingerprint
	h.Sum(fp[:0])
	return fp
}

// ChunkCache is a bounded LRU over chunk compression results. It is the
// only shared mutable state in the codec: construct one, pass it to every
// scheduler that should share it. All methods are safe for concurrent use,
// and values cross the boundary as copies in both directions so no caller
// can corrupt a cached entry.
type ChunkCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[fingerprint]*list.Element
	order    *list.List // front is most recently used

	hits   uint64
	misses uint64
}

type cacheEntry struct {
	key   fingerprint
	value []byte
}

// NewChunkCache creates a cache holding at most capacity entries. A
// capacity <= 0 yields a cache that stores nothing.
func NewChunkCache(capacity int) *ChunkCache {
	return &ChunkCache{
		capacity: capacity,
		entries:  make(map[fingerprint]*list.Element),
		order:    list.New(),
	}
}

// get returns a copy of the cached value, if present.
func (c *ChunkCache) get(key fingerprint) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.order.MoveToFront(elem)
	stored := elem.Value.(*cacheEntry).value
	out := make([]byte, len(stored))
	copy(out, stored)
	return out, true
}

// put stores a copy of value, evicting the least recently used entry when
// over capacity. Concurrent puts of the same key overwrite each other with
// identical data, so duplicated work is possible but corruption is not.
func (c *ChunkCache) put(key fingerprint, value []byte) {
	if c == nil || c.capacity <= 0 {
		return
	}
	stored := make([]byte, len(value))
	copy(stored, value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		elem.Value.(*cacheEntry).value = stored
		c.order.MoveToFront(elem)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, value: stored})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// Len reports the number of cached entries.
func (c *ChunkCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats reports cumulative hit and miss counts.
func (c *ChunkCache) Stats() (hits, misses uint64) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

func putUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}
