package cif

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/norimage/norimage/pkg/compress"
)

// DefaultChunkSize is the payload slice size when none is configured.
const DefaultChunkSize = 256 * 1024

// Chunk is one independently compressed slice of the pixel payload.
type Chunk struct {
	// RawLen is the uncompressed length of this slice.
	RawLen int
	// Data is the strategy output.
	Data []byte
}

// Scheduler partitions a sample buffer into fixed-size chunks, dispatches
// each chunk to a compression strategy, and reassembles results in input
// order. Chunk order is a correctness requirement: the output sequence
// always matches the input sequence regardless of worker interleaving,
// because workers write into a pre-sized slice indexed by chunk number.
// The sequential and parallel paths therefore produce identical output.
type Scheduler struct {
	// ChunkSize is the raw bytes per chunk; <= 0 selects DefaultChunkSize.
	ChunkSize int
	// Workers bounds concurrent chunk processing. <= 1 runs on the
	// calling goroutine; 0 is treated as 1. Values above the chunk count
	// are clamped.
	Workers int
	// Cache, when non-nil, intercepts chunk computations by fingerprint.
	Cache *ChunkCache
}

func (s *Scheduler) chunkSize() int {
	if s.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return s.ChunkSize
}

func (s *Scheduler) workerCount(chunks int) int {
	w := s.Workers
	if w <= 0 {
		w = 1
	}
	if w > chunks {
		w = chunks
	}
	if w > runtime.NumCPU()*2 {
		w = runtime.NumCPU() * 2
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Compress splits raw into chunks and encodes each with codec. opts must be
// the options codec was built with; they participate in cache fingerprints.
func (s *Scheduler) Compress(raw []byte, codec compress.Codec, opts compress.Options) ([]Chunk, error) {
	size := s.chunkSize()
	n := (len(raw) + size - 1) / size
	if n == 0 {
		return nil, nil
	}

	chunks := make([]Chunk, n)
	err := s.forEach(n, func(i int) error {
		offset := i * size
		end := offset + size
		if end > len(raw) {
			end = len(raw)
		}
		slice := raw[offset:end]

		key := chunkFingerprint("encode", codec.Name(), opts, offset, slice)
		if cached, ok := s.Cache.get(key); ok {
			chunks[i] = Chunk{RawLen: len(slice), Data: cached}
			return nil
		}

		data, err := codec.Encode(slice)
		if err != nil {
			return fmt.Errorf("%w: chunk %d: %v", ErrCompression, i, err)
		}
		s.Cache.put(key, data)
		chunks[i] = Chunk{RawLen: len(slice), Data: data}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chunks, nil
}

// Decompress decodes chunks with codec and reassembles the raw buffer in
// chunk order.
func (s *Scheduler) Decompress(chunks []Chunk, codec compress.Codec, opts compress.Options) ([]byte, error) {
	total := 0
	offsets := make([]int, len(chunks))
	for i, c := range chunks {
		offsets[i] = total
		total += c.RawLen
	}

	out := make([]byte, total)
	err := s.forEach(len(chunks), func(i int) error {
		key := chunkFingerprint("decode", codec.Name(), opts, offsets[i], chunks[i].Data)
		if cached, ok := s.Cache.get(key); ok {
			if len(cached) != chunks[i].RawLen {
				return fmt.Errorf("%w: chunk %d: cached length mismatch", ErrCompression, i)
			}
			copy(out[offsets[i]:], cached)
			return nil
		}

		decoded, err := codec.Decode(chunks[i].Data, chunks[i].RawLen)
		if err != nil {
			return fmt.Errorf("%w: chunk %d: %v", ErrCompression, i, err)
		}
		s.Cache.put(key, decoded)
		copy(out[offsets[i]:], decoded)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forEach runs fn for every index, sequentially or on a worker pool. The
// first error wins; remaining work still drains.
func (s *Scheduler) forEach(n int, fn func(i int) error) error {
	workers := s.workerCount(n)
	if workers <= 1 {
		for i := 0; i < n; i++ {
			if err := fn(i); err != nil {
				return err
			}
		}
		return nil
	}

	workCh := make(chan int, n)
	for i := 0; i < n; i++ {
		workCh <- i
	}
	close(workCh)

	errs := make([]error, n)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range workCh {
				errs[i] = fn(i)
			}
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
