package transform

import (
	"runtime"
	"sync"
)

// parallelDo runs fn(i) for i in [start, stop), batched across GOMAXPROCS
// goroutines. Falls back to a plain loop for small ranges or single-proc
// machines.
func parallelDo(start, stop int, fn func(i int)) {
	count := stop - start
	if count <= 0 {
		return
	}

	procs := runtime.GOMAXPROCS(0)
	if procs > count {
		procs = count
	}
	if procs <= 1 {
		for i := start; i < stop; i++ {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	batchSize := (count + procs - 1) / procs
	for p := 0; p < procs; p++ {
		batchStart := start + p*batchSize
		batchEnd := batchStart + batchSize
		if batchEnd > stop {
			batchEnd = stop
		}
		if batchStart >= batchEnd {
			continue
		}

		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}(batchStart, batchEnd)
	}
	wg.Wait()
}

// parallelRows applies fn to corresponding row slices of src and dst.
func parallelRows(rows, stride int, src, dst []byte, fn func(src, dst []byte)) {
	parallelDo(0, rows, func(y int) {
		off := y * stride
		fn(src[off:off+stride], dst[off:off+stride])
	})
}
