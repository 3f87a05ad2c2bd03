package fdtd

import "sync"

// minRows is the smallest row band worth handing to a goroutine.
const minRows = 8

// parallelFor splits [0, n) into contiguous bands and runs fn on each.
// It returns after every band has finished.
func parallelFor(n, workers int, fn func(start, end int)) {
	if workers <= 1 || n <= minRows {
		fn(0, n)
		return
	}
	if n/minRows < workers {
		workers = n / minRows
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}
