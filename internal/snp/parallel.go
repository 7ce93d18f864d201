package snp

import (
	"runtime"
	"sync"

	"github.com/inodb/hapmap/internal/profile"
)

// DefaultChunkSize is the number of columns handed to a worker at a time.
const DefaultChunkSize = 4096

// WorkItem is a half-open column range [Start, End) to call.
type WorkItem struct {
	Seq   int
	Start int
	End   int
}

// WorkResult holds the sites found in one column range.
type WorkResult struct {
	Seq   int
	Sites []Site
}

// CallVariantsParallel calls sites like CallVariants but spreads column ranges
// over a pool of workers. The result is identical to CallVariants.
// If workers is 0, runtime.NumCPU() is used.
func CallVariantsParallel(c *profile.Collection, workers int) []Site {
	return callChunked(c, workers, DefaultChunkSize)
}

func callChunked(c *profile.Collection, workers, chunkSize int) []Site {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	n := c.MaxLen()
	items := make(chan WorkItem, 2*workers)
	go func() {
		defer close(items)
		seq := 0
		for start := 0; start < n; start += chunkSize {
			items <- WorkItem{Seq: seq, Start: start, End: min(start+chunkSize, n)}
			seq++
		}
	}()

	sites := []Site{}
	OrderedCollect(ParallelCall(c, items, workers), func(r WorkResult) {
		sites = append(sites, r.Sites...)
	})
	return sites
}

// ParallelCall calls column ranges using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// Use OrderedCollect to consume results in sequence-number order.
func ParallelCall(c *profile.Collection, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{
					Seq:   item.Seq,
					Sites: callRange(c, item.Start, item.End),
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order.
// Out-of-order results are held in a pending map until the next expected
// sequence number arrives. Blocks until the results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult)) {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			fn(rr)
		}
	}
}
