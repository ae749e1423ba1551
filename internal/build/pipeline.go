package build

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/aellingwood/tsumo/internal/site"
)

// renderParallel processes pages concurrently using a worker pool.
// The fn callback is invoked for each page. If an invocation returns an error,
// the worker that hit it takes no further pages, the other workers finish the
// remaining pages, and the first error is returned once all workers are done.
func renderParallel(pages []*site.Page, workers int, fn func(*site.Page) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if len(pages) == 0 {
		return nil
	}
	// Don't create more workers than pages.
	if workers > len(pages) {
		workers = len(pages)
	}

	jobs := make(chan *site.Page, len(pages))
	errCh := make(chan error, 1) // buffered so the first error doesn't block
	var once sync.Once           // ensure we only send one error
	var wg sync.WaitGroup

	// Start workers.
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range jobs {
				if err := fn(page); err != nil {
					once.Do(func() {
						errCh <- fmt.Errorf("processing page %s: %w", page.SourcePath, err)
					})
					return
				}
			}
		}()
	}

	// Send jobs.
	for _, p := range pages {
		jobs <- p
	}
	close(jobs)

	// Wait for workers to finish.
	wg.Wait()
	close(errCh)

	// Return the first error, if any.
	if err, ok := <-errCh; ok {
		return err
	}
	return nil
}
