package task

import (
	"context"
	"fmt"
	"sync"

	"github.com/physgen/gravgen/internal/config"
	"github.com/physgen/gravgen/internal/storage"
)

// Batch fans task generation out over a fixed pool of workers. Each
// worker gets its own Generator seeded from seedStart plus the worker
// index, so a batch is reproducible for a given seed and worker count.
type Batch struct {
	cfg       *config.Config
	store     *storage.Store
	workers   int
	seedStart int64
}

func NewBatch(cfg *config.Config, store *storage.Store, workers int, seedStart int64) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{cfg: cfg, store: store, workers: workers, seedStart: seedStart}
}

// Run generates cfg.NumSamples tasks and returns their metadata in
// index order. Worker w handles indices w, w+workers, w+2*workers and
// so on.
func (b *Batch) Run(ctx context.Context) ([]*TaskPair, error) {
	n := b.cfg.NumSamples
	pairs := make([]*TaskPair, n)
	errs := make([]error, b.workers)

	var wg sync.WaitGroup
	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			gen, err := NewGenerator(b.cfg, b.seedStart+int64(worker), b.store)
			if err != nil {
				errs[worker] = err
				return
			}

			for idx := worker; idx < n; idx += b.workers {
				select {
				case <-ctx.Done():
					errs[worker] = ctx.Err()
					return
				default:
				}

				id := fmt.Sprintf("%s_%04d", b.cfg.Domain, idx)
				pairs[idx], err = gen.GenerateTask(id)
				if err != nil {
					errs[worker] = fmt.Errorf("worker %d: %w", worker, err)
					return
				}
			}
		}(w)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return pairs, nil
}
