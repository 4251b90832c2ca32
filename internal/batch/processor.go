// Package batch renders manifest entries to sprite files with a worker pool.
package batch

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"pz-icon-renderer/internal/config"
	"pz-icon-renderer/internal/log"
	"pz-icon-renderer/internal/manifest"
	"pz-icon-renderer/internal/texture"
)

var logger = log.New("batch")

// Config holds all shared resources for a batch run.
type Config struct {
	Settings config.Config
	Index    *texture.Index
	Textures *texture.Cache
	Wheel    *WheelSource
	Progress time.Duration // progress report interval; 0 disables
}

// NewConfig prepares the shared resources for settings.
func NewConfig(settings config.Config) Config {
	return Config{
		Settings: settings,
		Index:    texture.NewIndex(),
		Textures: texture.NewCache(),
		Wheel:    &WheelSource{MeshPath: settings.WheelMesh, TexturePath: settings.WheelTexture},
		Progress: 2 * time.Second,
	}
}

// Result holds the outcome of processing one entry.
type Result struct {
	ID      string
	Name    string   // file name stem
	Images  []string // written files, relative to the output directory
	Skipped bool
	Error   string
}

// Success reports whether every image of the entry was written.
func (r Result) Success() bool {
	return !r.Skipped && r.Error == ""
}

// Run processes all items using a worker pool. Results are in item order.
func Run(ctx context.Context, cfg Config, items []manifest.Item) []Result {
	total := len(items)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Settings.Workers
	if workers < 1 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Progress)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						logger.Noticef("[%d/%d] %.1f items/sec", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	itemChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				if err := ctx.Err(); err != nil {
					results[idx] = Result{ID: items[idx].ID, Error: err.Error()}
				} else {
					results[idx] = processItem(ctx, cfg, items[idx])
				}
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range items {
		itemChan <- i
	}
	close(itemChan)

	wg.Wait()
	close(done)

	return results
}

func processItem(ctx context.Context, cfg Config, item manifest.Item) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("%s: %v", item.ID, r)
			res = Result{ID: item.ID, Error: fmt.Sprintf("panic: %v", r)}
		}
	}()

	if cfg.Settings.Kind == config.Vehicles {
		return renderVehicle(ctx, cfg, item)
	}
	return renderModel(ctx, cfg, item)
}

// entryRand returns the random source of one entry. It depends only on the
// run seed and the id, so results do not depend on worker scheduling.
func entryRand(seed int64, id string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(id))
	return rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
}

// Summary counts results by outcome.
func Summary(results []Result) (ok, skipped, failed int) {
	for _, r := range results {
		switch {
		case r.Skipped:
			skipped++
		case r.Error != "":
			failed++
		default:
			ok++
		}
	}
	return ok, skipped, failed
}
