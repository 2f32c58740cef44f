package storage

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// CleanerConfig controls the concurrency characteristics of the cleaner.
type CleanerConfig struct {
	QueueSize int
	Workers   int
}

// AssetCleaner deletes superseded media assets in the background. Handlers
// enqueue the old location only after the replacement has been committed, so
// a crashed deletion leaves at worst an orphaned object, never a record that
// points at nothing.
type AssetCleaner struct {
	store  MediaStore
	logger *slog.Logger

	jobs   chan string
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

var errCleanerClosed = errors.New("asset cleaner closed")

// NewAssetCleaner starts a worker pool that removes assets from the store.
func NewAssetCleaner(store MediaStore, cfg CleanerConfig, logger *slog.Logger) *AssetCleaner {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 16
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &AssetCleaner{
		store:  store,
		logger: logger,
		jobs:   make(chan string, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
	}

	c.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go c.worker()
	}

	return c
}

// Enqueue schedules deletion of the asset at location. Empty locations are a
// no-op so callers can pass through optional fields unconditionally.
func (c *AssetCleaner) Enqueue(ctx context.Context, location string) error {
	if location == "" {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return errCleanerClosed
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-c.ctx.Done():
		return errCleanerClosed
	case c.jobs <- location:
		return nil
	}
}

// Shutdown waits for the worker pool to drain outstanding jobs.
func (c *AssetCleaner) Shutdown(ctx context.Context) error {
	c.once.Do(func() {
		c.cancel()
		close(c.jobs)
	})

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (c *AssetCleaner) worker() {
	defer c.wg.Done()

	for {
		select {
		case <-c.ctx.Done():
			return
		case location, ok := <-c.jobs:
			if !ok {
				return
			}
			c.remove(location)
		}
	}
}

func (c *AssetCleaner) remove(location string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.store.Remove(ctx, location); err != nil {
		c.logger.Error("asset cleanup failed", "location", location, "error", err)
	}
}
