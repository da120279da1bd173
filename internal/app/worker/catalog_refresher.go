package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"algorithm_guessr/internal/domain/model"
	"algorithm_guessr/internal/platform/cache"
)

// CatalogRefresher is the part of the problem service the refresher drives.
type CatalogRefresher interface {
	RefreshCatalog(ctx context.Context) ([]model.RawProblem, error)
}

// CatalogWorker keeps the cached problem catalog warm. Several server
// instances may run one; the cache lock makes sure only one of them hits
// upstream per tick.
type CatalogWorker struct {
	refresher CatalogRefresher
	locks     cache.Store
	interval  time.Duration
	lockKey   string
	lockTTL   time.Duration
}

func NewCatalogWorker(refresher CatalogRefresher, locks cache.Store, interval time.Duration, lockKey string, lockTTL time.Duration) *CatalogWorker {
	return &CatalogWorker{
		refresher: refresher,
		locks:     locks,
		interval:  interval,
		lockKey:   lockKey,
		lockTTL:   lockTTL,
	}
}

// Start refreshes once immediately and then on every tick until ctx is done.
// A non-positive interval disables the worker.
func (w *CatalogWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		log.Println("INFO: Catalog refresher disabled")
		return
	}
	log.Printf("INFO: Catalog refresher started, interval %s", w.interval)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.RefreshOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("INFO: Catalog refresher stopping...")
			return
		case <-ticker.C:
			w.RefreshOnce(ctx)
		}
	}
}

// RefreshOnce refreshes the catalog if no other instance holds the lock.
// It reports whether this call performed a refresh.
func (w *CatalogWorker) RefreshOnce(ctx context.Context) bool {
	release, err := w.locks.Lock(ctx, w.lockKey, w.lockTTL)
	if err != nil {
		if errors.Is(err, cache.ErrLockHeld) {
			log.Printf("INFO: Catalog refresh skipped, lock %s held by another instance", w.lockKey)
		} else {
			log.Printf("ERROR: Failed to acquire catalog lock %s: %v", w.lockKey, err)
		}
		return false
	}
	defer func() {
		// Release even if ctx was cancelled mid-refresh.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := release(releaseCtx); err != nil {
			log.Printf("ERROR: Failed to release catalog lock %s: %v", w.lockKey, err)
		}
	}()

	refreshCtx, cancel := context.WithTimeout(ctx, w.lockTTL)
	defer cancel()

	start := time.Now()
	problems, err := w.refresher.RefreshCatalog(refreshCtx)
	if err != nil {
		log.Printf("WARN: Catalog refresh failed: %v", err)
		return false
	}
	log.Printf("INFO: Catalog refreshed with %d problems in %s", len(problems), time.Since(start).Round(time.Millisecond))
	return true
}
