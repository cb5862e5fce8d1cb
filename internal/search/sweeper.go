package search

import (
	"context"
	"log"
	"time"
)

// CacheStore is the slice of Repository the sweeper needs.
type CacheStore interface {
	DeleteExpiredCache(ctx context.Context) (int64, error)
}

// StartSweeper deletes expired cache entries on an interval until ctx is
// cancelled.
func StartSweeper(ctx context.Context, store CacheStore, interval time.Duration) {
	go func() {
		log.Println("Cache sweeper started")

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("Cache sweeper stopped")
				return
			case <-ticker.C:
				deleted, err := store.DeleteExpiredCache(ctx)
				if err != nil {
					log.Printf("SWEEPER_FAILED err=%v", err)
					continue
				}
				if deleted > 0 {
					log.Printf("SWEEPER_DONE deleted=%d", deleted)
				}
			}
		}
	}()
}
