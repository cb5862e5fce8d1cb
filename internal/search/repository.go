package search

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("search not found")

type Repository interface {
	SaveSearch(ctx context.Context, record *SearchRecord, restaurants []RestaurantResult) error
	GetSearch(ctx context.Context, searchID string) (*SearchRecord, []RestaurantResult, error)
	History(ctx context.Context, limit int) ([]HistoryItem, error)

	// Cache entries map a query key to a completed search until they expire.
	GetCachedSearchID(ctx context.Context, cacheKey string) (string, error)
	SetCache(ctx context.Context, cacheKey, searchID string, expiresAt time.Time) error
	DeleteExpiredCache(ctx context.Context) (int64, error)
}
