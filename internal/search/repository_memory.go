package search

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository used in tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[string]*SearchRecord
	results map[string][]RestaurantResult
	order   []string
	cache   map[string]memoryCacheEntry
}

type memoryCacheEntry struct {
	searchID  string
	expiresAt time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[string]*SearchRecord),
		results: make(map[string][]RestaurantResult),
		cache:   make(map[string]memoryCacheEntry),
	}
}

func (m *MemoryRepository) SaveSearch(ctx context.Context, record *SearchRecord, restaurants []RestaurantResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.RestaurantCount = len(restaurants)

	stored := *record
	m.records[record.SearchID] = &stored
	m.results[record.SearchID] = restaurants
	m.order = append(m.order, record.SearchID)
	return nil
}

func (m *MemoryRepository) GetSearch(ctx context.Context, searchID string) (*SearchRecord, []RestaurantResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[searchID]
	if !ok {
		return nil, nil, ErrNotFound
	}

	copied := *record
	return &copied, m.results[searchID], nil
}

func (m *MemoryRepository) History(ctx context.Context, limit int) ([]HistoryItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var items []HistoryItem
	for i := len(m.order) - 1; i >= 0 && len(items) < limit; i-- {
		record := m.records[m.order[i]]
		items = append(items, HistoryItem{
			SearchID:        record.SearchID,
			MealTime:        record.MealTime,
			Cuisine:         record.Cuisine,
			Location:        record.Location,
			RestaurantCount: record.RestaurantCount,
			CreatedAt:       record.CreatedAt,
		})
	}
	return items, nil
}

func (m *MemoryRepository) GetCachedSearchID(ctx context.Context, cacheKey string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.cache[cacheKey]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", ErrNotFound
	}
	return entry.searchID, nil
}

func (m *MemoryRepository) SetCache(ctx context.Context, cacheKey, searchID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache[cacheKey] = memoryCacheEntry{searchID: searchID, expiresAt: expiresAt}
	return nil
}

func (m *MemoryRepository) DeleteExpiredCache(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var deleted int64
	now := time.Now()
	for key, entry := range m.cache {
		if now.After(entry.expiresAt) {
			delete(m.cache, key)
			deleted++
		}
	}
	return deleted, nil
}
