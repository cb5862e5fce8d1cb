package search

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yash-kalathiya/food-spotz/internal/dishes"
	"github.com/yash-kalathiya/food-spotz/internal/geocode"
	"github.com/yash-kalathiya/food-spotz/internal/places"
)

// Geocoder resolves free-text locations. Failures degrade gracefully: the
// search proceeds with the raw location string.
type Geocoder interface {
	Resolve(ctx context.Context, location string) (*geocode.Place, error)
}

// Archiver stores raw provider payloads. A nil Archiver disables archival.
type Archiver interface {
	PutJSON(ctx context.Context, key string, payload []byte) (string, error)
}

type Service struct {
	repo     Repository
	provider places.Provider
	geocoder Geocoder
	engine   *dishes.Engine
	archive  Archiver
}

func NewService(
	repo Repository,
	provider places.Provider,
	geocoder Geocoder,
	engine *dishes.Engine,
	archive Archiver,
) *Service {
	return &Service{
		repo:     repo,
		provider: provider,
		geocoder: geocoder,
		engine:   engine,
		archive:  archive,
	}
}

// newSearchID returns a short opaque search identifier.
func newSearchID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// --------------------------------------------------
// Search: cache-first dish discovery
// --------------------------------------------------
func (s *Service) Search(ctx context.Context, req SearchRequest, progress func(string)) (*SearchResponse, error) {
	mealtime, err := ParseMealTime(req.MealTime)
	if err != nil {
		return nil, err
	}
	req.MealTime = mealtime

	if strings.TrimSpace(req.Location) == "" {
		return nil, errors.New("location is required")
	}
	if strings.TrimSpace(req.Cuisine) == "" {
		return nil, errors.New("cuisine is required")
	}

	key := CacheKey(req.Location, req.Cuisine, req.MealTime)

	if searchID, err := s.repo.GetCachedSearchID(ctx, key); err == nil {
		record, restaurants, err := s.repo.GetSearch(ctx, searchID)
		if err == nil {
			if progress != nil {
				progress("Found recent results for this search")
			}
			return buildResponse(record, restaurants, "cache"), nil
		}
		// Cache row points at a missing search, fall through to a live fetch
		log.Printf("SEARCH_CACHE_STALE search_id=%s err=%v", searchID, err)
	}

	return s.liveSearch(ctx, req, key, progress)
}

func (s *Service) liveSearch(ctx context.Context, req SearchRequest, cacheKey string, progress func(string)) (*SearchResponse, error) {
	if s.geocoder != nil && (req.Latitude == nil || req.Longitude == nil) {
		if place, err := s.geocoder.Resolve(ctx, req.Location); err == nil {
			req.Latitude = &place.Latitude
			req.Longitude = &place.Longitude
		} else {
			log.Printf("SEARCH_GEOCODE_FAILED location=%q err=%v", req.Location, err)
		}
	}

	if progress != nil {
		progress(fmt.Sprintf("Searching %s restaurants near %s...", req.Cuisine, req.Location))
	}

	restaurants, raw, err := s.provider.FetchRestaurants(ctx, places.Query{
		Location: req.Location,
		Cuisine:  req.Cuisine,
		MealTime: req.MealTime,
	}, progress)
	if err != nil {
		return nil, fmt.Errorf("restaurant lookup failed: %w", err)
	}
	if len(restaurants) == 0 {
		return nil, errors.New("no restaurants found")
	}

	if progress != nil {
		progress("Ranking dishes from diner reviews...")
	}

	results := make([]RestaurantResult, 0, len(restaurants))
	for _, r := range restaurants {
		results = append(results, RestaurantResult{
			Name:         r.Name,
			Address:      r.Address,
			Rating:       r.Rating,
			TotalReviews: r.TotalReviews,
			PriceLevel:   r.PriceLevel,
			Phone:        r.Phone,
			Website:      r.Website,
			Hours:        r.Hours,
			CuisineType:  req.Cuisine,
			MealTime:     req.MealTime,
			TopDishes:    s.engine.Rank(r.Reviews, dishes.DefaultTopN),
		})
	}

	record := &SearchRecord{
		SearchID:  newSearchID(),
		MealTime:  req.MealTime,
		Cuisine:   req.Cuisine,
		Location:  req.Location,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Source:    "live",
	}

	if err := s.repo.SaveSearch(ctx, record, results); err != nil {
		return nil, fmt.Errorf("failed to save search: %w", err)
	}

	if s.archive != nil && len(raw) > 0 {
		archiveKey := fmt.Sprintf("searches/%s.json", record.SearchID)
		if _, err := s.archive.PutJSON(ctx, archiveKey, raw); err != nil {
			log.Printf("SEARCH_ARCHIVE_FAILED search_id=%s err=%v", record.SearchID, err)
		}
	}

	if err := s.repo.SetCache(ctx, cacheKey, record.SearchID, time.Now().Add(CacheTTL)); err != nil {
		log.Printf("SEARCH_CACHE_WRITE_FAILED search_id=%s err=%v", record.SearchID, err)
	}

	return buildResponse(record, results, "live"), nil
}

// --------------------------------------------------
// Replay a stored search
// --------------------------------------------------
func (s *Service) GetSearch(ctx context.Context, searchID string) (*SearchResponse, error) {
	record, restaurants, err := s.repo.GetSearch(ctx, searchID)
	if err != nil {
		return nil, err
	}
	return buildResponse(record, restaurants, record.Source), nil
}

// --------------------------------------------------
// Manual cache purge (admin fallback, sweeper does this on a timer)
// --------------------------------------------------
func (s *Service) PurgeExpiredCache(ctx context.Context) (int64, error) {
	return s.repo.DeleteExpiredCache(ctx)
}

// --------------------------------------------------
// Recent searches
// --------------------------------------------------
func (s *Service) History(ctx context.Context, limit int) ([]HistoryItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.History(ctx, limit)
}

func buildResponse(record *SearchRecord, restaurants []RestaurantResult, source string) *SearchResponse {
	return &SearchResponse{
		Success:  true,
		Source:   source,
		SearchID: record.SearchID,
		Query: SearchRequest{
			MealTime:  record.MealTime,
			Cuisine:   record.Cuisine,
			Location:  record.Location,
			Latitude:  record.Latitude,
			Longitude: record.Longitude,
		},
		Restaurants: restaurants,
		SearchedAt:  record.CreatedAt,
	}
}
