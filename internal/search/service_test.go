package search

import (
	"context"
	"errors"
	"testing"

	"github.com/yash-kalathiya/food-spotz/internal/dishes"
	"github.com/yash-kalathiya/food-spotz/internal/geocode"
	"github.com/yash-kalathiya/food-spotz/internal/places"
)

type stubProvider struct {
	restaurants []places.Restaurant
	err         error
	calls       int
}

func (s *stubProvider) FetchRestaurants(ctx context.Context, q places.Query, progress func(string)) ([]places.Restaurant, []byte, error) {
	s.calls++
	if progress != nil {
		progress("stub fetch")
	}
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.restaurants, []byte(`{"restaurants":[]}`), nil
}

type stubGeocoder struct {
	place *geocode.Place
	err   error
}

func (s *stubGeocoder) Resolve(ctx context.Context, location string) (*geocode.Place, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.place, nil
}

func newTestService(t *testing.T, provider places.Provider) (*Service, *MemoryRepository) {
	t.Helper()

	vocab, err := dishes.DefaultVocabulary()
	if err != nil {
		t.Fatalf("failed to load vocabulary: %v", err)
	}
	engine, err := dishes.NewEngine(vocab)
	if err != nil {
		t.Fatalf("failed to build engine: %v", err)
	}

	repo := NewMemoryRepository()
	geocoder := &stubGeocoder{place: &geocode.Place{Latitude: 40.65, Longitude: -73.95}}

	return NewService(repo, provider, geocoder, engine, nil), repo
}

func sampleRestaurants() []places.Restaurant {
	return []places.Restaurant{
		{
			Name:    "Luigi's Trattoria",
			Address: "12 Main St",
			Rating:  4.5,
			Reviews: []dishes.Review{
				{Text: "The carbonara was amazing, best pasta in the neighborhood."},
				{Text: "Loved the carbonara. Service was slow though."},
			},
		},
	}
}

// TestSearch_LiveFlow tests a full live search with ranking and persistence
func TestSearch_LiveFlow(t *testing.T) {
	provider := &stubProvider{restaurants: sampleRestaurants()}
	service, _ := newTestService(t, provider)

	resp, err := service.Search(context.Background(), SearchRequest{
		MealTime: "dinner",
		Cuisine:  "italian",
		Location: "Brooklyn, NY",
	}, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if !resp.Success {
		t.Error("expected success response")
	}
	if resp.Source != "live" {
		t.Errorf("expected source live, got %q", resp.Source)
	}
	if len(resp.SearchID) != 12 {
		t.Errorf("expected 12-char search id, got %q", resp.SearchID)
	}
	if len(resp.Restaurants) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(resp.Restaurants))
	}

	top := resp.Restaurants[0].TopDishes
	if len(top) == 0 {
		t.Fatal("expected ranked dishes, got none")
	}
	if top[0].Name != "Carbonara" {
		t.Errorf("expected Carbonara as top dish, got %q", top[0].Name)
	}
	if resp.Query.Latitude == nil || *resp.Query.Latitude != 40.65 {
		t.Error("expected geocoded latitude on response query")
	}
}

// TestSearch_CacheHit tests that a repeated query is served from cache
func TestSearch_CacheHit(t *testing.T) {
	provider := &stubProvider{restaurants: sampleRestaurants()}
	service, _ := newTestService(t, provider)

	req := SearchRequest{MealTime: "dinner", Cuisine: "italian", Location: "Brooklyn, NY"}

	first, err := service.Search(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("first Search failed: %v", err)
	}

	second, err := service.Search(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("second Search failed: %v", err)
	}

	if second.Source != "cache" {
		t.Errorf("expected source cache, got %q", second.Source)
	}
	if second.SearchID != first.SearchID {
		t.Errorf("expected cached search id %q, got %q", first.SearchID, second.SearchID)
	}
	if provider.calls != 1 {
		t.Errorf("expected 1 provider call, got %d", provider.calls)
	}
}

// TestSearch_InvalidMealTime tests request validation
func TestSearch_InvalidMealTime(t *testing.T) {
	service, _ := newTestService(t, &stubProvider{})

	_, err := service.Search(context.Background(), SearchRequest{
		MealTime: "supper",
		Cuisine:  "italian",
		Location: "Brooklyn",
	}, nil)
	if err == nil {
		t.Fatal("expected error for invalid mealtime")
	}
}

// TestSearch_MissingFields tests that location and cuisine are required
func TestSearch_MissingFields(t *testing.T) {
	service, _ := newTestService(t, &stubProvider{})

	if _, err := service.Search(context.Background(), SearchRequest{
		MealTime: "dinner", Cuisine: "italian",
	}, nil); err == nil {
		t.Error("expected error for missing location")
	}

	if _, err := service.Search(context.Background(), SearchRequest{
		MealTime: "dinner", Location: "Brooklyn",
	}, nil); err == nil {
		t.Error("expected error for missing cuisine")
	}
}

// TestSearch_ProviderError tests propagation of provider failures
func TestSearch_ProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("upstream down")}
	service, _ := newTestService(t, provider)

	_, err := service.Search(context.Background(), SearchRequest{
		MealTime: "lunch", Cuisine: "thai", Location: "Austin, TX",
	}, nil)
	if err == nil {
		t.Fatal("expected provider error to propagate")
	}
}

// TestSearch_GeocodeFailureDegrades tests that a geocoding failure does not
// fail the search
func TestSearch_GeocodeFailureDegrades(t *testing.T) {
	provider := &stubProvider{restaurants: sampleRestaurants()}
	service, _ := newTestService(t, provider)
	service.geocoder = &stubGeocoder{err: errors.New("geocoder down")}

	resp, err := service.Search(context.Background(), SearchRequest{
		MealTime: "dinner", Cuisine: "italian", Location: "Brooklyn, NY",
	}, nil)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if resp.Query.Latitude != nil {
		t.Error("expected no coordinates when geocoding fails")
	}
}

// TestSearch_ProgressForwarded tests progress callbacks reach the caller
func TestSearch_ProgressForwarded(t *testing.T) {
	provider := &stubProvider{restaurants: sampleRestaurants()}
	service, _ := newTestService(t, provider)

	var updates []string
	_, err := service.Search(context.Background(), SearchRequest{
		MealTime: "dinner", Cuisine: "italian", Location: "Brooklyn, NY",
	}, func(msg string) {
		updates = append(updates, msg)
	})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(updates) == 0 {
		t.Error("expected progress updates during live search")
	}
}

// TestGetSearch_NotFound tests replay of a missing search
func TestGetSearch_NotFound(t *testing.T) {
	service, _ := newTestService(t, &stubProvider{})

	_, err := service.GetSearch(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

// TestHistory_Limit tests that history respects bounds and ordering
func TestHistory_Limit(t *testing.T) {
	provider := &stubProvider{restaurants: sampleRestaurants()}
	service, _ := newTestService(t, provider)

	cuisines := []string{"italian", "thai", "mexican"}
	for _, cuisine := range cuisines {
		if _, err := service.Search(context.Background(), SearchRequest{
			MealTime: "dinner", Cuisine: cuisine, Location: "Brooklyn, NY",
		}, nil); err != nil {
			t.Fatalf("Search(%s) failed: %v", cuisine, err)
		}
	}

	items, err := service.History(context.Background(), 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	// Newest first
	if items[0].Cuisine != "mexican" {
		t.Errorf("expected newest search first, got %q", items[0].Cuisine)
	}

	// Bad limits fall back to the default
	all, err := service.History(context.Background(), -1)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(all) != len(cuisines) {
		t.Errorf("expected %d items with default limit, got %d", len(cuisines), len(all))
	}
}
