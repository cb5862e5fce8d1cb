package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/yash-kalathiya/food-spotz/internal/dishes"
)

// Meal times accepted by the search API.
const (
	MealBreakfast = "breakfast"
	MealBrunch    = "brunch"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealLateNight = "late_night"
)

var mealTimes = map[string]bool{
	MealBreakfast: true,
	MealBrunch:    true,
	MealLunch:     true,
	MealDinner:    true,
	MealLateNight: true,
}

// ParseMealTime normalizes and validates a client-supplied meal time.
func ParseMealTime(s string) (string, error) {
	m := strings.ToLower(strings.TrimSpace(s))
	if !mealTimes[m] {
		return "", fmt.Errorf("invalid mealtime %q: must be one of breakfast, brunch, lunch, dinner, late_night", s)
	}
	return m, nil
}

type SearchRequest struct {
	MealTime  string   `json:"mealtime"`
	Cuisine   string   `json:"cuisine"`
	Location  string   `json:"location"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// RestaurantResult is one restaurant with its ranked dishes, as served to
// clients and as persisted.
type RestaurantResult struct {
	Name         string              `json:"name"`
	Address      string              `json:"address"`
	Rating       float64             `json:"rating,omitempty"`
	TotalReviews int                 `json:"total_reviews,omitempty"`
	PriceLevel   string              `json:"price_level,omitempty"`
	Phone        string              `json:"phone,omitempty"`
	Website      string              `json:"website,omitempty"`
	Hours        string              `json:"hours,omitempty"`
	CuisineType  string              `json:"cuisine_type"`
	MealTime     string              `json:"mealtime"`
	SourceURL    string              `json:"source_url,omitempty"`
	TopDishes    []dishes.RankedDish `json:"top_dishes"`
}

// SearchRecord is the persisted summary of one search.
type SearchRecord struct {
	SearchID        string    `json:"search_id"`
	MealTime        string    `json:"mealtime"`
	Cuisine         string    `json:"cuisine"`
	Location        string    `json:"location"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	Source          string    `json:"source"`
	RestaurantCount int       `json:"restaurant_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type SearchResponse struct {
	Success     bool               `json:"success"`
	Source      string             `json:"source"`
	SearchID    string             `json:"search_id"`
	Query       SearchRequest      `json:"query"`
	Restaurants []RestaurantResult `json:"restaurants"`
	SearchedAt  time.Time          `json:"searched_at"`
}

type HistoryItem struct {
	SearchID        string    `json:"search_id"`
	MealTime        string    `json:"mealtime"`
	Cuisine         string    `json:"cuisine"`
	Location        string    `json:"location"`
	RestaurantCount int       `json:"restaurant_count"`
	CreatedAt       time.Time `json:"created_at"`
}
