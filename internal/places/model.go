package places

import "github.com/yash-kalathiya/food-spotz/internal/dishes"

// Query describes a restaurant lookup sent to the places provider.
type Query struct {
	Location string
	Cuisine  string
	MealTime string
}

// Restaurant is one venue returned by the provider, with its raw diner reviews.
type Restaurant struct {
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Rating       float64         `json:"rating"`
	TotalReviews int             `json:"review_count"`
	PriceLevel   string          `json:"price_level"`
	Phone        string          `json:"phone"`
	Website      string          `json:"website"`
	Hours        string          `json:"hours"`
	Reviews      []dishes.Review `json:"reviews"`
}
