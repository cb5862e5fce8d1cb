package places

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(baseURL string) *Client {
	return &Client{
		apiKey:  "test-key",
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

// TestFetchRestaurants_ParsesStream tests a full event stream with progress,
// a complete event, and restaurant parsing.
func TestFetchRestaurants_ParsesStream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("expected X-API-Key header, got %q", r.Header.Get("X-API-Key"))
		}
		w.Header().Set("Content-Type", "text/event-stream")

		fmt.Fprint(w, "data: {\"type\":\"PROGRESS\",\"purpose\":\"Searching restaurants...\"}\n\n")
		fmt.Fprint(w, "data: not-json\n\n")
		fmt.Fprint(w, `data: {"type":"COMPLETE","status":"COMPLETED","resultJson":{"restaurants":[{"name":"Luigi's","address":"12 Main St","rating":4.5,"review_count":320,"price_level":"$$","reviews":[{"author":"Sam","rating":5,"text":"The carbonara was amazing"}]}]}}`)
		fmt.Fprint(w, "\n\n")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	var updates []string
	restaurants, raw, err := client.FetchRestaurants(context.Background(), Query{
		Location: "Brooklyn",
		Cuisine:  "italian",
		MealTime: "dinner",
	}, func(msg string) {
		updates = append(updates, msg)
	})
	if err != nil {
		t.Fatalf("FetchRestaurants failed: %v", err)
	}

	if len(restaurants) != 1 {
		t.Fatalf("expected 1 restaurant, got %d", len(restaurants))
	}
	r := restaurants[0]
	if r.Name != "Luigi's" {
		t.Errorf("expected name Luigi's, got %q", r.Name)
	}
	if r.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", r.Rating)
	}
	if len(r.Reviews) != 1 || r.Reviews[0].Text != "The carbonara was amazing" {
		t.Errorf("unexpected reviews: %+v", r.Reviews)
	}

	if len(updates) != 1 || updates[0] != "Searching restaurants..." {
		t.Errorf("unexpected progress updates: %v", updates)
	}

	if len(raw) == 0 {
		t.Error("expected raw result payload to be returned")
	}
}

// TestFetchRestaurants_ErrorEvent tests that an ERROR event aborts the fetch
func TestFetchRestaurants_ErrorEvent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"type\":\"ERROR\",\"message\":\"no restaurants found\"}\n\n")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, _, err := client.FetchRestaurants(context.Background(), Query{Location: "Nowhere"}, nil)
	if err == nil {
		t.Fatal("expected error from ERROR event")
	}
}

// TestFetchRestaurants_NoResult tests a stream that ends without COMPLETE
func TestFetchRestaurants_NoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "data: {\"type\":\"PROGRESS\",\"purpose\":\"Working...\"}\n\n")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)

	_, _, err := client.FetchRestaurants(context.Background(), Query{Location: "Brooklyn"}, nil)
	if err == nil {
		t.Fatal("expected error when stream has no COMPLETE event")
	}
}

// TestFetchRestaurants_MissingAPIKey tests config validation
func TestFetchRestaurants_MissingAPIKey(t *testing.T) {
	client := &Client{baseURL: "http://localhost:1", http: http.DefaultClient}

	_, _, err := client.FetchRestaurants(context.Background(), Query{}, nil)
	if err == nil {
		t.Fatal("expected error for missing api key")
	}
}

// TestParseResult_NestedOutput tests the alternate payload shape
func TestParseResult_NestedOutput(t *testing.T) {
	raw := []byte(`{"output":{"restaurants":[{"name":"Taqueria Norte","address":"5 Elm"}]}}`)

	restaurants, err := parseResult(raw)
	if err != nil {
		t.Fatalf("parseResult failed: %v", err)
	}
	if len(restaurants) != 1 || restaurants[0].Name != "Taqueria Norte" {
		t.Errorf("unexpected restaurants: %+v", restaurants)
	}
}
