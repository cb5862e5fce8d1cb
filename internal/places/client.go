package places

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
)

// Provider fetches restaurants with reviews for a query. progress may be nil;
// when set it receives human-readable status lines as the fetch advances.
type Provider interface {
	FetchRestaurants(ctx context.Context, q Query, progress func(string)) ([]Restaurant, []byte, error)
}

type Client struct {
	apiKey  string
	baseURL string
	proxies []string
	http    *http.Client
}

func NewClient() *Client {
	var proxies []string
	for _, p := range strings.Split(os.Getenv("PLACES_PROXY_LIST"), ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}

	return &Client{
		apiKey:  os.Getenv("PLACES_API_KEY"),
		baseURL: os.Getenv("PLACES_BASE_URL"),
		proxies: proxies,
		http:    &http.Client{Timeout: 300 * time.Second},
	}
}

// proxyConfig picks a random proxy from the configured list, falling back to
// the provider's own US pool when none are configured.
func (c *Client) proxyConfig() map[string]any {
	if len(c.proxies) == 0 {
		return map[string]any{
			"enabled":      true,
			"country_code": "US",
		}
	}
	return map[string]any{
		"enabled": true,
		"server":  c.proxies[rand.Intn(len(c.proxies))],
	}
}

func buildGoal(q Query) string {
	return fmt.Sprintf(`Search for %q restaurants near %q for %s.

For each of the top 3 restaurants in the search results, get: restaurant name,
full address, rating (out of 5), number of reviews, price range ($, $$, $$$, $$$$),
and up to 10 recent diner reviews with author, star rating, and full review text.

Return JSON in this exact format:
{
    "restaurants": [
        {
            "name": "Restaurant Name",
            "address": "Full Address",
            "rating": 4.5,
            "review_count": 500,
            "price_level": "$$",
            "reviews": [
                {"author": "Name", "rating": 5, "text": "Full review text"}
            ]
        }
    ]
}`, q.Cuisine, q.Location, q.MealTime)
}

// sseEvent is one "data:" frame from the provider's event stream.
type sseEvent struct {
	Type       string          `json:"type"`
	Purpose    string          `json:"purpose"`
	Status     string          `json:"status"`
	Message    string          `json:"message"`
	ResultJSON json.RawMessage `json:"resultJson"`
}

// FetchRestaurants runs one provider job and waits for its COMPLETE event.
// It returns the parsed restaurants and the raw result payload for archival.
func (c *Client) FetchRestaurants(ctx context.Context, q Query, progress func(string)) ([]Restaurant, []byte, error) {
	if c.apiKey == "" {
		return nil, nil, errors.New("missing PLACES_API_KEY")
	}
	if c.baseURL == "" {
		return nil, nil, errors.New("missing PLACES_BASE_URL")
	}

	payload := map[string]any{
		"url":             "https://www.opentable.com",
		"goal":            buildGoal(q),
		"browser_profile": "stealth",
		"proxy_config":    c.proxyConfig(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/automation/run-sse",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("places api error: status %d", resp.StatusCode)
	}

	var result json.RawMessage

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		var ev sseEvent
		if err := json.Unmarshal([]byte(line[6:]), &ev); err != nil {
			continue
		}

		switch ev.Type {
		case "PROGRESS":
			if progress != nil && ev.Purpose != "" {
				progress(ev.Purpose)
			}
		case "COMPLETE":
			result = ev.ResultJSON
		case "ERROR":
			return nil, nil, fmt.Errorf("places provider error: %s", ev.Message)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	if len(result) == 0 {
		return nil, nil, errors.New("no result from places provider")
	}

	restaurants, err := parseResult(result)
	if err != nil {
		return nil, nil, err
	}

	return restaurants, result, nil
}

// parseResult unpacks the provider payload. Some runs nest the restaurants
// list under an "output" key.
func parseResult(raw json.RawMessage) ([]Restaurant, error) {
	var direct struct {
		Restaurants []Restaurant `json:"restaurants"`
	}
	if err := json.Unmarshal(raw, &direct); err != nil {
		return nil, fmt.Errorf("invalid provider payload: %w", err)
	}
	if len(direct.Restaurants) > 0 {
		return direct.Restaurants, nil
	}

	var nested struct {
		Output struct {
			Restaurants []Restaurant `json:"restaurants"`
		} `json:"output"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil && len(nested.Output.Restaurants) > 0 {
		return nested.Output.Restaurants, nil
	}

	return nil, errors.New("provider payload contained no restaurants")
}
