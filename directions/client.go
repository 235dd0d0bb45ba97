package directions

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Route is what the itinerary editor needs from a routing lookup: a
// human-readable distance plus the raw driving time in seconds.
type Route struct {
	DistanceText    string `json:"distanceText"`
	DistanceMeters  int    `json:"distanceMeters"`
	DurationSeconds int    `json:"durationSeconds"`
}

// Client talks to an OSRM-compatible routing server.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	base := os.Getenv("ROUTING_URL")
	if base == "" {
		base = "https://router.project-osrm.org"
	}
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"routes"`
}

// Lookup fetches the fastest driving route between two "lon,lat" pairs.
func (c *Client) Lookup(ctx context.Context, from, to string) (*Route, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%s;%s?overview=false",
		c.BaseURL, url.PathEscape(from), url.PathEscape(to))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing server returned %d", resp.StatusCode)
	}

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("no route found")
	}

	meters := int(body.Routes[0].Distance)
	return &Route{
		DistanceText:    formatDistance(meters),
		DistanceMeters:  meters,
		DurationSeconds: int(body.Routes[0].Duration),
	}, nil
}

func formatDistance(meters int) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}
