package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":12345.6,"duration":2220.4}]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	route, err := c.Lookup(context.Background(), "139.76,35.68", "135.50,34.69")
	require.NoError(t, err)

	assert.Equal(t, "12.3 km", route.DistanceText)
	assert.Equal(t, 12345, route.DistanceMeters)
	assert.Equal(t, 2220, route.DurationSeconds)
}

func TestLookupNoRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	_, err := c.Lookup(context.Background(), "0,0", "1,1")
	assert.Error(t, err)
}

func TestFormatDistance(t *testing.T) {
	assert.Equal(t, "850 m", formatDistance(850))
	assert.Equal(t, "1.0 km", formatDistance(1000))
	assert.Equal(t, "12.3 km", formatDistance(12345))
}
