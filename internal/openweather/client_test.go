package openweather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingAPIKey(t *testing.T) {
	c := New()

	_, err := c.Current(context.Background(), 10.7, 122.9)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	_, err = c.Geocode(context.Background(), "Bacolod,PH")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestCurrentParsesPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "test-key", r.URL.Query().Get("appid"))
		w.Write([]byte(`{
			"dt": 1705276800,
			"main": {"temp": 29.4, "humidity": 74},
			"wind": {"speed": 3.6},
			"sys": {"sunrise": 1705269600, "sunset": 1705311000},
			"weather": [{"id": 801, "main": "Clouds", "description": "few clouds"}]
		}`))
	}))
	defer srv.Close()

	c := New(ApiKeyOption("test-key"), BaseUrlOption(srv.URL))
	cur, err := c.Current(context.Background(), 10.7, 122.9)
	require.NoError(t, err)

	require.NotNil(t, cur.Main)
	assert.Equal(t, 29.4, *cur.Main.Temp)
	assert.Equal(t, 74.0, *cur.Main.Humidity)
	require.NotNil(t, cur.Sys)
	assert.Equal(t, int64(1705269600), *cur.Sys.Sunrise)
	require.Len(t, cur.Weather, 1)
	assert.Equal(t, "few clouds", cur.Weather[0].Description)
}

func TestCurrentPartialPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"dt": 1705276800, "main": {"temp": 29.4}}`))
	}))
	defer srv.Close()

	c := New(ApiKeyOption("test-key"), BaseUrlOption(srv.URL))
	cur, err := c.Current(context.Background(), 10.7, 122.9)
	require.NoError(t, err)

	require.NotNil(t, cur.Main)
	assert.Nil(t, cur.Main.Humidity)
	assert.Nil(t, cur.Wind)
	assert.Nil(t, cur.Sys)
	assert.Empty(t, cur.Weather)
}

func TestNonSuccessStatusIsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer srv.Close()

	c := New(ApiKeyOption("bad"), BaseUrlOption(srv.URL))
	_, err := c.Forecast(context.Background(), 10.7, 122.9)

	var se StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Contains(t, string(se.Body), "Invalid API key")
}

func TestGeocodeEmptyResultIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/geo/1.0/direct", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(ApiKeyOption("test-key"), BaseUrlOption(srv.URL))
	results, err := c.Geocode(context.Background(), "Atlantis")
	require.NoError(t, err)
	assert.Empty(t, results)
}
