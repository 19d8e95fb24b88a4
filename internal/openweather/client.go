package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdelacruz/weatherboard/internal/common"
	"github.com/sony/gobreaker"
)

const (
	defaultBaseUrl = "https://api.openweathermap.org"
	defaultTimeout = 12 * time.Second

	geocodePath  = "/geo/1.0/direct"
	currentPath  = "/data/2.5/weather"
	forecastPath = "/data/2.5/forecast"
)

// ErrMissingAPIKey is returned by every call when no credential is
// configured. It is checked per call rather than at construction so the
// process can still start and serve its disabled routes without a key.
var ErrMissingAPIKey = errors.New("missing openweather api key")

// StatusError is a non-2xx response from openweather, carrying the provider's
// status code and raw body so the caller can relay both.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e StatusError) Error() string {
	return fmt.Sprintf("error code %v returned from openweather", e.StatusCode)
}

type ClientOption func(*Client)

func ApiKeyOption(apiKey string) ClientOption {
	return func(c *Client) {
		c.apiKey = apiKey
	}
}

func BaseUrlOption(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = baseUrl
	}
}

func HttpClientOption(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

type Client struct {
	apiKey  string
	baseUrl string
	hc      *http.Client
	cb      *gobreaker.CircuitBreaker
}

func New(opts ...ClientOption) *Client {
	c := &Client{
		baseUrl: defaultBaseUrl,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc == nil {
		c.hc = &http.Client{Timeout: defaultTimeout}
	}
	c.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return c
}

// Geocode resolves a free-text query to candidate locations. An empty slice
// means the provider had no match for the query, which is not an error.
func (c *Client) Geocode(ctx context.Context, query string) ([]GeoResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", "1")

	var results []GeoResult
	if err := c.get(ctx, geocodePath, q, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Current fetches current conditions in metric units.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*CurrentResponse, error) {
	var resp CurrentResponse
	if err := c.get(ctx, currentPath, coordQuery(lat, lon), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Forecast fetches the 5-day/3-hour forecast in metric units.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*ForecastResponse, error) {
	var resp ForecastResponse
	if err := c.get(ctx, forecastPath, coordQuery(lat, lon), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func coordQuery(lat, lon float64) url.Values {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	return q
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	req, err := url.Parse(c.baseUrl + path)
	if err != nil {
		return fmt.Errorf("failed to parse openweather url %s%s: %w", c.baseUrl, path, err)
	}
	q.Set("appid", c.apiKey)
	req.RawQuery = q.Encode()

	ctxReq, _ := http.NewRequestWithContext(ctx, http.MethodGet, req.String(), nil)
	resp, err := common.Do(c.hc, c.cb, ctxReq)
	if err != nil {
		return err
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error reading openweather response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return StatusError{StatusCode: resp.StatusCode, Body: body}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error unmarshalling response from openweather: %w", err)
	}
	return nil
}
