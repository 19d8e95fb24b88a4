package weatherboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdelacruz/weatherboard/internal/cache"
	"github.com/pdelacruz/weatherboard/internal/geocode"
	"github.com/pdelacruz/weatherboard/internal/openweather"
	"go.uber.org/zap"
)

const (
	currentTTL  = 60 * time.Second
	forecastTTL = 180 * time.Second
)

// Fetcher is a read-through cache in front of the weather endpoints, keyed by
// coordinates rounded to four decimals so equivalent requests share entries.
type Fetcher struct {
	ow    *openweather.Client
	store cache.Store

	Logger *zap.SugaredLogger
}

func NewFetcher(ow *openweather.Client, store cache.Store, logger *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		ow:     ow,
		store:  store,
		Logger: logger,
	}
}

// Current returns current conditions, cached for a minute.
func (f *Fetcher) Current(ctx context.Context, coords geocode.Coordinates) (*openweather.CurrentResponse, error) {
	key := fmt.Sprintf("wx:current:%.4f:%.4f", coords.Lat, coords.Lon)

	if raw, ok := f.store.Get(ctx, key); ok {
		var cur openweather.CurrentResponse
		if err := json.Unmarshal(raw, &cur); err == nil {
			return &cur, nil
		}
	}

	cur, err := f.ow.Current(ctx, coords.Lat, coords.Lon)
	if err != nil {
		return nil, err
	}
	f.put(ctx, key, cur, currentTTL)
	return cur, nil
}

// Forecast returns the 5-day/3-hour feed, cached for three minutes.
func (f *Fetcher) Forecast(ctx context.Context, coords geocode.Coordinates) (*openweather.ForecastResponse, error) {
	key := fmt.Sprintf("wx:fcst:%.4f:%.4f", coords.Lat, coords.Lon)

	if raw, ok := f.store.Get(ctx, key); ok {
		var fc openweather.ForecastResponse
		if err := json.Unmarshal(raw, &fc); err == nil {
			return &fc, nil
		}
	}

	fc, err := f.ow.Forecast(ctx, coords.Lat, coords.Lon)
	if err != nil {
		return nil, err
	}
	f.put(ctx, key, fc, forecastTTL)
	return fc, nil
}

func (f *Fetcher) put(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err != nil {
		f.Logger.Warnw("could not encode cache entry", "key", key, "error", err.Error())
		return
	}
	f.store.Set(ctx, key, raw, ttl)
}
