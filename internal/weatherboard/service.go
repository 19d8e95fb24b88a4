package weatherboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdelacruz/weatherboard/internal/common"
	"github.com/pdelacruz/weatherboard/internal/config"
	"github.com/pdelacruz/weatherboard/internal/forecast"
	"github.com/pdelacruz/weatherboard/internal/geocode"
	"github.com/pdelacruz/weatherboard/internal/openweather"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type SummaryResponse struct {
	City    string              `json:"city"`
	Lat     float64             `json:"lat"`
	Lon     float64             `json:"lon"`
	Current CurrentConditions   `json:"current"`
	Daily   []forecast.DailyRow `json:"daily"`
}

// CurrentConditions is the defensively extracted current snapshot; every
// field is independently nullable when the provider omits it.
type CurrentConditions struct {
	TempC       *float64 `json:"temp_c"`
	Humidity    *float64 `json:"humidity"`
	WindSpeed   *float64 `json:"wind_speed"`
	Sunrise     *string  `json:"sunrise"`
	Sunset      *string  `json:"sunset"`
	Description *string  `json:"description"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Service struct {
	cfg      *config.Config
	resolver *geocode.Resolver
	fetcher  *Fetcher

	Logger *zap.SugaredLogger
}

func New(cfg *config.Config, resolver *geocode.Resolver, fetcher *Fetcher, logger *zap.SugaredLogger) *Service {
	return &Service{
		cfg:      cfg,
		resolver: resolver,
		fetcher:  fetcher,
		Logger:   logger,
	}
}

func (s *Service) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	city := strings.TrimSpace(r.URL.Query().Get("city"))
	resp, err := s.Summary(r.Context(), city)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResponse(w, resp)
}

// Summary resolves the city, fetches current conditions and the forecast,
// and assembles the dashboard payload. An empty city falls back to the
// configured default.
func (s *Service) Summary(ctx context.Context, city string) (*SummaryResponse, error) {
	if city == "" {
		city = s.cfg.DefaultCity
	}

	coords, err := s.resolver.Resolve(ctx, city)
	if err != nil {
		return nil, err
	}

	var cur *openweather.CurrentResponse
	var fc *openweather.ForecastResponse
	g := new(errgroup.Group)

	g.Go(func() error {
		var err error
		cur, err = s.fetcher.Current(ctx, coords)
		return err
	})
	g.Go(func() error {
		var err error
		fc, err = s.fetcher.Forecast(ctx, coords)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Prefer the provider's display name for the resolved place; the raw
	// request text is the fallback.
	name := city
	if fc.City != nil && fc.City.Name != "" {
		name = fc.City.Name
	}

	return &SummaryResponse{
		City:    name,
		Lat:     coords.Lat,
		Lon:     coords.Lon,
		Current: currentConditions(cur),
		Daily:   forecast.Daily(forecast.Samples(fc.List)),
	}, nil
}

// Warm computes the summary for its cache side effects only.
func (s *Service) Warm(ctx context.Context, city string) error {
	_, err := s.Summary(ctx, city)
	return err
}

func currentConditions(cur *openweather.CurrentResponse) CurrentConditions {
	var cc CurrentConditions
	if cur == nil {
		return cc
	}
	if cur.Main != nil {
		cc.TempC = cur.Main.Temp
		cc.Humidity = cur.Main.Humidity
	}
	if cur.Wind != nil {
		cc.WindSpeed = cur.Wind.Speed
	}
	if cur.Sys != nil {
		cc.Sunrise = isoInstant(cur.Sys.Sunrise)
		cc.Sunset = isoInstant(cur.Sys.Sunset)
	}
	if len(cur.Weather) > 0 {
		desc := cur.Weather[0].Description
		cc.Description = &desc
	}
	return cc
}

func isoInstant(epoch *int64) *string {
	if epoch == nil {
		return nil
	}
	s := time.Unix(*epoch, 0).UTC().Format(time.RFC3339)
	return &s
}

// writeError maps internal failures to the {"error": string} contract:
// provider errors keep the provider's status when the body is structured
// json, transport failures become 502, an unresolvable city 404, and
// anything else a generic 500.
func (s *Service) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	msg := err.Error()

	var se openweather.StatusError
	var te common.TransportError
	switch {
	case errors.As(err, &se):
		if json.Valid(se.Body) {
			status = se.StatusCode
			msg = string(se.Body)
		} else {
			status = http.StatusBadGateway
		}
	case errors.As(err, &te):
		status = http.StatusBadGateway
	case errors.Is(err, geocode.ErrNotFound):
		status = http.StatusNotFound
	}

	s.Logger.Errorw("request failed", "status", status, "error", err.Error())
	writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Service) writeResponse(w http.ResponseWriter, resp interface{}) {
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	bodyBytes, _ := json.Marshal(v)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, string(bodyBytes))
}
