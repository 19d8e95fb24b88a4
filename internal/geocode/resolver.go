package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdelacruz/weatherboard/internal/cache"
	"github.com/pdelacruz/weatherboard/internal/openweather"
	"go.uber.org/zap"
)

const cacheTTL = 24 * time.Hour

// ErrNotFound means every candidate query was tried and the geocoder matched
// none of them.
var ErrNotFound = errors.New("city not found")

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Candidates expands a free-text city string into the ordered list of
// geocoding queries to try, most specific first:
//
//  1. the raw trimmed input;
//  2. if it mentions the Philippines, the part before the first comma with a
//     ",PH" country code, then that part alone;
//  3. if it has commas but no "Philippines", the part before the first comma
//     alone, then with ",PH";
//  4. if it names no country at all, the part before the first comma with ",PH".
//
// Duplicates are dropped case-insensitively, keeping first-seen order, and a
// blank input yields no candidates. The frontend sends strings like
// "Bacolod City, Negros Occidental, Philippines", which the geocoder rarely
// matches verbatim.
func Candidates(city string) []string {
	base := strings.TrimSpace(city)
	if base == "" {
		return nil
	}
	lowered := strings.ToLower(base)
	first := strings.TrimSpace(strings.SplitN(base, ",", 2)[0])

	var raw []string
	raw = append(raw, base)

	if strings.Contains(lowered, "philippines") {
		raw = append(raw, first+",PH", first)
	}
	if strings.Contains(base, ",") && !strings.Contains(lowered, "philippines") {
		raw = append(raw, first, first+",PH")
	}
	if !strings.Contains(lowered, ",ph") && !strings.Contains(lowered, "philippines") {
		raw = append(raw, first+",PH")
	}

	seen := make(map[string]bool)
	candidates := make([]string, 0, len(raw))
	for _, q := range raw {
		q = strings.TrimSpace(q)
		norm := strings.ToLower(q)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		candidates = append(candidates, q)
	}
	return candidates
}

type Resolver struct {
	ow    *openweather.Client
	store cache.Store

	Logger *zap.SugaredLogger
}

func NewResolver(ow *openweather.Client, store cache.Store, logger *zap.SugaredLogger) *Resolver {
	return &Resolver{
		ow:     ow,
		store:  store,
		Logger: logger,
	}
}

// Resolve turns a free-text city string into coordinates, trying each
// candidate query in order until the geocoder returns a match. Results are
// cached for a day under the lower-cased input, so a hit skips candidate
// generation entirely.
//
// A candidate with zero matches just advances to the next one. A failed
// provider call also advances, but is remembered: if every candidate is
// exhausted, the last call failure is surfaced as the cause, otherwise
// ErrNotFound.
func (r *Resolver) Resolve(ctx context.Context, city string) (Coordinates, error) {
	key := "geocode:" + strings.ToLower(city)
	if raw, ok := r.store.Get(ctx, key); ok {
		var coords Coordinates
		if err := json.Unmarshal(raw, &coords); err == nil {
			return coords, nil
		}
	}

	var lastErr error
	for _, q := range Candidates(city) {
		results, err := r.ow.Geocode(ctx, q)
		if err != nil {
			if errors.Is(err, openweather.ErrMissingAPIKey) {
				return Coordinates{}, err
			}
			r.Logger.Warnw("geocode candidate failed",
				"city", city, "candidate", q, "error", err.Error())
			lastErr = err
			continue
		}
		if len(results) == 0 {
			continue
		}

		coords := Coordinates{Lat: results[0].Lat, Lon: results[0].Lon}
		if raw, err := json.Marshal(coords); err == nil {
			r.store.Set(ctx, key, raw, cacheTTL)
		}
		return coords, nil
	}

	if lastErr != nil {
		return Coordinates{}, fmt.Errorf("resolving city %q: %w", city, lastErr)
	}
	return Coordinates{}, fmt.Errorf("%w: %q", ErrNotFound, city)
}
