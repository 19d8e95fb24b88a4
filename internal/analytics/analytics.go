// Package analytics holds the synthetic-history generator and naive trend
// predictors behind the dashboard's analytics tab. It is deliberately
// independent of the request pipeline; predictors hang off a small interface
// so a real model can replace them.
package analytics

import (
	"math"
	"math/rand"
	"time"
)

// TrendPredictor produces a projection from a recent history window.
type TrendPredictor interface {
	Predict(history []float64, futureDays int) []float64
}

// minHistory is the smallest window the predictors accept.
const minHistory = 5

type History struct {
	Dates           []string  `json:"dates"`
	Temperatures    []float64 `json:"temperatures"`
	Humidity        []float64 `json:"humidity"`
	RainProbability []float64 `json:"rain_probability"`
}

// GenerateHistory fabricates daysBack days of plausible-looking weather
// leading up to now, anchored on the given current temperature: a sinusoidal
// seasonal swing of ±5 °C plus gaussian noise, humidity peaking near 25 °C,
// rain probability tracking the season.
func GenerateHistory(currentTemp float64, daysBack int, now time.Time, rng *rand.Rand) History {
	h := History{
		Dates:           make([]string, 0, daysBack),
		Temperatures:    make([]float64, 0, daysBack),
		Humidity:        make([]float64, 0, daysBack),
		RainProbability: make([]float64, 0, daysBack),
	}

	for i := daysBack; i > 0; i-- {
		date := now.AddDate(0, 0, -i)
		h.Dates = append(h.Dates, date.Format("2006-01-02"))

		seasonal := math.Sin(2*math.Pi*float64(date.YearDay())/365) * 5

		temp := round1(currentTemp + seasonal + rng.NormFloat64()*2)
		h.Temperatures = append(h.Temperatures, temp)

		hum := 60 + (25-math.Abs(temp-25))*0.5 + rng.NormFloat64()*5
		h.Humidity = append(h.Humidity, clamp(round1(hum), 20, 100))

		rain := 30 + seasonal*2 + rng.NormFloat64()*10
		h.RainProbability = append(h.RainProbability, clamp(round1(rain), 0, 100))
	}
	return h
}

type TemperatureTrend struct {
	Predictions []float64 `json:"predictions"`
	Trend       string    `json:"trend"`
	Slope       float64   `json:"slope"`
	Confidence  float64   `json:"confidence"`
}

// PredictTemperatureTrend fits a least-squares line through the history and
// extends it futureDays ahead. Returns nil when the window is too short to
// fit anything.
func PredictTemperatureTrend(temps []float64, futureDays int) *TemperatureTrend {
	if len(temps) < minHistory {
		return nil
	}

	slope, intercept := leastSquares(temps)

	preds := make([]float64, 0, futureDays)
	for i := 0; i < futureDays; i++ {
		x := float64(len(temps) + i)
		preds = append(preds, round1(intercept+slope*x))
	}

	trend := "stable"
	switch {
	case slope > 0.1:
		trend = "increasing"
	case slope < -0.1:
		trend = "decreasing"
	}

	return &TemperatureTrend{
		Predictions: preds,
		Trend:       trend,
		Slope:       math.Round(slope*1000) / 1000,
		Confidence:  clamp(round1(100-math.Abs(slope)*10), 60, 95),
	}
}

type RainfallOutlook struct {
	Predictions  []float64 `json:"predictions"`
	Trend        string    `json:"trend"`
	HighRiskDays []int     `json:"high_risk_days"`
}

// PredictRainfall projects rain probability from the average of the last few
// days, with a sinusoidal day-to-day variation and noise, clamped to 0-100.
// Days above 70% are flagged high risk. Returns nil for short windows.
func PredictRainfall(hist []float64, futureDays int, rng *rand.Rand) *RainfallOutlook {
	if len(hist) < minHistory {
		return nil
	}

	base := mean(hist[len(hist)-5:])

	preds := make([]float64, 0, futureDays)
	var highRisk []int
	for i := 0; i < futureDays; i++ {
		p := base + math.Sin(float64(i)*0.9)*3 + rng.NormFloat64()*2
		p = clamp(round1(p), 0, 100)
		preds = append(preds, p)
		if p > 70 {
			highRisk = append(highRisk, i)
		}
	}

	recent := hist
	if len(hist) > 7 {
		recent = hist[len(hist)-7:]
	}
	recentAvg := mean(recent)
	olderAvg := recentAvg
	if len(hist) > 7 {
		olderAvg = mean(hist[:len(hist)-7])
	}

	trend := "stable"
	switch {
	case recentAvg > olderAvg+2:
		trend = "increasing"
	case recentAvg < olderAvg-2:
		trend = "decreasing"
	}

	return &RainfallOutlook{
		Predictions:  preds,
		Trend:        trend,
		HighRiskDays: highRisk,
	}
}

// LinearTrend is the TrendPredictor backed by the least-squares fit.
type LinearTrend struct{}

func (LinearTrend) Predict(history []float64, futureDays int) []float64 {
	t := PredictTemperatureTrend(history, futureDays)
	if t == nil {
		return nil
	}
	return t.Predictions
}

// SeasonalRainfall is the TrendPredictor backed by the rainfall projection.
type SeasonalRainfall struct {
	Rng *rand.Rand
}

func (p SeasonalRainfall) Predict(history []float64, futureDays int) []float64 {
	o := PredictRainfall(history, futureDays, p.Rng)
	if o == nil {
		return nil
	}
	return o.Predictions
}

func leastSquares(ys []float64) (slope, intercept float64) {
	n := float64(len(ys))
	var sumX, sumY, sumXY, sumXX float64
	for i, y := range ys {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

func mean(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total / float64(len(vs))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
