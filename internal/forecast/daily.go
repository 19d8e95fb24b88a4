package forecast

import (
	"math"
	"sort"
	"time"

	"github.com/pdelacruz/weatherboard/internal/openweather"
)

// maxDays caps the daily output; the provider feed spans five full days plus
// a partial sixth depending on request time.
const maxDays = 5

// Sample is one 3-hour forecast reading. Temperature and wind are pointers
// because the provider may omit them; pop and rain default to 0 when absent.
type Sample struct {
	Timestamp int64
	TempMin   *float64
	TempMax   *float64
	Pop       float64 // fraction, 0-1
	RainMM    float64
	WindSpeed *float64
}

// DailyRow is the reduced summary of one UTC calendar date. Nil fields had no
// contributing samples; RainMM is 0 in that case rather than nil.
type DailyRow struct {
	Date      string   `json:"date"`
	TempMin   *float64 `json:"temp_min"`
	TempMax   *float64 `json:"temp_max"`
	Pop       *float64 `json:"pop"` // percentage, worst case for the day
	RainMM    float64  `json:"rain_mm"`
	WindSpeed *float64 `json:"wind_speed"`
}

// Samples converts the provider's forecast list into aggregation inputs.
func Samples(items []openweather.ForecastItem) []Sample {
	samples := make([]Sample, 0, len(items))
	for _, it := range items {
		s := Sample{Timestamp: it.Time}
		if it.Main != nil {
			s.TempMin = it.Main.TempMin
			s.TempMax = it.Main.TempMax
		}
		if it.Wind != nil {
			s.WindSpeed = it.Wind.Speed
		}
		if it.Pop != nil {
			s.Pop = *it.Pop
		}
		if it.Rain != nil && it.Rain.ThreeH != nil {
			s.RainMM = *it.Rain.ThreeH
		}
		samples = append(samples, s)
	}
	return samples
}

type bucket struct {
	tempsMin []float64
	tempsMax []float64
	pops     []float64
	rains    []float64
	winds    []float64
}

// Daily groups 3-hour samples by UTC calendar date and reduces each group to
// one row: min/max temperature, worst-case pop, total rain, mean wind. Output
// is sorted ascending by date and capped at five days. Samples without a
// timestamp are skipped. Pure and order-insensitive within a date.
func Daily(samples []Sample) []DailyRow {
	buckets := make(map[string]*bucket)
	for _, s := range samples {
		if s.Timestamp == 0 {
			continue
		}
		day := time.Unix(s.Timestamp, 0).UTC().Format("2006-01-02")
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		if s.TempMin != nil {
			b.tempsMin = append(b.tempsMin, *s.TempMin)
		}
		if s.TempMax != nil {
			b.tempsMax = append(b.tempsMax, *s.TempMax)
		}
		b.pops = append(b.pops, s.Pop*100)
		b.rains = append(b.rains, s.RainMM)
		if s.WindSpeed != nil {
			b.winds = append(b.winds, *s.WindSpeed)
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)
	if len(days) > maxDays {
		days = days[:maxDays]
	}

	rows := make([]DailyRow, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		row := DailyRow{
			Date:   day,
			RainMM: round1(sum(b.rains)),
		}
		if len(b.tempsMin) > 0 {
			row.TempMin = ptr(round1(minOf(b.tempsMin)))
		}
		if len(b.tempsMax) > 0 {
			row.TempMax = ptr(round1(maxOf(b.tempsMax)))
		}
		if len(b.pops) > 0 {
			row.Pop = ptr(round1(maxOf(b.pops)))
		}
		if len(b.winds) > 0 {
			row.WindSpeed = ptr(round1(sum(b.winds) / float64(len(b.winds))))
		}
		rows = append(rows, row)
	}
	return rows
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func minOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(vs []float64) float64 {
	m := vs[0]
	for _, v := range vs[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}
	return total
}

func ptr(v float64) *float64 {
	return &v
}
