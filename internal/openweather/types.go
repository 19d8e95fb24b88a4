package openweather

// Provider payloads are decoded defensively: any field the provider may omit
// is a pointer, so missing data surfaces as nil instead of a zero that looks
// like a real reading.

type GeoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type Conditions struct {
	Id          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type CurrentResponse struct {
	Time    int64        `json:"dt"`
	Main    *CurrentMain `json:"main,omitempty"`
	Wind    *Wind        `json:"wind,omitempty"`
	Sys     *CurrentSys  `json:"sys,omitempty"`
	Weather []Conditions `json:"weather,omitempty"`
}

type CurrentMain struct {
	Temp     *float64 `json:"temp,omitempty"`
	Humidity *float64 `json:"humidity,omitempty"`
}

type Wind struct {
	Speed *float64 `json:"speed,omitempty"`
}

type CurrentSys struct {
	Sunrise *int64 `json:"sunrise,omitempty"`
	Sunset  *int64 `json:"sunset,omitempty"`
}

type ForecastResponse struct {
	List []ForecastItem `json:"list"`
	City *ForecastCity  `json:"city,omitempty"`
}

type ForecastCity struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// ForecastItem is one 3-hour sample of the 5-day forecast feed.
type ForecastItem struct {
	Time int64         `json:"dt"`
	Main *ForecastMain `json:"main,omitempty"`
	Wind *Wind         `json:"wind,omitempty"`
	Pop  *float64      `json:"pop,omitempty"`
	Rain *ForecastRain `json:"rain,omitempty"`
}

type ForecastMain struct {
	TempMin *float64 `json:"temp_min,omitempty"`
	TempMax *float64 `json:"temp_max,omitempty"`
}

type ForecastRain struct {
	ThreeH *float64 `json:"3h,omitempty"`
}
