package weather

import (
	"time"

	"github.com/swelljoe/dayplanner/internal/hourly"
)

// WeatherData aggregates all weather info
type WeatherData struct {
	Current   CurrentCondition    `json:"current"`
	Daily     []DailyForecast     `json:"daily"`
	Hourly    []hourly.HourSample `json:"hourly"`
	Source    string              `json:"hourly_source"` // "pro" or "onecall"
	CachedAt  time.Time           `json:"cached_at"`
	ExpiresAt time.Time           `json:"expires_at"`
	Location  string              `json:"location,omitempty"`
}

type CurrentCondition struct {
	Dt          int64   `json:"dt"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"` // m/s
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type DailyForecast struct {
	Dt          int64   `json:"dt"`
	TempDay     float64 `json:"temp_day"`
	TempMin     float64 `json:"temp_min"`
	TempMax     float64 `json:"temp_max"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Place is a geocoding match
type Place struct {
	Name    string  `json:"name"`
	State   string  `json:"state,omitempty"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Label returns "Name, State, Country", omitting an empty state.
func (p Place) Label() string {
	if p.State != "" {
		return p.Name + ", " + p.State + ", " + p.Country
	}
	return p.Name + ", " + p.Country
}

// Day returns the daily entry starting at dt.
func (wd *WeatherData) Day(dt int64) (DailyForecast, bool) {
	for _, d := range wd.Daily {
		if d.Dt == dt {
			return d, true
		}
	}
	return DailyForecast{}, false
}

// DefaultDay is the day selected after a load: the first daily entry, or
// the first hourly sample when no daily data came back.
func (wd *WeatherData) DefaultDay() (int64, bool) {
	if len(wd.Daily) > 0 {
		return wd.Daily[0].Dt, true
	}
	if len(wd.Hourly) > 0 {
		return wd.Hourly[0].Timestamp, true
	}
	return 0, false
}
