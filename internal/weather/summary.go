package weather

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/swelljoe/dayplanner/internal/hourly"
)

// Summary is the headline block of the dashboard
type Summary struct {
	Temperature int
	Description string
	DayName     string
	Detail      string
	Humidity    string
	Wind        string
}

// CurrentSummary describes current conditions
func CurrentSummary(c CurrentCondition, loc *time.Location) Summary {
	return Summary{
		Temperature: hourly.Round(c.Temperature),
		Description: CapitalizeWords(c.Description),
		DayName:     hourly.DayFull(c.Dt, loc),
		Detail:      fmt.Sprintf("Feels like: %d°C", hourly.Round(c.FeelsLike)),
		Humidity:    fmt.Sprintf("Humidity: %d%%", c.Humidity),
		Wind:        fmt.Sprintf("Wind: %d km/h", windKmh(c.WindSpeed)),
	}
}

// DaySummary describes a selected forecast day
func DaySummary(d DailyForecast, loc *time.Location) Summary {
	return Summary{
		Temperature: hourly.Round(d.TempDay),
		Description: CapitalizeWords(d.Description),
		DayName:     hourly.DayFull(d.Dt, loc),
		Detail:      fmt.Sprintf("High: %d° Low: %d°", hourly.Round(d.TempMax), hourly.Round(d.TempMin)),
		Humidity:    fmt.Sprintf("Humidity: %d%%", d.Humidity),
		Wind:        fmt.Sprintf("Wind: %d km/h", windKmh(d.WindSpeed)),
	}
}

// DayCard is one entry of the multi-day strip
type DayCard struct {
	Dt          int64
	Name        string
	Glyph       string
	High        int
	Low         int
	Description string
}

// DayCards returns cards for the first four days
func DayCards(days []DailyForecast, loc *time.Location) []DayCard {
	if len(days) > 4 {
		days = days[:4]
	}
	cards := make([]DayCard, 0, len(days))
	for _, d := range days {
		cards = append(cards, DayCard{
			Dt:          d.Dt,
			Name:        hourly.DayShort(d.Dt, loc),
			Glyph:       hourly.IconFor(d.Icon),
			High:        hourly.Round(d.TempMax),
			Low:         hourly.Round(d.TempMin),
			Description: CapitalizeWords(d.Description),
		})
	}
	return cards
}

// CapitalizeWords upper-cases the first letter of every space-separated word
func CapitalizeWords(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

func windKmh(ms float64) int {
	return hourly.Round(ms * 3.6)
}
