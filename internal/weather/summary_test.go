package weather

import (
	"testing"
	"time"
)

// 2024-01-15 12:00:00 UTC, a Monday
const monday int64 = 1705320000

func TestCapitalizeWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"few clouds", "Few Clouds"},
		{"light rain", "Light Rain"},
		{"", ""},
		{"mist", "Mist"},
		{"double  space", "Double  Space"},
		{"éclaircies", "Éclaircies"},
	}
	for _, tt := range tests {
		if got := CapitalizeWords(tt.in); got != tt.want {
			t.Errorf("CapitalizeWords(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCurrentSummary(t *testing.T) {
	s := CurrentSummary(CurrentCondition{
		Dt:          monday,
		Temperature: 11.6,
		FeelsLike:   10.2,
		Humidity:    81,
		WindSpeed:   4.1,
		Description: "few clouds",
	}, time.UTC)

	want := Summary{
		Temperature: 12,
		Description: "Few Clouds",
		DayName:     "Monday",
		Detail:      "Feels like: 10°C",
		Humidity:    "Humidity: 81%",
		Wind:        "Wind: 15 km/h",
	}
	if s != want {
		t.Errorf("CurrentSummary() = %+v, want %+v", s, want)
	}
}

func TestDaySummary(t *testing.T) {
	s := DaySummary(DailyForecast{
		Dt:          monday + 86400,
		TempDay:     9.5,
		TempMin:     4.4,
		TempMax:     10.5,
		Humidity:    60,
		WindSpeed:   3,
		Description: "clear sky",
	}, time.UTC)

	if s.DayName != "Tuesday" {
		t.Errorf("DayName = %q", s.DayName)
	}
	if s.Temperature != 10 {
		t.Errorf("Temperature = %d", s.Temperature)
	}
	if s.Detail != "High: 11° Low: 4°" {
		t.Errorf("Detail = %q", s.Detail)
	}
	if s.Wind != "Wind: 11 km/h" {
		t.Errorf("Wind = %q", s.Wind)
	}
}

func TestDayCards(t *testing.T) {
	days := make([]DailyForecast, 6)
	for i := range days {
		days[i] = DailyForecast{Dt: monday + int64(i)*86400, TempMax: 10, TempMin: 2, Icon: "01d", Description: "clear sky"}
	}
	days[1].Icon = "unknown"

	cards := DayCards(days, time.UTC)
	if len(cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(cards))
	}
	if cards[0].Name != "Mon" || cards[3].Name != "Thu" {
		t.Errorf("unexpected names %q..%q", cards[0].Name, cards[3].Name)
	}
	if cards[0].Glyph != "☀️" || cards[1].Glyph != "" {
		t.Errorf("unexpected glyphs %q, %q", cards[0].Glyph, cards[1].Glyph)
	}
	if cards[2].High != 10 || cards[2].Low != 2 || cards[2].Description != "Clear Sky" {
		t.Errorf("unexpected card %+v", cards[2])
	}
}
