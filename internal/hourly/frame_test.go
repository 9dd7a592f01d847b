package hourly

import (
	"math"
	"testing"
	"time"
)

// 2024-01-15 00:00:00 UTC
const dayA int64 = 1705276800

const hour int64 = 3600

func hourlySeries(start int64, temps ...float64) []HourSample {
	out := make([]HourSample, len(temps))
	for i, t := range temps {
		out[i] = HourSample{Timestamp: start + int64(i)*hour, Temperature: t, Icon: "01d"}
	}
	return out
}

func fourDays() []HourSample {
	temps := make([]float64, 96)
	for i := range temps {
		temps[i] = float64(i % 24)
	}
	return hourlySeries(dayA, temps...)
}

func TestSelectDay_FiltersByCalendarDay(t *testing.T) {
	samples := fourDays()

	tests := []struct {
		name string
		day  int64
		want int
		// first sample expected in the frame
		first int64
	}{
		{name: "first day midnight", day: dayA, want: 24, first: dayA},
		{name: "first day afternoon", day: dayA + 15*hour, want: 24, first: dayA},
		{name: "second day", day: dayA + 24*hour, want: 24, first: dayA + 24*hour},
		{name: "last day late", day: dayA + 95*hour, want: 24, first: dayA + 72*hour},
		{name: "day after the data", day: dayA + 96*hour, want: 0},
		{name: "day before the data", day: dayA - hour, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := SelectDay(samples, tt.day, time.UTC)
			if f.Len() != tt.want {
				t.Fatalf("SelectDay() kept %d samples, want %d", f.Len(), tt.want)
			}
			if tt.want > 0 && f.Samples[0].Timestamp != tt.first {
				t.Errorf("first sample = %d, want %d", f.Samples[0].Timestamp, tt.first)
			}
		})
	}
}

func TestSelectDay_UsesLocationForDayBoundary(t *testing.T) {
	samples := fourDays()
	// UTC-5: local midnight of Jan 15 is 05:00 UTC.
	est := time.FixedZone("EST", -5*3600)

	f := SelectDay(samples, dayA+12*hour, est)
	if f.Len() != 24 {
		t.Fatalf("expected 24 samples, got %d", f.Len())
	}
	if f.Samples[0].Timestamp != dayA+5*hour {
		t.Errorf("expected frame to start at 05:00 UTC, got %s",
			time.Unix(f.Samples[0].Timestamp, 0).UTC())
	}
}

func TestSelectDay_CapsAtMaxHours(t *testing.T) {
	// Half-hourly samples: 48 fall on the same day.
	var samples []HourSample
	for i := int64(0); i < 48; i++ {
		samples = append(samples, HourSample{Timestamp: dayA + i*1800, Temperature: float64(i)})
	}

	f := SelectDay(samples, dayA, time.UTC)
	if f.Len() != MaxHours {
		t.Fatalf("expected %d samples, got %d", MaxHours, f.Len())
	}
	for i, s := range f.Samples {
		if s.Timestamp != samples[i].Timestamp {
			t.Fatalf("sample %d out of order: got %d, want %d", i, s.Timestamp, samples[i].Timestamp)
		}
	}
	if len(Badges(f)) != MaxHours {
		t.Errorf("expected %d badges, got %d", MaxHours, len(Badges(f)))
	}
}

func TestSelectDay_Empty(t *testing.T) {
	f := SelectDay(nil, dayA, time.UTC)
	if !f.Empty() {
		t.Fatalf("expected empty frame, got %d samples", f.Len())
	}
	if len(Badges(f)) != 0 {
		t.Errorf("expected no badges, got %d", len(Badges(f)))
	}
	if len(NewLayout(300, 100).Points(f)) != 0 {
		t.Errorf("expected no points for empty frame")
	}
}

func TestSelectDay_SkipsMalformedSamples(t *testing.T) {
	samples := []HourSample{
		{Timestamp: dayA, Temperature: 10},
		{Timestamp: 0, Temperature: 50},
		{Timestamp: dayA + hour, Temperature: math.NaN()},
		{Timestamp: dayA + 2*hour, Temperature: math.Inf(1)},
		{Timestamp: dayA + 3*hour, Temperature: 12},
	}

	f := SelectDay(samples, dayA, time.UTC)
	if f.Len() != 2 {
		t.Fatalf("expected 2 valid samples, got %d", f.Len())
	}
	if f.Min != 10 || f.Max != 12 {
		t.Errorf("expected bounds 10..12, got %d..%d", f.Min, f.Max)
	}
}

func TestSelectDay_BoundsFromSelectedDayOnly(t *testing.T) {
	samples := append(hourlySeries(dayA, 5, 6, 7), hourlySeries(dayA+24*hour, 30, -10)...)

	f := SelectDay(samples, dayA, time.UTC)
	if f.Min != 5 || f.Max != 7 {
		t.Errorf("expected bounds 5..7, got %d..%d", f.Min, f.Max)
	}
}

func TestSelectDay_BoundsUseRoundedTemperatures(t *testing.T) {
	f := SelectDay(hourlySeries(dayA, 19.4, 21.6, -2.5), dayA, time.UTC)
	if f.Min != -2 || f.Max != 22 {
		t.Errorf("expected bounds -2..22, got %d..%d", f.Min, f.Max)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{2.5, 3},
		{-0.4, 0},
		{-2.5, -2},
		{-2.6, -3},
		{21.49, 21},
		{0.49999999999999994, 0},
		{-0.5, 0},
		{-0.50000000000000011, -1},
	}
	for _, tt := range tests {
		if got := Round(tt.in); got != tt.want {
			t.Errorf("Round(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDivisor(t *testing.T) {
	flat := SelectDay(hourlySeries(dayA, 15, 15.2, 14.8), dayA, time.UTC)
	if flat.Divisor() != 1 {
		t.Errorf("flat frame divisor = %v, want 1", flat.Divisor())
	}

	ranged := SelectDay(hourlySeries(dayA, 10, 18), dayA, time.UTC)
	if ranged.Divisor() != 8 {
		t.Errorf("divisor = %v, want 8", ranged.Divisor())
	}
}
