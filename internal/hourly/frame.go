package hourly

import (
	"math"
	"time"
)

// MaxHours caps the number of samples shown for one day.
const MaxHours = 24

// HourSample is one hourly forecast entry
type HourSample struct {
	Timestamp   int64   `json:"dt"`
	Temperature float64 `json:"temp"`
	Icon        string  `json:"icon"`
}

// Time returns the sample timestamp in loc.
func (s HourSample) Time(loc *time.Location) time.Time {
	return time.Unix(s.Timestamp, 0).In(loc)
}

func (s HourSample) valid() bool {
	if s.Timestamp == 0 {
		return false
	}
	return !math.IsNaN(s.Temperature) && !math.IsInf(s.Temperature, 0)
}

// Frame is the single-day view derived from a sample sequence.
// Min and Max are computed over the rounded temperatures of Samples only.
type Frame struct {
	Day      int64
	Location *time.Location
	Samples  []HourSample
	Min      int
	Max      int
}

// SelectDay returns the samples that fall on the same calendar day (in loc)
// as day, in their original order, limited to MaxHours. Malformed samples
// are skipped.
func SelectDay(samples []HourSample, day int64, loc *time.Location) Frame {
	if loc == nil {
		loc = time.Local
	}
	f := Frame{Day: day, Location: loc}

	y, m, d := time.Unix(day, 0).In(loc).Date()
	for _, s := range samples {
		if len(f.Samples) == MaxHours {
			break
		}
		if !s.valid() {
			continue
		}
		sy, sm, sd := s.Time(loc).Date()
		if sy != y || sm != m || sd != d {
			continue
		}
		f.Samples = append(f.Samples, s)
	}

	for i, s := range f.Samples {
		t := Round(s.Temperature)
		if i == 0 || t < f.Min {
			f.Min = t
		}
		if i == 0 || t > f.Max {
			f.Max = t
		}
	}
	return f
}

// Empty reports whether the frame has nothing to draw.
func (f Frame) Empty() bool {
	return len(f.Samples) == 0
}

// Len returns the number of samples in the frame.
func (f Frame) Len() int {
	return len(f.Samples)
}

// Divisor is the vertical scaling range; a flat line scales by 1.
func (f Frame) Divisor() float64 {
	if f.Max == f.Min {
		return 1
	}
	return float64(f.Max - f.Min)
}

// Temps returns the rounded temperatures in sample order.
func (f Frame) Temps() []int {
	temps := make([]int, len(f.Samples))
	for i, s := range f.Samples {
		temps[i] = Round(s.Temperature)
	}
	return temps
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(v float64) int {
	f := math.Floor(v)
	if v-f >= 0.5 {
		f++
	}
	return int(f)
}
