package hourly

import (
	"fmt"
	"time"
)

// Badge is the compact per-hour unit shown under the chart.
type Badge struct {
	Glyph       string `json:"glyph"`
	Label       string `json:"label"`
	Temperature int    `json:"temperature"`
}

// Badges returns one badge per sample of f, in sample order.
func Badges(f Frame) []Badge {
	badges := make([]Badge, 0, f.Len())
	for _, s := range f.Samples {
		badges = append(badges, Badge{
			Glyph:       IconFor(s.Icon),
			Label:       HourLabel(s.Timestamp, f.Location),
			Temperature: Round(s.Temperature),
		})
	}
	return badges
}

// View is everything the page needs after a day is selected.
type View struct {
	Caption string  `json:"caption"`
	Badges  []Badge `json:"badges"`
	Min     int     `json:"min"`
	Max     int     `json:"max"`
	Frame   Frame   `json:"-"`
}

// Dashboard owns the forecast samples and the currently selected frame.
// It is not safe for concurrent use.
type Dashboard struct {
	samples []HourSample
	loc     *time.Location

	frame    Frame
	selected bool
	tooltip  Tooltip
}

// NewDashboard returns a dashboard with no day selected.
func NewDashboard(samples []HourSample, loc *time.Location) *Dashboard {
	if loc == nil {
		loc = time.Local
	}
	return &Dashboard{samples: samples, loc: loc}
}

// Select replaces the current frame with the samples of day.
func (d *Dashboard) Select(day int64) View {
	d.frame = SelectDay(d.samples, day, d.loc)
	d.selected = true
	d.tooltip = Tooltip{}
	return d.View()
}

// Selected reports whether a day has been chosen.
func (d *Dashboard) Selected() bool {
	return d.selected
}

// Frame returns the current frame; ok is false before the first Select.
func (d *Dashboard) Frame() (Frame, bool) {
	return d.frame, d.selected
}

// View describes the current frame.
func (d *Dashboard) View() View {
	if !d.selected {
		return View{Badges: []Badge{}}
	}
	return View{
		Caption: fmt.Sprintf("Hourly for %s", DayShort(d.frame.Day, d.loc)),
		Badges:  Badges(d.frame),
		Min:     d.frame.Min,
		Max:     d.frame.Max,
		Frame:   d.frame,
	}
}

// PointerMove updates the tooltip from a pointer position over a chart
// drawn with l.
func (d *Dashboard) PointerMove(l Layout, x, y float64) Tooltip {
	d.tooltip = l.PointerMove(d.frame, d.tooltip, x, y)
	return d.tooltip
}

// PointerLeave hides the tooltip.
func (d *Dashboard) PointerLeave() Tooltip {
	d.tooltip = PointerLeave(d.tooltip)
	return d.tooltip
}
