package hourly

import (
	"fmt"
	"math"
)

// Tooltip offsets relative to the pointer, in CSS pixels.
const (
	tooltipOffsetX = 8
	tooltipOffsetY = -32
)

// Tooltip is the pointer feedback shown over the chart.
type Tooltip struct {
	Visible bool    `json:"visible"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Text    string  `json:"text"`
}

// IndexAt maps a pointer x offset to the nearest sample index. The result
// may fall outside [0, n-1]; callers check the range.
func (l Layout) IndexAt(f Frame, x float64) int {
	uw := l.UsableWidth()
	if f.Empty() || uw <= 0 {
		return -1
	}
	return int(math.Floor((x-l.Pad)/uw*float64(f.Len()-1) + 0.5))
}

// PointerMove returns the tooltip for a pointer at (x, y). When the pointer
// maps outside the plotted samples prev is returned untouched.
func (l Layout) PointerMove(f Frame, prev Tooltip, x, y float64) Tooltip {
	idx := l.IndexAt(f, x)
	if idx < 0 || idx >= f.Len() {
		return prev
	}
	s := f.Samples[idx]
	return Tooltip{
		Visible: true,
		Left:    x + tooltipOffsetX,
		Top:     y + tooltipOffsetY,
		Text:    fmt.Sprintf("%s – %d°C", HourLabel(s.Timestamp, f.Location), Round(s.Temperature)),
	}
}

// PointerLeave hides the tooltip.
func PointerLeave(prev Tooltip) Tooltip {
	prev.Visible = false
	return prev
}
