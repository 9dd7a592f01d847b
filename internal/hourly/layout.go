package hourly

// Padding is the inset reserved on every side of the plot, in CSS pixels.
const Padding = 20.0

// Point is a position in logical (CSS pixel) coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Layout describes the chart surface in logical pixels.
type Layout struct {
	Width  float64
	Height float64
	Pad    float64
}

// NewLayout returns a layout with the default padding.
func NewLayout(width, height float64) Layout {
	return Layout{Width: width, Height: height, Pad: Padding}
}

// UsableWidth is the plot width after padding.
func (l Layout) UsableWidth() float64 {
	return l.Width - l.Pad*2
}

// UsableHeight is the plot height after padding.
func (l Layout) UsableHeight() float64 {
	return l.Height - l.Pad*2
}

// Baseline is the y coordinate of the bottom of the plot.
func (l Layout) Baseline() float64 {
	return l.Height - l.Pad
}

// X returns the horizontal position of sample i of n.
func (l Layout) X(i, n int) float64 {
	if n < 2 {
		return l.Pad
	}
	return l.Pad + (float64(i)/float64(n-1))*l.UsableWidth()
}

// Y returns the vertical position of rounded temperature t within f.
func (l Layout) Y(f Frame, t int) float64 {
	return l.Pad + (float64(f.Max-t)/f.Divisor())*l.UsableHeight()
}

// Points returns the plotted position of every sample in f.
func (l Layout) Points(f Frame) []Point {
	temps := f.Temps()
	pts := make([]Point, len(temps))
	for i, t := range temps {
		pts[i] = Point{X: l.X(i, len(temps)), Y: l.Y(f, t)}
	}
	return pts
}

// Area returns the closed outline under the line: the line itself followed
// by the two baseline corners.
func (l Layout) Area(f Frame) []Point {
	pts := l.Points(f)
	if len(pts) == 0 {
		return nil
	}
	area := make([]Point, 0, len(pts)+2)
	area = append(area, pts...)
	area = append(area,
		Point{X: l.Pad + l.UsableWidth(), Y: l.Baseline()},
		Point{X: l.Pad, Y: l.Baseline()},
	)
	return area
}
