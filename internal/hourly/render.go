package hourly

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Style controls the colours and stroke sizes of the chart.
type Style struct {
	Line       drawing.Color
	FillTop    drawing.Color
	FillBottom drawing.Color
	LineWidth  float64
	DotRadius  float64
}

// DefaultStyle is the purple accent used by the dashboard.
var DefaultStyle = Style{
	Line:       drawing.Color{R: 124, G: 92, B: 255, A: 255},
	FillTop:    drawing.Color{R: 124, G: 92, B: 255, A: 77},
	FillBottom: drawing.Color{R: 124, G: 92, B: 255, A: 13},
	LineWidth:  2,
	DotRadius:  4,
}

// Renderer rasterizes a frame. Coordinates stay in logical pixels; the
// backing image is scaled by DPR.
type Renderer struct {
	Layout Layout
	DPR    float64
	Style  Style
}

// NewRenderer returns a renderer for a width x height surface at dpr.
func NewRenderer(width, height, dpr float64) Renderer {
	if dpr <= 0 {
		dpr = 1
	}
	return Renderer{Layout: NewLayout(width, height), DPR: dpr, Style: DefaultStyle}
}

// Bounds returns the size of the backing image in device pixels.
func (r Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0,
		int(math.Ceil(r.Layout.Width*r.DPR)),
		int(math.Ceil(r.Layout.Height*r.DPR)))
}

// Draw returns the chart for f. An empty frame yields a cleared image.
func (r Renderer) Draw(f Frame) (*image.RGBA, error) {
	img := image.NewRGBA(r.Bounds())
	if f.Empty() {
		return img, nil
	}

	if err := r.fillArea(img, f); err != nil {
		return nil, err
	}

	gc, err := r.context(img)
	if err != nil {
		return nil, err
	}
	pts := r.Layout.Points(f)

	gc.SetStrokeColor(r.Style.Line)
	gc.SetLineWidth(r.Style.LineWidth)
	gc.BeginPath()
	for i, p := range pts {
		if i == 0 {
			gc.MoveTo(p.X, p.Y)
			continue
		}
		gc.LineTo(p.X, p.Y)
	}
	gc.Stroke()

	gc.SetFillColor(r.Style.Line)
	for _, p := range pts {
		gc.BeginPath()
		gc.ArcTo(p.X, p.Y, r.Style.DotRadius, r.Style.DotRadius, 0, 2*math.Pi)
		gc.Close()
		gc.Fill()
	}
	return img, nil
}

// WritePNG draws f and encodes it as PNG.
func (r Renderer) WritePNG(w io.Writer, f Frame) error {
	img, err := r.Draw(f)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

func (r Renderer) context(img *image.RGBA) (*drawing.RasterGraphicContext, error) {
	gc, err := drawing.NewRasterGraphicContext(img)
	if err != nil {
		return nil, fmt.Errorf("hourly: graphic context: %w", err)
	}
	gc.Scale(r.DPR, r.DPR)
	return gc, nil
}

// fillArea rasterizes the area under the line into a mask and composites
// the vertical gradient through it.
func (r Renderer) fillArea(img *image.RGBA, f Frame) error {
	mask := image.NewRGBA(img.Bounds())
	gc, err := r.context(mask)
	if err != nil {
		return err
	}

	gc.SetFillColor(drawing.Color{R: 255, G: 255, B: 255, A: 255})
	gc.BeginPath()
	for i, p := range r.Layout.Area(f) {
		if i == 0 {
			gc.MoveTo(p.X, p.Y)
			continue
		}
		gc.LineTo(p.X, p.Y)
	}
	gc.Close()
	gc.Fill()

	grad := gradient{
		top:    r.Layout.Pad * r.DPR,
		bottom: r.Layout.Baseline() * r.DPR,
		from:   r.Style.FillTop,
		to:     r.Style.FillBottom,
		bounds: img.Bounds(),
	}
	draw.DrawMask(img, img.Bounds(), grad, image.Point{}, mask, image.Point{}, draw.Over)
	return nil
}

// gradient is a vertical linear gradient between two device-pixel rows.
type gradient struct {
	top, bottom float64
	from, to    drawing.Color
	bounds      image.Rectangle
}

func (g gradient) ColorModel() color.Model { return color.NRGBAModel }

func (g gradient) Bounds() image.Rectangle { return g.bounds }

func (g gradient) At(_, y int) color.Color {
	t := 0.0
	if g.bottom > g.top {
		t = (float64(y) + 0.5 - g.top) / (g.bottom - g.top)
	}
	t = math.Max(0, math.Min(1, t))
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.NRGBA{
		R: lerp(g.from.R, g.to.R),
		G: lerp(g.from.G, g.to.G),
		B: lerp(g.from.B, g.to.B),
		A: lerp(g.from.A, g.to.A),
	}
}
