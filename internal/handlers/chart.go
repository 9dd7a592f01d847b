package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/swelljoe/dayplanner/internal/hourly"
	"github.com/swelljoe/dayplanner/internal/session"
)

// Chart surface defaults and limits, in CSS pixels.
const (
	defaultChartWidth  = 600
	defaultChartHeight = 200
	maxChartWidth      = 2000
	maxChartHeight     = 1000
	maxDPR             = 4

	// maxDevicePixels bounds the backing image of a single render.
	maxDevicePixels = 4_000_000
)

// dayResponse is returned after a day is selected
type dayResponse struct {
	Caption string         `json:"caption"`
	Badges  []hourly.Badge `json:"badges"`
	Min     int            `json:"min"`
	Max     int            `json:"max"`
	Points  []hourly.Point `json:"points"`
	Detail  string         `json:"detail,omitempty"`
}

// HandleSelectDay switches the session to day {dt}
func (h *Handlers) HandleSelectDay(w http.ResponseWriter, r *http.Request) {
	dt, err := strconv.ParseInt(mux.Vars(r)["dt"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, errBadRequest)
		return
	}
	layout, _, err := chartLayout(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	entry, ok := h.lookup(r)
	if !ok {
		writeError(w, http.StatusConflict, session.ErrNoForecast)
		return
	}
	view, err := entry.Select(dt)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}

	resp := dayResponse{
		Caption: view.Caption,
		Badges:  view.Badges,
		Min:     view.Min,
		Max:     view.Max,
		Points:  layout.Points(view.Frame),
	}
	if resp.Points == nil {
		resp.Points = []hourly.Point{}
	}
	if wd := entry.Weather(); wd != nil {
		if d, ok := wd.Day(dt); ok {
			resp.Detail = fmt.Sprintf("High: %d° Low: %d°", hourly.Round(d.TempMax), hourly.Round(d.TempMin))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleChart renders the session's current frame as a PNG. Without a
// selection the image is fully transparent.
func (h *Handlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	layout, dpr, err := chartLayout(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	renderer := hourly.NewRenderer(layout.Width, layout.Height, dpr)

	timer := h.metrics.ChartTimer()
	var buf bytes.Buffer
	draw := func(f hourly.Frame) error { return renderer.WritePNG(&buf, f) }

	if entry, ok := h.lookup(r); ok {
		err = entry.Draw(draw)
		if errors.Is(err, session.ErrNoDaySelected) {
			err = draw(hourly.Frame{})
		}
	} else {
		err = draw(hourly.Frame{})
	}
	timer.ObserveDuration()
	if err != nil {
		log.Printf("Chart render error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Response write error: %v", err)
	}
}

// HandleTooltip maps a pointer position over the chart to tooltip state
func (h *Handlers) HandleTooltip(w http.ResponseWriter, r *http.Request) {
	layout, _, err := chartLayout(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	x, err := floatParam(r, "x", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := floatParam(r, "y", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var tip hourly.Tooltip
	if entry, ok := h.lookup(r); ok {
		tip = entry.PointerMove(layout, x, y)
	}
	writeJSON(w, http.StatusOK, tip)
}

// HandleTooltipLeave hides the tooltip
func (h *Handlers) HandleTooltipLeave(w http.ResponseWriter, r *http.Request) {
	var tip hourly.Tooltip
	if entry, ok := h.lookup(r); ok {
		tip = entry.PointerLeave()
	}
	writeJSON(w, http.StatusOK, tip)
}

// chartLayout reads w, h and dpr, clamped to sane limits
func chartLayout(r *http.Request) (hourly.Layout, float64, error) {
	width, err := floatParam(r, "w", defaultChartWidth)
	if err != nil {
		return hourly.Layout{}, 0, err
	}
	height, err := floatParam(r, "h", defaultChartHeight)
	if err != nil {
		return hourly.Layout{}, 0, err
	}
	dpr, err := floatParam(r, "dpr", 1)
	if err != nil {
		return hourly.Layout{}, 0, err
	}

	width = clamp(width, 1, maxChartWidth)
	height = clamp(height, 1, maxChartHeight)
	dpr = clamp(dpr, 1, maxDPR)
	if width*height*dpr*dpr > maxDevicePixels {
		dpr = math.Max(1, math.Sqrt(maxDevicePixels/(width*height)))
	}
	return hourly.NewLayout(width, height), dpr, nil
}

func floatParam(r *http.Request, name string, def float64) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %q", name, s)
	}
	return v, nil
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
