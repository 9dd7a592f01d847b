// Package session keeps one forecast dashboard per browser.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/swelljoe/dayplanner/internal/hourly"
	"github.com/swelljoe/dayplanner/internal/weather"
)

// ErrNoForecast is returned when a day is selected before any forecast
// has been loaded into the session.
var ErrNoForecast = errors.New("no forecast loaded")

// ErrNoDaySelected is returned when the chart is asked for before a day
// has been selected.
var ErrNoDaySelected = errors.New("no day selected")

// Entry is a single session. All methods serialize on the entry's mutex so
// a selection and a draw never interleave.
type Entry struct {
	mu        sync.Mutex
	weather   *weather.WeatherData
	dashboard *hourly.Dashboard
	touched   time.Time
}

// Load replaces the session's forecast and selects its default day.
func (e *Entry) Load(wd *weather.WeatherData, loc *time.Location) hourly.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = time.Now()

	e.weather = wd
	e.dashboard = hourly.NewDashboard(wd.Hourly, loc)
	if day, ok := wd.DefaultDay(); ok {
		return e.dashboard.Select(day)
	}
	return e.dashboard.View()
}

// Weather returns the loaded forecast, or nil.
func (e *Entry) Weather() *weather.WeatherData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.weather
}

// Select changes the selected day.
func (e *Entry) Select(day int64) (hourly.View, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = time.Now()

	if e.dashboard == nil {
		return hourly.View{}, ErrNoForecast
	}
	return e.dashboard.Select(day), nil
}

// View describes the current selection.
func (e *Entry) View() hourly.View {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dashboard == nil {
		return hourly.View{Badges: []hourly.Badge{}}
	}
	return e.dashboard.View()
}

// Draw runs fn with the current frame while holding the entry lock.
func (e *Entry) Draw(fn func(hourly.Frame) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = time.Now()

	if e.dashboard == nil {
		return ErrNoDaySelected
	}
	f, ok := e.dashboard.Frame()
	if !ok {
		return ErrNoDaySelected
	}
	return fn(f)
}

// PointerMove updates the tooltip for a pointer over a chart laid out
// with l.
func (e *Entry) PointerMove(l hourly.Layout, x, y float64) hourly.Tooltip {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched = time.Now()

	if e.dashboard == nil {
		return hourly.Tooltip{}
	}
	return e.dashboard.PointerMove(l, x, y)
}

// PointerLeave hides the tooltip.
func (e *Entry) PointerLeave() hourly.Tooltip {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.dashboard == nil {
		return hourly.Tooltip{}
	}
	return e.dashboard.PointerLeave()
}

func (e *Entry) lastUsed() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.touched
}

// Store maps session IDs to entries
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{entries: make(map[string]*Entry)}
}

// Create starts a new session and returns its ID
func (s *Store) Create() (string, *Entry) {
	id := uuid.NewString()
	e := &Entry{touched: time.Now()}

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	return id, e
}

// Get returns the entry for id. Malformed IDs never match.
func (s *Store) Get(id string) (*Entry, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Sweep drops sessions idle for longer than maxAge and returns how many
// were removed.
func (s *Store) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.entries {
		if e.lastUsed().Before(cutoff) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
