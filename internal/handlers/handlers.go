package handlers

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/swelljoe/dayplanner/internal/hourly"
	"github.com/swelljoe/dayplanner/internal/metrics"
	"github.com/swelljoe/dayplanner/internal/session"
	"github.com/swelljoe/dayplanner/internal/weather"
)

//go:embed templates/*.html
var templateFS embed.FS

const sessionCookie = "dp_session"

// Database defines the interface for database operations needed by handlers
type Database interface {
	Ping() error
}

// WeatherService is the forecast collaborator
type WeatherService interface {
	GetWeather(ctx context.Context, lat, lon float64) (*weather.WeatherData, error)
	SearchLocations(ctx context.Context, q string) ([]weather.Place, error)
	Geocode(ctx context.Context, query string) (float64, float64, error)
}

// Assistant answers reflection and help requests
type Assistant interface {
	Ask(ctx context.Context, assistantID string, payload any) (string, error)
}

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	db        Database
	weather   WeatherService
	sessions  *session.Store
	templates *template.Template
	metrics   *metrics.Collector
	loc       *time.Location

	assistant Assistant
	ids       AssistantIDs
}

// AssistantIDs names the assistant behind each endpoint
type AssistantIDs struct {
	Planner    string
	Reflection string
	Helper     string
}

// New creates a new Handlers instance. database may be nil.
func New(database Database, wService WeatherService, sessions *session.Store) *Handlers {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		log.Printf("Warning: Failed to parse templates: %v", err)
	}
	if sessions == nil {
		sessions = session.NewStore()
	}

	return &Handlers{
		db:        database,
		weather:   wService,
		sessions:  sessions,
		templates: tmpl,
		loc:       time.Local,
	}
}

// WithMetrics records per-route request metrics into m
func (h *Handlers) WithMetrics(m *metrics.Collector) *Handlers {
	h.metrics = m
	return h
}

// WithLocation sets the zone used to split forecasts into calendar days
func (h *Handlers) WithLocation(loc *time.Location) *Handlers {
	if loc != nil {
		h.loc = loc
	}
	return h
}

// WithAssistant enables /plan, /reflect/ and /help/
func (h *Handlers) WithAssistant(a Assistant, ids AssistantIDs) *Handlers {
	h.assistant = a
	h.ids = ids
	return h
}

// Routes registers every endpoint on r
func (h *Handlers) Routes(r *mux.Router) {
	r.Use(h.instrument)

	r.HandleFunc("/", h.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/locations", h.HandleSearch).Methods(http.MethodGet)
	r.HandleFunc("/api/weather", h.HandleWeatherAPI).Methods(http.MethodGet)
	r.HandleFunc("/api/days/{dt:[0-9]+}", h.HandleSelectDay).Methods(http.MethodPost)
	r.HandleFunc("/api/chart.png", h.HandleChart).Methods(http.MethodGet)
	r.HandleFunc("/api/tooltip", h.HandleTooltip).Methods(http.MethodGet)
	r.HandleFunc("/api/tooltip/leave", h.HandleTooltipLeave).Methods(http.MethodPost)
	r.HandleFunc("/plan", h.HandlePlan).Methods(http.MethodPost)
	r.HandleFunc("/reflect/", h.HandleReflect).Methods(http.MethodPost)
	r.HandleFunc("/help/", h.HandleHelp).Methods(http.MethodPost)
}

// HandleIndex handles the main page
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	if h.templates == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", nil); err != nil {
		log.Printf("Error executing template: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// HandleHealth handles health check endpoint
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			status = "degraded"
		}
	} else {
		status = "no_database"
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

// HandleSearch performs location autocomplete
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	places, err := h.weather.SearchLocations(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		log.Printf("Search error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if places == nil {
		places = []weather.Place{}
	}

	type suggestion struct {
		weather.Place
		Label string `json:"label"`
	}
	out := make([]suggestion, 0, len(places))
	for _, p := range places {
		out = append(out, suggestion{Place: p, Label: p.Label()})
	}
	writeJSON(w, http.StatusOK, out)
}

// weatherFragment is the data behind the weather_fragment template
type weatherFragment struct {
	Location string
	Source   string
	Current  weather.Summary
	Day      weather.Summary
	Cards    []weather.DayCard
	Selected int64
	Chart    hourly.View
}

// HandleWeatherAPI loads a forecast into the caller's session and renders
// the dashboard fragment with the default day selected.
func (h *Handlers) HandleWeatherAPI(w http.ResponseWriter, r *http.Request) {
	var lat, lon float64
	var err error

	location := r.URL.Query().Get("location")
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if location != "" {
		lat, lon, err = h.weather.Geocode(r.Context(), location)
		if err != nil {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("<div class='error'>Location not found: " + template.HTMLEscapeString(location) + "</div>"))
			return
		}
	} else if latStr != "" && lonStr != "" {
		if lat, err = strconv.ParseFloat(latStr, 64); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("<div class='error'>Invalid latitude</div>"))
			return
		}
		if lon, err = strconv.ParseFloat(lonStr, 64); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte("<div class='error'>Invalid longitude</div>"))
			return
		}
	} else {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("<div class='error'>Please provide a location</div>"))
		return
	}

	wd, err := h.weather.GetWeather(r.Context(), lat, lon)
	if err != nil {
		log.Printf("Weather error: %v", err)
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<div class='error'>Error loading weather</div>"))
		return
	}

	entry := h.session(w, r)
	view := entry.Load(wd, h.loc)

	frag := weatherFragment{
		Location: wd.Location,
		Source:   wd.Source,
		Current:  weather.CurrentSummary(wd.Current, h.loc),
		Cards:    weather.DayCards(wd.Daily, h.loc),
		Chart:    view,
	}
	frag.Day = frag.Current
	if day, ok := wd.DefaultDay(); ok {
		frag.Selected = day
		if d, ok := wd.Day(day); ok {
			frag.Day = weather.DaySummary(d, h.loc)
		}
	}

	if h.templates == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err := h.templates.ExecuteTemplate(w, "weather_fragment", frag); err != nil {
		log.Printf("Template error: %v", err)
	}
}

// session returns the caller's entry, starting a new session when the
// cookie is missing or stale.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) *session.Entry {
	if e, ok := h.lookup(r); ok {
		return e
	}
	id, e := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	h.metrics.SetActiveSessions(h.sessions.Len())
	return e
}

// lookup returns the caller's existing entry without creating one
func (h *Handlers) lookup(r *http.Request) (*session.Entry, bool) {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil, false
	}
	return h.sessions.Get(c.Value)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("JSON encode error: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		log.Printf("Response write error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

var errBadRequest = errors.New("bad request")
