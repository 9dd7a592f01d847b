package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/swelljoe/dayplanner/internal/assistant"
	"github.com/swelljoe/dayplanner/internal/hourly"
)

const maxBodyBytes = 64 << 10

var errNoAssistant = errors.New("assistant not configured")

type reflectRequest struct {
	Activities []assistant.Activity `json:"activities"`
}

type helpRequest struct {
	Question   string               `json:"question"`
	Activities []assistant.Activity `json:"activities"`
}

type planRequest struct {
	Location   string `json:"location"`
	Date       string `json:"date"`
	UserPrompt string `json:"user_prompt"`
}

type planResponse struct {
	Location   string                      `json:"location"`
	Date       string                      `json:"date"`
	Activities []assistant.PlannedActivity `json:"activities"`
}

// HandlePlan asks the planning assistant for a schedule at a location on
// a date, passing along the hourly forecast for that place.
func (h *Handlers) HandlePlan(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, errNoAssistant)
		return
	}

	var req planRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Location = strings.TrimSpace(req.Location)
	req.Date = strings.TrimSpace(req.Date)
	if req.Location == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, errors.New("location and date are required"))
		return
	}
	if _, err := time.ParseInLocation("2006-01-02", req.Date, h.loc); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("date must be YYYY-MM-DD"))
		return
	}

	lat, lon, err := h.weather.Geocode(r.Context(), req.Location)
	if err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}

	// The plan is still useful without a forecast.
	forecast := []hourly.HourSample{}
	if wd, err := h.weather.GetWeather(r.Context(), lat, lon); err != nil {
		log.Printf("Plan weather error: %v", err)
	} else if wd.Hourly != nil {
		forecast = wd.Hourly
	}

	raw, err := h.assistant.Ask(r.Context(), h.ids.Planner, assistant.PlanRequest{
		Location:       req.Location,
		Date:           req.Date,
		UserPrompt:     req.UserPrompt,
		HourlyForecast: forecast,
	})
	if err != nil {
		log.Printf("Planner error: %v", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, planResponse{
		Location:   req.Location,
		Date:       req.Date,
		Activities: assistant.ParsePlan(raw),
	})
}

// HandleReflect asks the reflection assistant to summarize the day
func (h *Handlers) HandleReflect(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, errNoAssistant)
		return
	}

	var req reflectRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Activities == nil {
		req.Activities = []assistant.Activity{}
	}

	raw, err := h.assistant.Ask(r.Context(), h.ids.Reflection, req)
	if err != nil {
		log.Printf("Reflection error: %v", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, assistant.ParseReflection(raw))
}

// HandleHelp forwards a free-form question with the day's activities
func (h *Handlers) HandleHelp(w http.ResponseWriter, r *http.Request) {
	if h.assistant == nil {
		writeError(w, http.StatusServiceUnavailable, errNoAssistant)
		return
	}

	var req helpRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, errors.New("question is required"))
		return
	}
	if req.Activities == nil {
		req.Activities = []assistant.Activity{}
	}

	reply, err := h.assistant.Ask(r.Context(), h.ids.Helper, req)
	if err != nil {
		log.Printf("Helper error: %v", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errBadRequest
	}
	return nil
}
