// Package assistant talks to the reflection and helper assistants that
// summarize a user's completed schedule.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/swelljoe/dayplanner/internal/hourly"
)

// NoResponse is returned as the reply when the assistant produced nothing.
const NoResponse = "⏳ No response (timed out or empty)."

// ErrNotConfigured is returned when no assistant endpoint is set.
var ErrNotConfigured = errors.New("assistant endpoint not configured")

// Activity is the user's feedback on one scheduled activity
type Activity struct {
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	Feedback    string `json:"feedback"`
}

// Reflection is the parsed daily reflection
type Reflection struct {
	Summary         string   `json:"summary"`
	Reflections     string   `json:"reflections"`
	Accomplishments []string `json:"accomplishments"`
	NextStep        string   `json:"next_step"`
}

// PlanRequest is sent to the planning assistant
type PlanRequest struct {
	Location       string              `json:"location"`
	Date           string              `json:"date"`
	UserPrompt     string              `json:"user_prompt"`
	HourlyForecast []hourly.HourSample `json:"hourly_forecast"`
}

// PlannedActivity is one entry of a generated schedule. WeatherIcon is the
// condition code the planner expects for the slot.
type PlannedActivity struct {
	Time                string `json:"time"`
	Location            string `json:"location"`
	Description         string `json:"description"`
	WeatherIcon         string `json:"weather_icon"`
	ExpectedWeatherCode string `json:"expected_weather_code"`
	Glyph               string `json:"glyph"`
}

// Client posts payloads to an assistant endpoint
type Client struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates an assistant client with the given request timeout
func NewClient(url, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		URL:    url,
		APIKey: apiKey,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type askRequest struct {
	AssistantID string `json:"assistant_id"`
	Input       any    `json:"input"`
}

type askResponse struct {
	Output string `json:"output"`
}

// Ask sends payload to the assistant identified by assistantID and returns
// its text reply.
func (c *Client) Ask(ctx context.Context, assistantID string, payload any) (string, error) {
	if c.URL == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(askRequest{AssistantID: assistantID, Input: payload})
	if err != nil {
		return "", fmt.Errorf("encode assistant request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var out askResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("decode assistant response: %w", err)
	}
	if strings.TrimSpace(out.Output) == "" {
		return NoResponse, nil
	}
	return out.Output, nil
}

var fencePattern = regexp.MustCompile("(?s)```(?:json)?\\s*(\\{.*\\})\\s*```")

func unfence(raw string) string {
	if m := fencePattern.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// ParseReflection decodes a reflection reply, tolerating a Markdown code
// fence around the JSON. Unparseable replies become the Reflections text.
func ParseReflection(raw string) Reflection {
	var r Reflection
	if err := json.Unmarshal([]byte(unfence(raw)), &r); err != nil {
		return Reflection{
			Reflections:     strings.TrimSpace(raw),
			Accomplishments: []string{},
		}
	}
	if r.Accomplishments == nil {
		r.Accomplishments = []string{}
	}
	return r
}

// ParsePlan extracts the activities list from a planner reply. A reply
// that is not a JSON object with activities yields an empty schedule.
func ParsePlan(raw string) []PlannedActivity {
	var plan struct {
		Activities []PlannedActivity `json:"activities"`
	}
	if err := json.Unmarshal([]byte(unfence(raw)), &plan); err != nil {
		return []PlannedActivity{}
	}

	out := make([]PlannedActivity, 0, len(plan.Activities))
	for _, a := range plan.Activities {
		a.ExpectedWeatherCode = a.WeatherIcon
		a.Glyph = hourly.IconFor(a.WeatherIcon)
		out = append(out, a)
	}
	return out
}
