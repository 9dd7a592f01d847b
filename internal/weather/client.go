package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/swelljoe/dayplanner/internal/hourly"
)

const (
	defaultBaseURL    = "https://api.openweathermap.org"
	defaultProBaseURL = "https://pro.openweathermap.org"
)

// ErrLocationNotFound is returned when geocoding yields no match.
var ErrLocationNotFound = errors.New("location not found")

// Client handles OpenWeatherMap API interactions
type Client struct {
	APIKey     string
	BaseURL    string
	ProBaseURL string
	UserAgent  string
	HTTPClient *http.Client

	limiter *rate.Limiter
}

// NewClient creates a new OpenWeatherMap client allowing rps requests per
// second with the given burst.
func NewClient(apiKey string, rps float64, burst int) *Client {
	if burst < 1 {
		burst = 1
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    defaultBaseURL,
		ProBaseURL: defaultProBaseURL,
		UserAgent:  "dayplanner/1.0",
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (c *Client) get(ctx context.Context, base, path string, params url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	if base == "" {
		base = defaultBaseURL
	}
	params.Set("appid", c.APIKey)
	requestURL := strings.TrimRight(base, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenWeatherMap API error: %d %s (%s)", resp.StatusCode, http.StatusText(resp.StatusCode), path)
	}

	return io.ReadAll(resp.Body)
}

// Geocode fetches up to limit places matching query
func (c *Client) Geocode(ctx context.Context, query string, limit int) ([]Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", fmt.Sprintf("%d", limit))

	data, err := c.get(ctx, c.BaseURL, "/geo/1.0/direct", params)
	if err != nil {
		return nil, err
	}

	var places []Place
	if err := json.Unmarshal(data, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// ReverseGeocode fetches a human-friendly location name for given coords
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", lat))
	params.Set("lon", fmt.Sprintf("%.6f", lon))
	params.Set("limit", "1")

	data, err := c.get(ctx, c.BaseURL, "/geo/1.0/reverse", params)
	if err != nil {
		return "", err
	}

	var places []Place
	if err := json.Unmarshal(data, &places); err != nil {
		return "", err
	}
	if len(places) == 0 || places[0].Name == "" {
		return "", ErrLocationNotFound
	}
	return places[0].Label(), nil
}

// Condition is one entry of an OpenWeatherMap "weather" array
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type hourEntry struct {
	Dt      int64       `json:"dt"`
	Temp    *float64    `json:"temp"`
	Weather []Condition `json:"weather"`
}

// OneCallResponse represents the One Call 3.0 response
type OneCallResponse struct {
	Timezone string `json:"timezone"`
	Current  struct {
		Dt        int64       `json:"dt"`
		Temp      float64     `json:"temp"`
		FeelsLike float64     `json:"feels_like"`
		Humidity  int         `json:"humidity"`
		WindSpeed float64     `json:"wind_speed"`
		Weather   []Condition `json:"weather"`
	} `json:"current"`
	Hourly []hourEntry `json:"hourly"`
	Daily  []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Day float64 `json:"day"`
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		} `json:"temp"`
		Humidity  int         `json:"humidity"`
		WindSpeed float64     `json:"wind_speed"`
		Weather   []Condition `json:"weather"`
	} `json:"daily"`
}

// OneCall fetches current, daily and hourly data in metric units
func (c *Client) OneCall(ctx context.Context, lat, lon float64) (*OneCallResponse, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("units", "metric")
	params.Set("exclude", "minutely,alerts")

	data, err := c.get(ctx, c.BaseURL, "/data/3.0/onecall", params)
	if err != nil {
		return nil, err
	}

	var oc OneCallResponse
	if err := json.Unmarshal(data, &oc); err != nil {
		return nil, err
	}
	return &oc, nil
}

// HourlyResponse represents the Pro 4-day hourly forecast response
type HourlyResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
		Weather []Condition `json:"weather"`
	} `json:"list"`
}

// Hourly96 fetches the 96-hour forecast from the Pro endpoint
func (c *Client) Hourly96(ctx context.Context, lat, lon float64) ([]hourly.HourSample, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.4f", lat))
	params.Set("lon", fmt.Sprintf("%.4f", lon))
	params.Set("units", "metric")

	data, err := c.get(ctx, c.ProBaseURL, "/data/2.5/forecast/hourly", params)
	if err != nil {
		return nil, err
	}

	var hr HourlyResponse
	if err := json.Unmarshal(data, &hr); err != nil {
		return nil, err
	}

	entries := make([]hourEntry, 0, len(hr.List))
	for _, h := range hr.List {
		entries = append(entries, hourEntry{Dt: h.Dt, Temp: h.Main.Temp, Weather: h.Weather})
	}
	return toSamples(entries), nil
}

// toSamples drops entries without a timestamp or temperature.
func toSamples(entries []hourEntry) []hourly.HourSample {
	samples := make([]hourly.HourSample, 0, len(entries))
	for _, e := range entries {
		if e.Dt == 0 || e.Temp == nil {
			continue
		}
		samples = append(samples, hourly.HourSample{
			Timestamp:   e.Dt,
			Temperature: *e.Temp,
			Icon:        firstCondition(e.Weather).Icon,
		})
	}
	return samples
}

func firstCondition(conds []Condition) Condition {
	if len(conds) == 0 {
		return Condition{}
	}
	return conds[0]
}
