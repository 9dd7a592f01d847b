package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/swelljoe/dayplanner/internal/db"
	"github.com/swelljoe/dayplanner/internal/hourly"
	"github.com/swelljoe/dayplanner/internal/metrics"
)

// Cache stores serialized forecasts and geocoding results
type Cache interface {
	GetCachedWeather(lat, lon float64) (*db.CachedWeather, error)
	SetCachedWeather(lat, lon float64, data string, ttl time.Duration) error
	GetCachedGeocode(query string) (string, bool, error)
	SetCachedGeocode(query, data string, ttl time.Duration) error
}

// Service handles weather business logic and caching
type Service struct {
	client  *Client
	cache   Cache
	ttl     time.Duration
	metrics *metrics.Collector
	now     func() time.Time
}

// NewService creates a new weather service. cache and m may be nil.
func NewService(client *Client, cache Cache, ttl time.Duration, m *metrics.Collector) *Service {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Service{
		client:  client,
		cache:   cache,
		ttl:     ttl,
		metrics: m,
		now:     time.Now,
	}
}

// GetWeather returns weather data for a given location, utilizing caching
func (s *Service) GetWeather(ctx context.Context, lat, lon float64) (*WeatherData, error) {
	// Round to 2 decimal places (approx 1.1km) to share cache entries
	const precision = 100.0
	rLat := math.Round(lat*precision) / precision
	rLon := math.Round(lon*precision) / precision

	if s.cache != nil {
		cached, err := s.cache.GetCachedWeather(rLat, rLon)
		if err != nil {
			log.Printf("Cache error: %v", err)
			s.metrics.RecordCache("weather", "error")
		}
		if cached != nil {
			var wd WeatherData
			if err := json.Unmarshal([]byte(cached.Data), &wd); err == nil {
				wd.CachedAt = cached.CreatedAt
				wd.ExpiresAt = cached.ExpiresAt
				s.metrics.RecordCache("weather", "hit")
				return &wd, nil
			} else {
				log.Printf("Cache unmarshal error: %v", err)
			}
		}
		s.metrics.RecordCache("weather", "miss")
	}

	wd, err := s.fetchFreshWeather(ctx, rLat, rLon)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		data, err := json.Marshal(wd)
		if err == nil {
			if err := s.cache.SetCachedWeather(rLat, rLon, string(data), s.ttl); err != nil {
				log.Printf("Failed to update cache: %v", err)
			}
		}
	}

	return wd, nil
}

func (s *Service) fetchFreshWeather(ctx context.Context, lat, lon float64) (*WeatherData, error) {
	oc, err := s.client.OneCall(ctx, lat, lon)
	s.metrics.RecordUpstream("onecall", err)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}

	// The Pro hourly feed covers 96 hours; the One Call list is the fallback.
	source := "pro"
	samples, err := s.client.Hourly96(ctx, lat, lon)
	s.metrics.RecordUpstream("hourly96", err)
	if err != nil || len(samples) == 0 {
		if err != nil {
			log.Printf("Fallback to One Call hourly: %v", err)
		} else {
			log.Printf("Fallback to One Call hourly: empty list")
		}
		samples = toSamples(oc.Hourly)
		source = "onecall"
	}

	now := s.now()
	wd := transform(oc, samples)
	wd.Source = source
	wd.CachedAt = now
	wd.ExpiresAt = now.Add(s.ttl)

	// Non-fatal: a missing name only affects the location input
	loc, err := s.client.ReverseGeocode(ctx, lat, lon)
	s.metrics.RecordUpstream("reverse", err)
	if err == nil {
		wd.Location = loc
	} else {
		log.Printf("Reverse geocode error: %v", err)
	}

	return wd, nil
}

func transform(oc *OneCallResponse, samples []hourly.HourSample) *WeatherData {
	cur := firstCondition(oc.Current.Weather)
	wd := &WeatherData{
		Current: CurrentCondition{
			Dt:          oc.Current.Dt,
			Temperature: oc.Current.Temp,
			FeelsLike:   oc.Current.FeelsLike,
			Humidity:    oc.Current.Humidity,
			WindSpeed:   oc.Current.WindSpeed,
			Description: cur.Description,
			Icon:        cur.Icon,
		},
		Daily:  make([]DailyForecast, 0, len(oc.Daily)),
		Hourly: samples,
	}

	for _, d := range oc.Daily {
		cond := firstCondition(d.Weather)
		wd.Daily = append(wd.Daily, DailyForecast{
			Dt:          d.Dt,
			TempDay:     d.Temp.Day,
			TempMin:     d.Temp.Min,
			TempMax:     d.Temp.Max,
			Humidity:    d.Humidity,
			WindSpeed:   d.WindSpeed,
			Description: cond.Description,
			Icon:        cond.Icon,
		})
	}

	return wd
}

// SearchLocations returns autocomplete matches for q. Queries shorter
// than two characters return no matches.
func (s *Service) SearchLocations(ctx context.Context, q string) ([]Place, error) {
	q = strings.TrimSpace(q)
	if len([]rune(q)) < 2 {
		return []Place{}, nil
	}
	key := strings.ToLower(q)

	if s.cache != nil {
		data, ok, err := s.cache.GetCachedGeocode(key)
		if err != nil {
			log.Printf("Geocode cache error: %v", err)
		}
		if ok {
			var places []Place
			if err := json.Unmarshal([]byte(data), &places); err == nil {
				s.metrics.RecordCache("geocode", "hit")
				return places, nil
			}
		}
		s.metrics.RecordCache("geocode", "miss")
	}

	places, err := s.client.Geocode(ctx, q, 5)
	s.metrics.RecordUpstream("geocode", err)
	if err != nil {
		return nil, err
	}
	if places == nil {
		places = []Place{}
	}

	if s.cache != nil {
		if data, err := json.Marshal(places); err == nil {
			if err := s.cache.SetCachedGeocode(key, string(data), s.ttl); err != nil {
				log.Printf("Failed to update geocode cache: %v", err)
			}
		}
	}
	return places, nil
}

// Geocode resolves a location string to the coordinates of its best match
func (s *Service) Geocode(ctx context.Context, query string) (float64, float64, error) {
	places, err := s.client.Geocode(ctx, query, 1)
	s.metrics.RecordUpstream("geocode", err)
	if err != nil {
		return 0, 0, err
	}
	if len(places) == 0 {
		return 0, 0, ErrLocationNotFound
	}
	return places[0].Lat, places[0].Lon, nil
}
