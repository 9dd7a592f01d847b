package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds runtime settings read from the environment
type Config struct {
	Port   string
	DBPath string

	OWMKey        string
	OWMBaseURL    string
	OWMProBaseURL string
	OWMRPS        float64
	OWMBurst      int
	CacheTTL      time.Duration

	AssistantURL          string
	AssistantKey          string
	PlannerAssistantID    string
	ReflectionAssistantID string
	HelperAssistantID     string
	AssistantTimeout      time.Duration

	// TZName names the location used to decide which calendar day a
	// forecast hour belongs to.
	TZName string
}

// Load reads .env (if present) and the process environment
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() *Config {
	return &Config{
		Port:                  getEnvOrDefault("PORT", "8080"),
		DBPath:                getEnvOrDefault("DB_PATH", "dayplanner.db"),
		OWMKey:                os.Getenv("OWM_KEY"),
		OWMBaseURL:            os.Getenv("OWM_BASE_URL"),
		OWMProBaseURL:         os.Getenv("OWM_PRO_BASE_URL"),
		OWMRPS:                getEnvFloat("OWM_RPS", 1),
		OWMBurst:              getEnvInt("OWM_BURST", 5),
		CacheTTL:              getEnvDuration("CACHE_TTL", time.Hour),
		AssistantURL:          os.Getenv("ASSISTANT_URL"),
		AssistantKey:          os.Getenv("ASSISTANT_KEY"),
		PlannerAssistantID:    os.Getenv("PLANNER_ASSISTANT_ID"),
		ReflectionAssistantID: os.Getenv("REFLECTION_ASSISTANT_ID"),
		HelperAssistantID:     os.Getenv("HELPER_ASSISTANT_ID"),
		AssistantTimeout:      getEnvDuration("ASSISTANT_TIMEOUT", 30*time.Second),
		TZName:                getEnvOrDefault("TZ_NAME", "Local"),
	}
}

// Validate reports settings the server cannot run without
func (c *Config) Validate() error {
	if c.OWMKey == "" {
		return errors.New("OWM_KEY is required")
	}
	if c.OWMRPS <= 0 {
		return errors.New("OWM_RPS must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TZName
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.TZName)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	log.Printf("Warning: invalid %s=%q, using %d", key, v, def)
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	log.Printf("Warning: invalid %s=%q, using %g", key, v, def)
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	log.Printf("Warning: invalid %s=%q, using %s", key, v, def)
	return def
}
