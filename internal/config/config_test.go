package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "OWM_KEY", "OWM_RPS", "OWM_BURST", "CACHE_TTL", "ASSISTANT_TIMEOUT", "TZ_NAME"} {
		t.Setenv(k, "")
	}

	c := FromEnv()
	if c.Port != "8080" {
		t.Errorf("Port = %q", c.Port)
	}
	if c.DBPath != "dayplanner.db" {
		t.Errorf("DBPath = %q", c.DBPath)
	}
	if c.OWMRPS != 1 || c.OWMBurst != 5 {
		t.Errorf("rate = %v/%d", c.OWMRPS, c.OWMBurst)
	}
	if c.CacheTTL != time.Hour || c.AssistantTimeout != 30*time.Second {
		t.Errorf("durations = %s, %s", c.CacheTTL, c.AssistantTimeout)
	}
	if c.TZName != "Local" {
		t.Errorf("TZName = %q", c.TZName)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OWM_KEY", "abc")
	t.Setenv("OWM_RPS", "2.5")
	t.Setenv("OWM_BURST", "nope")
	t.Setenv("CACHE_TTL", "15m")
	t.Setenv("TZ_NAME", "Europe/Paris")
	t.Setenv("PLANNER_ASSISTANT_ID", "asst_plan")

	c := FromEnv()
	if c.Port != "9090" || c.OWMKey != "abc" {
		t.Errorf("unexpected config %+v", c)
	}
	if c.PlannerAssistantID != "asst_plan" {
		t.Errorf("PlannerAssistantID = %q", c.PlannerAssistantID)
	}
	if c.OWMRPS != 2.5 {
		t.Errorf("OWMRPS = %v", c.OWMRPS)
	}
	if c.OWMBurst != 5 {
		t.Errorf("invalid OWM_BURST should keep default, got %d", c.OWMBurst)
	}
	if c.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %s", c.CacheTTL)
	}
	loc, err := c.Location()
	if err != nil || loc.String() != "Europe/Paris" {
		t.Errorf("Location() = %v, %v", loc, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "ok", cfg: Config{OWMKey: "k", OWMRPS: 1, TZName: "UTC"}},
		{name: "missing key", cfg: Config{OWMRPS: 1, TZName: "UTC"}, wantErr: true},
		{name: "zero rate", cfg: Config{OWMKey: "k", TZName: "UTC"}, wantErr: true},
		{name: "bad zone", cfg: Config{OWMKey: "k", OWMRPS: 1, TZName: "Nowhere/Special"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
