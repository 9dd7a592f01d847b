package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordUpstream(t *testing.T) {
	c := NewCollector("test", prometheus.NewRegistry())

	c.RecordUpstream("onecall", nil)
	c.RecordUpstream("onecall", nil)
	c.RecordUpstream("onecall", errors.New("boom"))

	if got := testutil.ToFloat64(c.UpstreamRequestsTotal.WithLabelValues("onecall", "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.UpstreamRequestsTotal.WithLabelValues("onecall", "error")); got != 1 {
		t.Errorf("error count = %v, want 1", got)
	}
}

func TestRecordCacheAndSessions(t *testing.T) {
	c := NewCollector("test", prometheus.NewRegistry())

	c.RecordCache("weather", "hit")
	c.SetActiveSessions(3)

	if got := testutil.ToFloat64(c.CacheLookupsTotal.WithLabelValues("weather", "hit")); got != 1 {
		t.Errorf("hit count = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.ActiveSessions); got != 3 {
		t.Errorf("sessions = %v, want 3", got)
	}
}

func TestChartTimer(t *testing.T) {
	c := NewCollector("test", prometheus.NewRegistry())

	c.ChartTimer().ObserveDuration()

	if got := testutil.ToFloat64(c.ChartRendersTotal); got != 1 {
		t.Errorf("renders = %v, want 1", got)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector

	// None of these may panic.
	c.RecordUpstream("x", nil)
	c.RecordCache("x", "hit")
	c.RecordHTTPRequest("/", "GET", "200", time.Millisecond)
	c.SetActiveSessions(1)
	if d := c.ChartTimer().ObserveDuration(); d < 0 {
		t.Errorf("negative duration %v", d)
	}
}

func TestSeparateRegistries(t *testing.T) {
	// Each collector owns its registry, so building two must not panic.
	NewCollector("a", prometheus.NewRegistry())
	NewCollector("a", prometheus.NewRegistry())
}
