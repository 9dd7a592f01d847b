package hourly

import (
	"testing"
	"time"
)

func TestDashboard_NoSelection(t *testing.T) {
	d := NewDashboard(fourDays(), time.UTC)
	if d.Selected() {
		t.Fatal("new dashboard should have no day selected")
	}
	if _, ok := d.Frame(); ok {
		t.Error("Frame() reported a selection")
	}
	v := d.View()
	if v.Caption != "" || len(v.Badges) != 0 {
		t.Errorf("unexpected view before selection: %+v", v)
	}
}

func TestDashboard_SelectReplacesFrame(t *testing.T) {
	d := NewDashboard(fourDays(), time.UTC)
	dayB := dayA + 48*hour

	a := d.Select(dayA)
	if a.Caption != "Hourly for Mon" {
		t.Errorf("caption = %q", a.Caption)
	}
	if len(a.Badges) != 24 {
		t.Fatalf("expected 24 badges for day A, got %d", len(a.Badges))
	}

	b := d.Select(dayB)
	if b.Caption != "Hourly for Wed" {
		t.Errorf("caption = %q", b.Caption)
	}
	f, ok := d.Frame()
	if !ok {
		t.Fatal("expected a selection")
	}
	for _, s := range f.Samples {
		if s.Timestamp < dayB || s.Timestamp >= dayB+24*hour {
			t.Fatalf("frame for day B contains foreign sample %d", s.Timestamp)
		}
	}
	if len(b.Badges) != 24 {
		t.Errorf("expected 24 badges for day B, got %d", len(b.Badges))
	}
}

func TestDashboard_SelectDayWithoutSamples(t *testing.T) {
	d := NewDashboard(fourDays(), time.UTC)
	d.Select(dayA)

	v := d.Select(dayA + 10*24*hour)
	if len(v.Badges) != 0 {
		t.Errorf("expected badges to be cleared, got %d", len(v.Badges))
	}
	if !d.Selected() {
		t.Error("selection state should remain set")
	}
}

func TestDashboard_Tooltip(t *testing.T) {
	d := NewDashboard(hourlySeries(dayA+9*hour, 20, 22, 19), time.UTC)
	d.Select(dayA)
	l := NewLayout(220, 100)

	tip := d.PointerMove(l, l.Pad+l.UsableWidth(), 40)
	if !tip.Visible || tip.Text != "11AM – 19°C" {
		t.Fatalf("unexpected tooltip %+v", tip)
	}

	// Out of range keeps the last tooltip.
	if got := d.PointerMove(l, 5000, 40); got != tip {
		t.Errorf("expected %+v, got %+v", tip, got)
	}

	if got := d.PointerLeave(); got.Visible {
		t.Error("tooltip still visible after leave")
	}

	// A new selection resets pointer feedback.
	d.PointerMove(l, l.Pad, 40)
	d.Select(dayA + 24*hour)
	if got := d.PointerMove(l, l.Pad, 40); got.Visible {
		t.Errorf("tooltip shows data for an empty day: %+v", got)
	}
}

func TestBadges(t *testing.T) {
	samples := []HourSample{
		{Timestamp: dayA + 13*hour, Temperature: 21.6, Icon: "10d"},
		{Timestamp: dayA + 14*hour, Temperature: -0.4, Icon: "bogus"},
	}
	badges := Badges(SelectDay(samples, dayA, time.UTC))

	want := []Badge{
		{Glyph: "🌦️", Label: "1PM", Temperature: 22},
		{Glyph: "", Label: "2PM", Temperature: 0},
	}
	if len(badges) != len(want) {
		t.Fatalf("expected %d badges, got %d", len(want), len(badges))
	}
	for i := range want {
		if badges[i] != want[i] {
			t.Errorf("badge %d = %+v, want %+v", i, badges[i], want[i])
		}
	}
}
