package hourly

import (
	"fmt"
	"time"
)

// HourLabel formats the local hour of ts on a 12-hour clock, e.g. "9AM".
func HourLabel(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	h := time.Unix(ts, 0).In(loc).Hour()
	ampm := "AM"
	if h >= 12 {
		ampm = "PM"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d%s", h, ampm)
}

// DayShort returns the abbreviated weekday of ts, e.g. "Mon".
func DayShort(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format("Mon")
}

// DayFull returns the full weekday of ts, e.g. "Monday".
func DayFull(ts int64, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return time.Unix(ts, 0).In(loc).Format("Monday")
}
