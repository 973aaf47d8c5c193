package domain

import (
	"fmt"
	"strings"
	"time"
)

// DailyTimes holds today's two fasting boundaries as upstream "HH:MM" strings.
// Fetched fresh per use, never persisted.
type DailyTimes struct {
	Imsak   string
	Maghrib string
}

// ParseHHMM parses a 24-hour "HH:MM" string. Upstream sometimes appends a
// timezone suffix ("05:10 (+05)"), so only the first 5 characters are read.
func ParseHHMM(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	if len(s) > 5 {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("parse HH:MM %q: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}

// BuildTargets combines today's date (the date of now in loc) with each
// boundary and returns the two absolute targets. Callers must pass a fresh
// now on every call; the result is never valid across a midnight boundary.
func BuildTargets(t DailyTimes, now time.Time, loc *time.Location) (imsakAt, maghribAt time.Time, err error) {
	imH, imM, err := ParseHHMM(t.Imsak)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("imsak: %w", err)
	}
	mgH, mgM, err := ParseHHMM(t.Maghrib)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("maghrib: %w", err)
	}
	d := now.In(loc)
	imsakAt = time.Date(d.Year(), d.Month(), d.Day(), imH, imM, 0, 0, loc)
	maghribAt = time.Date(d.Year(), d.Month(), d.Day(), mgH, mgM, 0, 0, loc)
	return imsakAt, maghribAt, nil
}

// FmtCountdown formats a remaining duration as HH:MM:SS, clamped at zero.
func FmtCountdown(d time.Duration) string {
	sec := int(d.Seconds())
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
