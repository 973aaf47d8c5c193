package domain

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Fatalf("load tz: %v", err)
	}
	return loc
}

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in      string
		h, m    int
		wantErr bool
	}{
		{"05:10", 5, 10, false},
		{"19:40", 19, 40, false},
		{"00:00", 0, 0, false},
		{"23:59", 23, 59, false},
		{"05:10 (+05)", 5, 10, false}, // upstream timezone suffix is dropped
		{" 04:32 ", 4, 32, false},
		{"", 0, 0, true},
		{"5h30", 0, 0, true},
		{"25:00", 0, 0, true},
		{"12:61", 0, 0, true},
	}
	for _, c := range cases {
		h, m, err := ParseHHMM(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseHHMM(%q): want error, got %d:%d", c.in, h, m)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseHHMM(%q): %v", c.in, err)
			continue
		}
		if h != c.h || m != c.m {
			t.Errorf("ParseHHMM(%q) = %d:%d, want %d:%d", c.in, h, m, c.h, c.m)
		}
	}
}

func TestBuildTargets_SameDayPreservesClock(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	now := time.Date(2026, time.March, 3, 12, 0, 0, 0, loc)

	imsak, magh, err := BuildTargets(DailyTimes{Imsak: "05:10", Maghrib: "18:25 (+05)"}, now, loc)
	if err != nil {
		t.Fatalf("BuildTargets: %v", err)
	}
	for _, tc := range []struct {
		got  time.Time
		h, m int
	}{
		{imsak, 5, 10},
		{magh, 18, 25},
	} {
		y, mo, d := tc.got.Date()
		if y != 2026 || mo != time.March || d != 3 {
			t.Errorf("target %v not on today's date", tc.got)
		}
		if tc.got.Hour() != tc.h || tc.got.Minute() != tc.m {
			t.Errorf("target %v: want %02d:%02d local", tc.got, tc.h, tc.m)
		}
		if tc.got.Location() != loc {
			t.Errorf("target %v not in configured zone", tc.got)
		}
	}
}

func TestBuildTargets_MalformedInput(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	now := time.Date(2026, time.March, 3, 12, 0, 0, 0, loc)

	if _, _, err := BuildTargets(DailyTimes{Imsak: "bogus", Maghrib: "18:25"}, now, loc); err == nil {
		t.Fatal("want error for malformed imsak")
	}
	if _, _, err := BuildTargets(DailyTimes{Imsak: "05:10", Maghrib: ""}, now, loc); err == nil {
		t.Fatal("want error for empty maghrib")
	}
}

func TestFmtCountdown(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{3 * time.Second, "00:00:03"},
		{90 * time.Second, "00:01:30"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{0, "00:00:00"},
		{-5 * time.Second, "00:00:00"}, // never negative
	}
	for _, c := range cases {
		if got := FmtCountdown(c.in); got != c.want {
			t.Errorf("FmtCountdown(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFmtCountdown_NonIncreasingTowardTarget(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	target := time.Date(2026, time.March, 3, 5, 10, 0, 0, loc)

	prev := ""
	for off := -10; off <= 10; off++ {
		now := target.Add(time.Duration(off) * time.Second)
		got := FmtCountdown(target.Sub(now))
		if prev != "" && got > prev {
			t.Fatalf("countdown increased: %q after %q", got, prev)
		}
		prev = got
	}
	if prev != "00:00:00" {
		t.Fatalf("countdown past target = %q, want floor at 00:00:00", prev)
	}
}
