package domain

import (
	"testing"
	"time"
)

func TestChooseMode(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	day := func(h, m int) time.Time {
		return time.Date(2026, time.March, 3, h, m, 0, 0, loc)
	}
	imsak := day(5, 10)
	magh := day(19, 40)

	cases := []struct {
		now  time.Time
		want Mode
	}{
		{day(4, 0), ModeImsak},
		{day(5, 10), ModeMaghrib}, // boundary belongs to the next phase
		{day(6, 0), ModeMaghrib},
		{day(19, 39), ModeMaghrib},
		// After maghrib today's elapsed imsak is reused; the session loop
		// sees a non-positive remaining and exits on its first tick.
		{day(20, 0), ModeImsak},
	}
	for _, c := range cases {
		if got := ChooseMode(imsak, magh, c.now); got != c.want {
			t.Errorf("ChooseMode(now=%s) = %s, want %s", c.now.Format("15:04"), got, c.want)
		}
	}
}

func TestPrivateChatID(t *testing.T) {
	if got := PrivateChatID(12345); got != 12345 {
		t.Fatalf("PrivateChatID(12345) = %d", got)
	}
}

func TestDateKey(t *testing.T) {
	loc := mustLoc(t, "Asia/Tashkent")
	// 23:30 UTC on the 3rd is already the 4th in Tashkent.
	utc := time.Date(2026, time.March, 3, 23, 30, 0, 0, time.UTC)
	if got := DateKey(utc, loc); got != "2026-03-04" {
		t.Fatalf("DateKey = %q, want 2026-03-04", got)
	}
}
