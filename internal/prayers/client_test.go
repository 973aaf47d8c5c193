package prayers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(time.UTC)
	c.base = srv.URL
	return c
}

func TestToday(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/timingsByCity/") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("city") != "Tashkent" || q.Get("country") != "UZ" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Get("method") != "2" || q.Get("school") != "1" {
			t.Errorf("calculation settings missing: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"code":200,"data":{"timings":{"Imsak":"05:10","Maghrib":"18:25 (+05)"}}}`))
	})

	got, err := c.Today(context.Background(), "Tashkent", "UZ")
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if got.Imsak != "05:10" || got.Maghrib != "18:25 (+05)" {
		t.Fatalf("unexpected times: %+v", got)
	}
}

func TestToday_UpstreamError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":404,"data":{}}`))
	})

	if _, err := c.Today(context.Background(), "Nowhere", "UZ"); !errors.Is(err, ErrLookup) {
		t.Fatalf("want ErrLookup, got %v", err)
	}
}

func TestToday_BadJSON(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})

	if _, err := c.Today(context.Background(), "Tashkent", "UZ"); !errors.Is(err, ErrLookup) {
		t.Fatalf("want ErrLookup, got %v", err)
	}
}

func TestCalendar(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calendarByCity/2026/3" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"code":200,"data":[
			{"timings":{"Imsak":"05:12","Maghrib":"18:20"},
			 "date":{"gregorian":{"date":"01-03-2026"},
			         "hijri":{"day":"12","month":{"number":9}}}},
			{"timings":{"Imsak":"05:11","Maghrib":"18:21"},
			 "date":{"gregorian":{"date":"02-03-2026"},
			         "hijri":{"day":"13","month":{"number":9}}}}
		]}`))
	})

	days, err := c.Calendar(context.Background(), 3, 2026, "Tashkent", "UZ")
	if err != nil {
		t.Fatalf("Calendar: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("want 2 days, got %d", len(days))
	}
	first := days[0]
	if first.GregorianDate != "01-03-2026" || first.HijriDay != 12 || first.HijriMonth != 9 {
		t.Fatalf("unexpected first day: %+v", first)
	}
	if first.Imsak != "05:12" || first.Maghrib != "18:20" {
		t.Fatalf("unexpected timings: %+v", first)
	}
}
