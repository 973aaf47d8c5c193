package prayers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
)

const defaultBaseURL = "https://api.aladhan.com/v1"

// ErrLookup covers unrecognized places and upstream errors. Callers treat it
// as transient and retry; it never carries user-facing detail.
var ErrLookup = errors.New("prayer times lookup failed")

const (
	todayTimeout    = 20 * time.Second
	calendarTimeout = 30 * time.Second

	// aladhan calculation settings, same for every request.
	method = 2
	school = 1
)

// Client fetches daily timings and month calendars from api.aladhan.com.
type Client struct {
	http    *http.Client
	base    string
	loc     *time.Location
	limiter *rate.Limiter
}

// NewClient builds a Client. The location decides what "today" means when
// requesting daily timings.
func NewClient(loc *time.Location) *Client {
	return &Client{
		http: &http.Client{},
		base: defaultBaseURL,
		loc:  loc,
		// One countdown per second per chat plus the 30s poller; 5 rps is
		// comfortably under the upstream's tolerance.
		limiter: rate.NewLimiter(rate.Limit(5), 5),
	}
}

// CalendarDay is one row of a month calendar.
type CalendarDay struct {
	GregorianDate string // "dd-mm-yyyy"
	HijriDay      int
	HijriMonth    int
	Imsak         string
	Maghrib       string
}

type timingsPayload struct {
	Imsak   string `json:"Imsak"`
	Maghrib string `json:"Maghrib"`
}

type todayResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings timingsPayload `json:"timings"`
	} `json:"data"`
}

type calendarResponse struct {
	Code int `json:"code"`
	Data []struct {
		Timings timingsPayload `json:"timings"`
		Date    struct {
			Gregorian struct {
				Date string `json:"date"`
			} `json:"gregorian"`
			Hijri struct {
				Day   string `json:"day"`
				Month struct {
					Number int `json:"number"`
				} `json:"month"`
			} `json:"hijri"`
		} `json:"date"`
	} `json:"data"`
}

// Today returns today's imsak and maghrib for a city.
func (c *Client) Today(ctx context.Context, city, country string) (domain.DailyTimes, error) {
	ctx, cancel := context.WithTimeout(ctx, todayTimeout)
	defer cancel()

	day := time.Now().In(c.loc).Format("02-01-2006")
	u := fmt.Sprintf("%s/timingsByCity/%s?%s", c.base, day, url.Values{
		"city":    {city},
		"country": {country},
		"method":  {strconv.Itoa(method)},
		"school":  {strconv.Itoa(school)},
	}.Encode())

	var resp todayResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return domain.DailyTimes{}, err
	}
	if resp.Code != http.StatusOK {
		return domain.DailyTimes{}, fmt.Errorf("%w: upstream code %d", ErrLookup, resp.Code)
	}
	return domain.DailyTimes{
		Imsak:   resp.Data.Timings.Imsak,
		Maghrib: resp.Data.Timings.Maghrib,
	}, nil
}

// Calendar returns the Gregorian month calendar for a city.
func (c *Client) Calendar(ctx context.Context, month, year int, city, country string) ([]CalendarDay, error) {
	ctx, cancel := context.WithTimeout(ctx, calendarTimeout)
	defer cancel()

	u := fmt.Sprintf("%s/calendarByCity/%d/%d?%s", c.base, year, month, url.Values{
		"city":    {city},
		"country": {country},
		"method":  {strconv.Itoa(method)},
		"school":  {strconv.Itoa(school)},
	}.Encode())

	var resp calendarResponse
	if err := c.getJSON(ctx, u, &resp); err != nil {
		return nil, err
	}
	if resp.Code != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream code %d", ErrLookup, resp.Code)
	}

	days := make([]CalendarDay, 0, len(resp.Data))
	for _, d := range resp.Data {
		hijriDay, _ := strconv.Atoi(d.Date.Hijri.Day)
		days = append(days, CalendarDay{
			GregorianDate: d.Date.Gregorian.Date,
			HijriDay:      hijriDay,
			HijriMonth:    d.Date.Hijri.Month.Number,
			Imsak:         d.Timings.Imsak,
			Maghrib:       d.Timings.Maghrib,
		})
	}
	return days, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrLookup, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookup, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLookup, err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrLookup, err)
	}
	return nil
}
