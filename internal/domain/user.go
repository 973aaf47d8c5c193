package domain

import "time"

// User represents per-user reminder settings and the once-per-day fired markers.
type User struct {
	UserID          int64
	City            string
	RemindBefore    int  // minutes before each target, clamped to [1,120]
	RemindEnabled   bool // automatic reminders on/off
	LastImsakDate   string // "YYYY-MM-DD" in the configured zone, "" if never fired
	LastMaghribDate string
	CreatedAt       time.Time // UTC
}

// PrivateChatID maps a user to their private chat. Telegram private chat ids
// equal user ids; automatic reminders depend on that equality only through
// this function.
func PrivateChatID(userID int64) int64 { return userID }

// DateKey returns the calendar date of t in loc, the format the fired
// markers are compared with.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}
