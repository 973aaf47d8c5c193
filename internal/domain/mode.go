package domain

import "time"

// Mode says which boundary a countdown runs toward.
type Mode string

const (
	ModeImsak   Mode = "imsak"
	ModeMaghrib Mode = "maghrib"
)

// ChooseMode picks the boundary a freshly started countdown should target.
// After maghrib it falls back to today's already elapsed imsak target, so a
// session started then terminates on its first tick. Tomorrow's imsak is
// deliberately not computed; BuildTargets never crosses midnight.
func ChooseMode(imsakAt, maghribAt, now time.Time) Mode {
	if now.Before(imsakAt) {
		return ModeImsak
	}
	if now.Before(maghribAt) {
		return ModeMaghrib
	}
	return ModeImsak
}
