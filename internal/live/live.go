// Package live owns the per-chat countdown sessions: single bound message
// edited once a second until the target passes, at most one session per chat.
package live

import (
	"context"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
)

// Messenger is the chat transport a countdown session needs.
type Messenger interface {
	// SendBound sends the message the session will keep editing and returns
	// its id. Implementations may attach a stop control to it.
	SendBound(chatID int64, text string) (int, error)
	// Edit rewrites the bound message; failing means the message or chat is
	// no longer reachable.
	Edit(chatID int64, messageID int, text string) error
	// Notify sends a one-off text (the final "time reached" notice).
	Notify(chatID int64, text string) error
}

// TimesProvider fetches today's boundaries for a city.
type TimesProvider interface {
	Today(ctx context.Context, city, country string) (domain.DailyTimes, error)
}
