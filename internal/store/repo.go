package store

import (
	"context"
	"errors"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
)

// ErrNotFound is returned by GetUser when no row exists for the user.
var ErrNotFound = errors.New("user not found")

// Repo defines storage operations for users and the fired markers.
type Repo interface {
	EnsureUser(ctx context.Context, userID int64) error
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	SetCity(ctx context.Context, userID int64, city string) error
	// SetRemindBefore clamps minutes to [1,120] before persisting.
	SetRemindBefore(ctx context.Context, userID int64, minutes int) error
	SetEnabled(ctx context.Context, userID int64, enabled bool) error
	// MarkFired records that the automatic reminder of the given kind fired
	// on the given date ("YYYY-MM-DD" in the configured zone).
	MarkFired(ctx context.Context, userID int64, kind domain.Mode, date string) error
	ListEnabled(ctx context.Context) ([]domain.User, error)
	Close() error
}
