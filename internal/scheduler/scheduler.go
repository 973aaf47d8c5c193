package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
	"github.com/Abdurahmonovz/ramadan/internal/store"
)

// SessionStarter is the slice of the live registry the poller needs.
type SessionStarter interface {
	Start(ctx context.Context, chatID, ownerID int64, mode domain.Mode)
	IsRunning(chatID int64) bool
}

// TimesProvider fetches today's boundaries for a city.
type TimesProvider interface {
	Today(ctx context.Context, city, country string) (domain.DailyTimes, error)
}

// Scheduler polls every enabled user and starts an automatic countdown in the
// user's private chat when now enters the pre-target reminder window, at most
// once per user per boundary per day.
type Scheduler struct {
	repo     store.Repo
	times    TimesProvider
	sessions SessionStarter
	log      *zap.Logger
	loc      *time.Location
	country  string

	interval time.Duration
	window   time.Duration
	now      func() time.Time
}

// New creates a Scheduler. The poll interval and the trigger window share the
// same 30s width, so consecutive cycles cannot both observe an open window.
func New(repo store.Repo, times TimesProvider, sessions SessionStarter, log *zap.Logger, loc *time.Location, country string) *Scheduler {
	return &Scheduler{
		repo:     repo,
		times:    times,
		sessions: sessions,
		log:      log,
		loc:      loc,
		country:  country,
		interval: 30 * time.Second,
		window:   30 * time.Second,
		now:      time.Now,
	}
}

// Run starts the loop until ctx is canceled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("reminder poller stopping")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick performs one polling cycle. Failures are isolated per user; one bad
// fetch or write never aborts the rest of the cycle.
func (s *Scheduler) tick(ctx context.Context) {
	users, err := s.repo.ListEnabled(ctx)
	if err != nil {
		s.log.Error("ListEnabled failed", zap.Error(err))
		return
	}

	now := s.now().In(s.loc)
	today := domain.DateKey(now, s.loc)

	for _, u := range users {
		s.checkUser(ctx, u, now, today)
	}
}

func (s *Scheduler) checkUser(ctx context.Context, u domain.User, now time.Time, today string) {
	// Automatic reminders go to the user's private chat only; group
	// countdowns are started by explicit command.
	chatID := domain.PrivateChatID(u.UserID)
	if s.sessions.IsRunning(chatID) {
		return
	}

	times, err := s.times.Today(ctx, u.City, s.country)
	if err != nil {
		s.log.Debug("times fetch failed, retrying next cycle",
			zap.Error(err), zap.Int64("userID", u.UserID))
		return
	}
	imsakAt, maghribAt, err := domain.BuildTargets(times, now, s.loc)
	if err != nil {
		s.log.Debug("malformed times, retrying next cycle",
			zap.Error(err), zap.Int64("userID", u.UserID))
		return
	}

	lead := time.Duration(u.RemindBefore) * time.Minute

	if s.inWindow(now, imsakAt.Add(-lead)) {
		// An open imsak window short-circuits the maghrib check this cycle,
		// marker or not; the windows are only 30s wide.
		if u.LastImsakDate != today {
			s.fire(ctx, u, chatID, domain.ModeImsak, today)
		}
		return
	}

	if s.inWindow(now, maghribAt.Add(-lead)) {
		if u.LastMaghribDate != today {
			s.fire(ctx, u, chatID, domain.ModeMaghrib, today)
		}
	}
}

// fire starts the session and then persists the fired marker. The order
// matches the original behavior: a crash between the two may re-fire on the
// next cycle, accepted best-effort semantics.
func (s *Scheduler) fire(ctx context.Context, u domain.User, chatID int64, mode domain.Mode, today string) {
	s.sessions.Start(ctx, chatID, u.UserID, mode)
	if err := s.repo.MarkFired(ctx, u.UserID, mode, today); err != nil {
		s.log.Error("MarkFired failed", zap.Error(err),
			zap.Int64("userID", u.UserID), zap.String("kind", string(mode)))
		return
	}
	s.log.Info("automatic countdown started",
		zap.Int64("userID", u.UserID), zap.String("kind", string(mode)))
}

// inWindow reports open <= now < open+window.
func (s *Scheduler) inWindow(now, open time.Time) bool {
	return !now.Before(open) && now.Before(open.Add(s.window))
}
