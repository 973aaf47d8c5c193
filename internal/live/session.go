package live

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
	"github.com/Abdurahmonovz/ramadan/internal/store"
)

const (
	startingText = "⏳ Eslatma boshlandi…"
	reachedText  = "✅ Vaqt bo‘ldi!"

	imsakTitle   = "🌙 Og‘iz yopishga oz qoldi"
	maghribTitle = "🍽 Og‘iz ochishga oz qoldi"

	countdownFmt = "%s\n📍 %s\n🕰 %s\n⏳ %s\n\n🛑 To‘xtatish bossangiz eslatma to‘xtaydi."
)

// run executes the countdown loop. Every iteration re-resolves the user and
// today's times, so city changes and upstream corrections take effect while
// the session runs. Edits to the bound message are strictly sequential.
func (r *Registry) run(ctx context.Context, s *session) {
	for {
		if ctx.Err() != nil {
			return
		}

		u, err := r.repo.GetUser(ctx, s.ownerID)
		if errors.Is(err, store.ErrNotFound) {
			// Owner record deleted; nothing left to count for.
			return
		}
		if err != nil {
			if !r.sleep(ctx, r.backoff) {
				return
			}
			continue
		}

		times, err := r.times.Today(ctx, u.City, r.country)
		if err != nil {
			if !r.sleep(ctx, r.backoff) {
				return
			}
			continue
		}

		now := r.now().In(r.loc)
		imsakAt, maghribAt, err := domain.BuildTargets(times, now, r.loc)
		if err != nil {
			// Malformed upstream data counts as a fetch failure.
			if !r.sleep(ctx, r.backoff) {
				return
			}
			continue
		}

		target := imsakAt
		title := imsakTitle
		targetTxt := "Imsak: " + times.Imsak
		if s.mode == domain.ModeMaghrib {
			target = maghribAt
			title = maghribTitle
			targetTxt = "Maghrib: " + times.Maghrib
		}

		remaining := target.Sub(now)
		text := fmt.Sprintf(countdownFmt, title, u.City, targetTxt, domain.FmtCountdown(remaining))

		if err := r.msgr.Edit(s.chatID, s.msgID, text); err != nil {
			// Bound message gone (deleted, chat unreachable, rights revoked).
			r.log.Debug("bound message edit failed, stopping",
				zap.Error(err), zap.Int64("chatID", s.chatID))
			return
		}

		if remaining <= 0 {
			if err := r.msgr.Notify(s.chatID, reachedText); err != nil {
				r.log.Warn("completion notice failed", zap.Error(err), zap.Int64("chatID", s.chatID))
			}
			return
		}

		if !r.sleep(ctx, r.tick) {
			return
		}
	}
}

// sleep waits d or until cancellation; false means the session must exit.
func (r *Registry) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
