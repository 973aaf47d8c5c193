package telegram

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Abdurahmonovz/ramadan/internal/calendar"
	"github.com/Abdurahmonovz/ramadan/internal/domain"
)

func (r *Router) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	if _, err := r.ensureUser(ctx, msg.From.ID); err != nil {
		r.log.Error("ensureUser failed", zap.Error(err))
		r.sendText(msg.Chat.ID, profileErr)
		return
	}
	r.sendWithMarkup(msg.Chat.ID, welcomeText, mainMenuKeyboard())
	if !msg.Chat.IsPrivate() {
		r.sendText(msg.Chat.ID, groupHelpText)
	}
}

// handleRamadan works in any chat: shows today's boundaries and attaches a
// live countdown to this chat, replacing a running one.
func (r *Router) handleRamadan(ctx context.Context, msg *tgbotapi.Message) {
	u, err := r.ensureUser(ctx, msg.From.ID)
	if err != nil {
		r.log.Error("ensureUser failed", zap.Error(err))
		r.sendText(msg.Chat.ID, profileErr)
		return
	}

	times, err := r.times.Today(ctx, u.City, r.country)
	if err != nil {
		r.log.Warn("today lookup failed", zap.Error(err), zap.String("city", u.City))
		r.sendText(msg.Chat.ID, timesErrText)
		return
	}
	now := time.Now().In(r.loc)
	imsakAt, maghribAt, err := domain.BuildTargets(times, now, r.loc)
	if err != nil {
		r.log.Warn("malformed times", zap.Error(err), zap.String("city", u.City))
		r.sendText(msg.Chat.ID, timesErrText)
		return
	}
	mode := domain.ChooseMode(imsakAt, maghribAt, now)

	r.live.Stop(msg.Chat.ID)
	r.sendWithMarkup(msg.Chat.ID,
		fmt.Sprintf(ramadanFmt, u.City, times.Imsak, times.Maghrib),
		stopMenuKeyboard(),
	)
	r.live.Start(ctx, msg.Chat.ID, u.UserID, mode)
}

func (r *Router) handleToday(ctx context.Context, msg *tgbotapi.Message) {
	u, err := r.ensureUser(ctx, msg.From.ID)
	if err != nil {
		r.log.Error("ensureUser failed", zap.Error(err))
		r.sendText(msg.Chat.ID, profileErr)
		return
	}
	times, err := r.times.Today(ctx, u.City, r.country)
	if err != nil {
		r.log.Warn("today lookup failed", zap.Error(err), zap.String("city", u.City))
		r.sendText(msg.Chat.ID, timesErrText)
		return
	}
	r.sendWithMarkup(msg.Chat.ID,
		fmt.Sprintf(todayFmt, u.City, times.Imsak, times.Maghrib),
		mainMenuKeyboard(),
	)
}

func (r *Router) replyWithMenu(ctx context.Context, msg *tgbotapi.Message, text string) {
	_, _ = r.ensureUser(ctx, msg.From.ID)
	r.sendWithMarkup(msg.Chat.ID, text, mainMenuKeyboard())
}

func (r *Router) handleStop(msg *tgbotapi.Message) {
	r.live.Stop(msg.Chat.ID)
	r.sendWithMarkup(msg.Chat.ID, stoppedText, mainMenuKeyboard())
}

// --- city flow ---

func (r *Router) handleCityMenu(ctx context.Context, msg *tgbotapi.Message) {
	_, _ = r.ensureUser(ctx, msg.From.ID)
	r.sendWithMarkup(msg.Chat.ID, cityPromptText, cityInlineKeyboard("city"))
}

func (r *Router) handleCityCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	val := strings.TrimPrefix(cb.Data, "city:")
	chatID := cb.Message.Chat.ID

	if val == "custom" {
		r.setAwaitCity(cb.From.ID, true)
		r.sendText(chatID, cityCustomPromptText)
		r.answerCallback(cb.ID, "")
		return
	}

	if err := r.repo.SetCity(ctx, cb.From.ID, val); err != nil {
		r.log.Error("SetCity failed", zap.Error(err))
		r.sendText(chatID, profileErr)
		r.answerCallback(cb.ID, "")
		return
	}
	r.sendWithMarkup(chatID, fmt.Sprintf(citySavedFmt, val), mainMenuKeyboard())
	r.answerCallback(cb.ID, "OK")
}

// handleFreeForm consumes custom city names; anything else is ignored.
func (r *Router) handleFreeForm(ctx context.Context, msg *tgbotapi.Message, text string) {
	if !r.isAwaitingCity(msg.From.ID) || !cityRe.MatchString(text) {
		return
	}

	// Validate by an actual lookup before saving: an unknown city would
	// otherwise break every later fetch for this user.
	if _, err := r.times.Today(ctx, text, r.country); err != nil {
		r.sendText(msg.Chat.ID, cityInvalidText)
		return
	}

	r.setAwaitCity(msg.From.ID, false)
	if err := r.repo.SetCity(ctx, msg.From.ID, text); err != nil {
		r.log.Error("SetCity failed", zap.Error(err))
		r.sendText(msg.Chat.ID, profileErr)
		return
	}
	r.sendWithMarkup(msg.Chat.ID, fmt.Sprintf(citySavedFmt, text), mainMenuKeyboard())
}

// --- reminder flow ---

func (r *Router) handleReminderMenu(ctx context.Context, msg *tgbotapi.Message) {
	u, err := r.ensureUser(ctx, msg.From.ID)
	if err != nil {
		r.log.Error("ensureUser failed", zap.Error(err))
		r.sendText(msg.Chat.ID, profileErr)
		return
	}
	r.mu.Lock()
	r.tempRem[msg.From.ID] = u.RemindBefore
	r.mu.Unlock()
	r.sendWithMarkup(msg.Chat.ID, reminderPromptText, reminderInlineKeyboard(u.RemindBefore))
}

func (r *Router) handleReminderCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	act := strings.TrimPrefix(cb.Data, "rem:")
	chatID := cb.Message.Chat.ID

	r.mu.Lock()
	cur, ok := r.tempRem[cb.From.ID]
	r.mu.Unlock()
	if !ok {
		cur = 10
	}

	switch act {
	case "+5":
		cur += 5
		if cur > 120 {
			cur = 120
		}
	case "-5":
		cur -= 5
		if cur < 1 {
			cur = 1
		}
	case "save":
		if err := r.repo.SetRemindBefore(ctx, cb.From.ID, cur); err != nil {
			r.log.Error("SetRemindBefore failed", zap.Error(err))
			r.sendText(chatID, profileErr)
			r.answerCallback(cb.ID, "")
			return
		}
		r.sendWithMarkup(chatID, fmt.Sprintf(reminderSavedFmt, cur), mainMenuKeyboard())
		r.answerCallback(cb.ID, "Saved")
		return
	default:
		r.answerCallback(cb.ID, "")
		return
	}

	r.mu.Lock()
	r.tempRem[cb.From.ID] = cur
	r.mu.Unlock()
	edit := tgbotapi.NewEditMessageReplyMarkup(chatID, cb.Message.MessageID, reminderInlineKeyboard(cur))
	_, _ = r.bot.Send(edit)
	r.answerCallback(cb.ID, "")
}

// --- calendar flow ---

func (r *Router) handleCalendarCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	city := strings.TrimPrefix(cb.Data, "cal:")
	chatID := cb.Message.Chat.ID
	r.answerCallback(cb.ID, "")

	now := time.Now().In(r.loc)
	days, err := r.times.Calendar(ctx, int(now.Month()), now.Year(), city, r.country)
	if err != nil {
		r.log.Warn("calendar lookup failed", zap.Error(err), zap.String("city", city))
		r.sendText(chatID, calendarErrText)
		return
	}

	raw, err := calendar.RenderPNG(city, calendar.FromDays(days))
	if err != nil {
		r.log.Error("calendar render failed", zap.Error(err))
		r.sendText(chatID, calendarErrText)
		return
	}

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{
		Name:  "ramazon_taqvim.png",
		Bytes: raw,
	})
	if _, err := r.bot.Send(photo); err != nil {
		r.log.Warn("calendar send failed", zap.Error(err))
	}
}
