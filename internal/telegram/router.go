package telegram

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
	"github.com/Abdurahmonovz/ramadan/internal/prayers"
	"github.com/Abdurahmonovz/ramadan/internal/store"
)

// TimesClient is the upstream lookup surface the handlers use.
type TimesClient interface {
	Today(ctx context.Context, city, country string) (domain.DailyTimes, error)
	Calendar(ctx context.Context, month, year int, city, country string) ([]prayers.CalendarDay, error)
}

// Sessions is the slice of the live registry the handlers use.
type Sessions interface {
	Start(ctx context.Context, chatID, ownerID int64, mode domain.Mode)
	Stop(chatID int64)
	IsRunning(chatID int64) bool
}

// cityRe accepts free-form city names entered after "city:custom".
var cityRe = regexp.MustCompile("^[A-Za-zА-Яа-я‘’'` \\-]{3,40}$")

// Router wires Telegram updates to handlers and holds minimal in-memory state.
type Router struct {
	bot     *tgbotapi.BotAPI
	log     *zap.Logger
	repo    store.Repo
	times   TimesClient
	live    Sessions
	loc     *time.Location
	country string

	mu        sync.Mutex
	awaitCity map[int64]bool // userID -> waiting for a custom city name
	tempRem   map[int64]int  // userID -> reminder stepper value being edited
}

// NewRouter creates a new Telegram router.
func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, repo store.Repo, times TimesClient, live Sessions, loc *time.Location, country string) *Router {
	return &Router{
		bot:       bot,
		log:       log,
		repo:      repo,
		times:     times,
		live:      live,
		loc:       loc,
		country:   country,
		awaitCity: make(map[int64]bool),
		tempRem:   make(map[int64]int),
	}
}

// HandleUpdate routes a single update to the appropriate handler. The ctx is
// the application's long-lived context; sessions started here outlive the
// update but stop with the application.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.Message != nil {
		msg := upd.Message
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.handleStart(ctx, msg)
		case strings.HasPrefix(text, "/ramadan"):
			r.handleRamadan(ctx, msg)
		case text == btnToday:
			r.handleToday(ctx, msg)
		case text == btnDuaIftar:
			r.replyWithMenu(ctx, msg, duaIftarText)
		case text == btnDuaSahar:
			r.replyWithMenu(ctx, msg, duaSaharText)
		case text == btnCity:
			r.handleCityMenu(ctx, msg)
		case text == btnReminder:
			r.handleReminderMenu(ctx, msg)
		case text == btnCalendar:
			r.sendWithMarkup(msg.Chat.ID, calendarPromptText, cityInlineKeyboard("cal"))
		case text == btnStop:
			r.handleStop(msg)
		default:
			r.handleFreeForm(ctx, msg, text)
		}
		return
	}

	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		data := cb.Data
		switch {
		case strings.HasPrefix(data, "city:"):
			r.handleCityCallback(ctx, cb)
		case strings.HasPrefix(data, "rem:"):
			r.handleReminderCallback(ctx, cb)
		case strings.HasPrefix(data, "cal:"):
			r.handleCalendarCallback(ctx, cb)
		default:
			// Unknown callback — ignore silently
		}
	}
}

// --- small helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) sendWithMarkup(chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, _ = r.bot.Send(msg)
}

func (r *Router) answerCallback(id, text string) {
	_, _ = r.bot.Request(tgbotapi.NewCallback(id, text))
}

func fmtMinutes(m int) string { return fmt.Sprintf("%d min", m) }

// ensureUser makes sure a user row exists and returns it.
func (r *Router) ensureUser(ctx context.Context, userID int64) (*domain.User, error) {
	if err := r.repo.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}
	return r.repo.GetUser(ctx, userID)
}

func (r *Router) setAwaitCity(userID int64, v bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v {
		r.awaitCity[userID] = true
	} else {
		delete(r.awaitCity, userID)
	}
}

func (r *Router) isAwaitingCity(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.awaitCity[userID]
}
