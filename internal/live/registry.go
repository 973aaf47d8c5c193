package live

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Abdurahmonovz/ramadan/internal/domain"
	"github.com/Abdurahmonovz/ramadan/internal/store"
)

// Registry keeps the running countdown session per chat. All map access goes
// through its mutex; a finished session removes its own entry.
type Registry struct {
	repo    store.Repo
	times   TimesProvider
	msgr    Messenger
	log     *zap.Logger
	loc     *time.Location
	country string

	mu       sync.Mutex
	sessions map[int64]*session

	// Overridable in tests.
	tick    time.Duration
	backoff time.Duration
	now     func() time.Time
}

type session struct {
	chatID  int64
	ownerID int64
	mode    domain.Mode
	msgID   int
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRegistry builds a Registry with the production tick and backoff.
func NewRegistry(repo store.Repo, times TimesProvider, msgr Messenger, log *zap.Logger, loc *time.Location, country string) *Registry {
	return &Registry{
		repo:     repo,
		times:    times,
		msgr:     msgr,
		log:      log,
		loc:      loc,
		country:  country,
		sessions: make(map[int64]*session),
		tick:     time.Second,
		backoff:  2 * time.Second,
		now:      time.Now,
	}
}

// Start registers a countdown for the chat and begins its loop. If the chat
// already has a running session this is a no-op; callers need not check
// IsRunning first.
func (r *Registry) Start(ctx context.Context, chatID, ownerID int64, mode domain.Mode) {
	r.mu.Lock()
	if _, ok := r.sessions[chatID]; ok {
		r.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &session{
		chatID:  chatID,
		ownerID: ownerID,
		mode:    mode,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	r.sessions[chatID] = s
	r.mu.Unlock()

	go func() {
		defer func() {
			r.remove(s)
			close(s.done)
		}()

		msgID, err := r.msgr.SendBound(chatID, startingText)
		if err != nil {
			r.log.Warn("bound message send failed", zap.Error(err), zap.Int64("chatID", chatID))
			return
		}
		s.msgID = msgID
		r.run(ctx, s)
	}()
}

// Stop cancels the chat's session, if any, and returns only after its loop
// has exited: no edit to the bound message can race a subsequent Start.
func (r *Registry) Stop(chatID int64) {
	r.mu.Lock()
	s, ok := r.sessions[chatID]
	if ok {
		delete(r.sessions, chatID)
	}
	r.mu.Unlock()
	if !ok {
		return
	}
	s.cancel()
	<-s.done
}

// IsRunning reports whether the chat currently has a countdown session.
func (r *Registry) IsRunning(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[chatID]
	return ok
}

// Shutdown stops every running session and waits for all loops to exit.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	all := make([]*session, 0, len(r.sessions))
	for chatID, s := range r.sessions {
		delete(r.sessions, chatID)
		all = append(all, s)
	}
	r.mu.Unlock()

	for _, s := range all {
		s.cancel()
		<-s.done
	}
}

// remove deletes the entry only if it still belongs to this session, so a
// self-terminating loop never evicts a successor started after Stop.
func (r *Registry) remove(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cur, ok := r.sessions[s.chatID]; ok && cur == s {
		delete(r.sessions, s.chatID)
	}
}
