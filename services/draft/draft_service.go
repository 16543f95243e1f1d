package draft

import (
	"sync"
	"time"

	"github.com/Amity808/crypt-bappgift/services/monitoring/logging"
	"github.com/google/uuid"
)

// NotifyWindow is the trailing-edge coalescing window for draft change
// notifications. Rapid edits inside one window emit a single notification
// carrying only the final values.
const NotifyWindow = 300 * time.Millisecond

// NotifyFunc receives the debounced draft snapshot for a session.
type NotifyFunc func(sessionID string, snapshot Draft)

type session struct {
	draft      Draft
	debounce   *Debouncer
	submitting bool
}

// Service owns the in-memory draft sessions. Each session holds exactly one
// draft; no draft state is shared across sessions.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*session
	window   time.Duration
	notify   NotifyFunc
	logger   *logging.Logger
}

func NewService(logger *logging.Logger, notify NotifyFunc) *Service {
	return NewServiceWithWindow(logger, notify, NotifyWindow)
}

func NewServiceWithWindow(logger *logging.Logger, notify NotifyFunc, window time.Duration) *Service {
	return &Service{
		sessions: make(map[string]*session),
		window:   window,
		notify:   notify,
		logger:   logger,
	}
}

// Open starts a new draft session seeded with defaults.
func (s *Service) Open() (string, Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.sessions[id] = &session{
		draft:    DefaultDraft(),
		debounce: NewDebouncer(s.window),
	}

	return id, DefaultDraft()
}

// Get returns the current draft for a session.
func (s *Service) Get(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Draft{}, ErrSessionNotFound
	}
	return sess.draft, nil
}

// Apply runs one field update through the reducer and schedules the
// debounced notification with the resulting snapshot.
func (s *Service) Apply(id string, u Update) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Draft{}, ErrSessionNotFound
	}

	next, err := Apply(sess.draft, u)
	if err != nil {
		return sess.draft, err
	}
	sess.draft = next

	// Trigger while still holding the lock so the pending snapshot is always
	// the latest applied draft, even under concurrent updates.
	if s.notify != nil {
		snapshot := next
		sess.debounce.Trigger(func() {
			s.notify(id, snapshot)
		})
	}

	return next, nil
}

// Clear resets a session's draft to defaults and drops any pending
// notification.
func (s *Service) Clear(id string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Draft{}, ErrSessionNotFound
	}

	sess.debounce.Stop()
	sess.draft = DefaultDraft()
	return sess.draft, nil
}

// Close tears down a session.
func (s *Service) Close(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.debounce.Stop()
		delete(s.sessions, id)
	}
}

// BeginSubmit marks a session as submitting. Only one submission may be in
// flight per session; callers must pair this with EndSubmit.
func (s *Service) BeginSubmit(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if sess.submitting {
		return ErrSubmitInFlight
	}
	sess.submitting = true
	return nil
}

// EndSubmit clears the submitting flag regardless of the submit outcome.
func (s *Service) EndSubmit(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		sess.submitting = false
	}
}
