// Package session keeps one sign-up machine per browser session in memory.
// A session's machine is only touched while its mutex is held; submissions
// release the mutex while the account service is being called so other
// requests can observe the submitting state.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"thelab/form"
	"thelab/models"
	"thelab/signup"
	"thelab/strategy"
)

// CookieName carries the session id.
const CookieName = "thelab_session"

// Session is one visitor's form.
type Session struct {
	ID string

	mu       sync.Mutex
	engine   *signup.Engine
	machine  *form.Machine
	notices  *form.Queue
	widget   *strategy.CallbackWidget
	lastSeen time.Time
}

// View is what a front end renders for a session.
type View struct {
	State   form.FormState      `json:"state"`
	Notices []form.Notification `json:"notifications,omitempty"`
}

func newSession(engine *signup.Engine) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		engine:   engine,
		notices:  &form.Queue{},
		lastSeen: time.Now(),
	}
	s.machine = engine.NewMachine(form.Tee(s.notices, form.LogNotifier{}))

	if engine.GoogleEnabled() {
		w, err := engine.NewWidget(s.runCredential)
		if err != nil {
			logger.LogErr(err, "failed to initialize identity widget", "session", s.ID)
		} else {
			s.widget = w
		}
	}
	return s
}

// Edit runs fn with exclusive access to the machine.
func (s *Session) Edit(fn func(m *form.Machine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = time.Now()
	fn(s.machine)
}

// Submit runs the local strategy. The machine is locked only while entering
// and leaving Submitting. ok is false when the guard refused.
func (s *Session) Submit(ctx context.Context) (result models.SubmissionResult, ok bool) {
	s.mu.Lock()
	payload, ok := s.machine.BeginSubmit()
	s.lastSeen = time.Now()
	s.mu.Unlock()
	if !ok {
		return models.SubmissionResult{}, false
	}

	result = s.engine.Local.Submit(ctx, payload)

	s.mu.Lock()
	s.machine.CompleteSubmit(result)
	s.mu.Unlock()
	return result, true
}

// DeliverCredential hands an identity-provider credential to the session's
// widget, which runs the Google strategy. submitted is false when another
// submission was in flight and the credential was dropped.
func (s *Session) DeliverCredential(ctx context.Context, credential string) (submitted bool, err error) {
	if s.widget == nil {
		return false, serr.New("google sign-up is not enabled")
	}
	submitted, err = s.widget.Deliver(ctx, credential)
	if err != nil {
		return false, serr.Wrap(err, "credential refused")
	}
	return submitted, nil
}

// runCredential is the widget callback.
func (s *Session) runCredential(ctx context.Context, credential string) bool {
	s.mu.Lock()
	started := s.machine.BeginExternal()
	s.lastSeen = time.Now()
	s.mu.Unlock()
	if !started {
		logger.Debug("Credential ignored while submitting", "session", s.ID)
		return false
	}

	result := s.engine.Google.Submit(ctx, models.Payload{Credential: credential})

	s.mu.Lock()
	s.machine.CompleteSubmit(result)
	s.mu.Unlock()
	return true
}

// View snapshots the machine and drains pending notifications.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{State: s.machine.State(), Notices: s.notices.Drain()}
}

// GoogleClientID is empty when the Google button should not be shown.
func (s *Session) GoogleClientID() string {
	if s.widget == nil {
		return ""
	}
	return s.widget.ClientID()
}

// Catalog returns the fields of the session's form
func (s *Session) Catalog() models.Catalog { return s.engine.Catalog }

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
