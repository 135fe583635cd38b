package strategy

import (
	"context"
	"sync"

	"github.com/rohanthewiz/serr"
)

// CredentialCallback receives the opaque token of one successful sign-in.
// It reports whether the credential was acted on; a host that is busy with
// another submission drops it.
type CredentialCallback func(ctx context.Context, credential string) (accepted bool)

// IdentityWidget is the identity-provider button collaborator. It calls the
// registered callback once per successful user interaction, or never if the
// user abandons the flow.
type IdentityWidget interface {
	Initialize(clientID string, callback CredentialCallback) error
}

// CallbackWidget is an IdentityWidget whose credentials are pushed in by the
// host: the web front end delivers what the browser widget posted.
type CallbackWidget struct {
	mu       sync.Mutex
	clientID string
	callback CredentialCallback
}

// NewCallbackWidget returns an uninitialized widget.
func NewCallbackWidget() *CallbackWidget {
	return &CallbackWidget{}
}

// Initialize registers the callback. A second call replaces the first.
func (w *CallbackWidget) Initialize(clientID string, callback CredentialCallback) error {
	if clientID == "" {
		return serr.New("identity widget needs a client id")
	}
	if callback == nil {
		return serr.New("identity widget needs a callback")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.clientID = clientID
	w.callback = callback
	return nil
}

// ClientID returns the client id the widget was initialized with
func (w *CallbackWidget) ClientID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.clientID
}

// Deliver hands a credential to the registered callback and reports whether
// the callback accepted it.
func (w *CallbackWidget) Deliver(ctx context.Context, credential string) (accepted bool, err error) {
	w.mu.Lock()
	cb := w.callback
	w.mu.Unlock()

	if cb == nil {
		return false, serr.New("identity widget is not initialized")
	}
	if credential == "" {
		return false, serr.New("credential is required")
	}
	return cb(ctx, credential), nil
}
