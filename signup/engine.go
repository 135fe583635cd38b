// Package signup assembles the registration engine from configuration:
// the field catalog and rules of the configured variant, the account client
// and the strategies that submit through it. Front ends ask it for machines.
package signup

import (
	"github.com/rohanthewiz/logger"

	"thelab/config"
	"thelab/form"
	"thelab/models"
	"thelab/strategy"
	"thelab/validation"
)

// Engine holds the shared, read-only parts of the sign-up flow.
// Machines created from it are independent of each other.
type Engine struct {
	Catalog models.Catalog
	Rules   *validation.RuleSet
	Local   *strategy.Local
	Google  *strategy.Google // nil unless a client id is configured

	googleClientID string
	warnOnConflict bool
}

// New builds an engine for cfg.
func New(cfg *config.Config) *Engine {
	accounts := strategy.NewAccountClient(cfg.AccountURL, cfg.AccountEncoding, cfg.SubmitTimeout)

	e := &Engine{
		Catalog:        models.CatalogFor(cfg.FormVariant),
		Rules:          validation.RulesFor(cfg.FormVariant),
		Local:          strategy.NewLocal(accounts),
		googleClientID: cfg.GoogleClientID,
		warnOnConflict: cfg.WarnOnConflict,
	}
	if cfg.GoogleEnabled() {
		e.Google = strategy.NewGoogle(accounts)
	}

	logger.Info("Sign-up engine ready",
		"variant", string(cfg.FormVariant),
		"account_url", accounts.URL(),
		"encoding", string(cfg.AccountEncoding),
		"google", e.Google != nil,
	)
	return e
}

// NewMachine returns a fresh machine using the local strategy whose outcomes
// are reported to notifier.
func (e *Engine) NewMachine(notifier form.Notifier) *form.Machine {
	return form.NewMachine(e.Catalog, e.Rules, e.Local, form.NewPresenter(notifier, e.warnOnConflict))
}

// GoogleClientID is empty when Google signup is disabled.
func (e *Engine) GoogleClientID() string { return e.googleClientID }

// GoogleEnabled reports whether NewWidget can be used.
func (e *Engine) GoogleEnabled() bool { return e.Google != nil }

// NewWidget returns an identity widget initialized with the configured client
// id that hands each credential to submit. Hosts run the Google strategy from
// submit under their own locking. Fails when Google is disabled.
func (e *Engine) NewWidget(submit strategy.CredentialCallback) (*strategy.CallbackWidget, error) {
	w := strategy.NewCallbackWidget()
	if err := w.Initialize(e.googleClientID, submit); err != nil {
		return nil, err
	}
	return w, nil
}
