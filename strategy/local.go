package strategy

import (
	"context"

	"thelab/models"
)

// Local signs a user up with the credentials typed into the form.
type Local struct {
	accounts AccountService
}

// NewLocal returns a password-based strategy backed by accounts.
func NewLocal(accounts AccountService) *Local {
	return &Local{accounts: accounts}
}

func (l *Local) Name() string { return "local" }

// Submit reshapes the validated values and sends them once.
func (l *Local) Submit(ctx context.Context, payload models.Payload) models.SubmissionResult {
	return submitAndClassify(ctx, l.accounts, l.Name(), models.LocalSignUpData(payload.Values))
}
