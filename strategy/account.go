// Package strategy implements the ways a signup reaches the account service:
// password-based (Local) and Google-credential (Google). Both classify the
// service's answer with the same rules into a models.SubmissionResult.
package strategy

import (
	"context"
	"strings"

	"github.com/rohanthewiz/logger"

	"thelab/models"
)

// StatusCategory is the only thing the engine knows about a response.
type StatusCategory string

const (
	StatusOK          StatusCategory = "ok"
	StatusRejected    StatusCategory = "rejected"
	StatusUnreachable StatusCategory = "unreachable"
)

// AccountResponse is the answer of the account-creation collaborator.
// Body is empty when the service was unreachable.
type AccountResponse struct {
	Status StatusCategory
	Body   string
}

// AccountService creates accounts. err is only set together with
// StatusUnreachable and carries the transport detail for logging.
type AccountService interface {
	CreateAccount(ctx context.Context, data models.SignUpData) (AccountResponse, error)
}

// AccountServiceFunc adapts a function to AccountService.
type AccountServiceFunc func(ctx context.Context, data models.SignUpData) (AccountResponse, error)

func (f AccountServiceFunc) CreateAccount(ctx context.Context, data models.SignUpData) (AccountResponse, error) {
	return f(ctx, data)
}

// msgAlreadyRegistered stands in for a rejection that came without a body.
const msgAlreadyRegistered = "E-mail already registered"

// submitAndClassify sends one request and maps the answer to a result.
//
// The account service contract has no error codes: any response that is not a
// success is read as "this e-mail already has an account", keyed to the email
// field, with the response body as the message.
func submitAndClassify(ctx context.Context, accounts AccountService, strategyName string, data models.SignUpData) models.SubmissionResult {
	resp, err := accounts.CreateAccount(ctx, data)
	if err != nil || resp.Status == StatusUnreachable {
		if err != nil {
			logger.LogErr(err, "account service unreachable", "strategy", strategyName)
		}
		return models.Failure(models.MsgUnexpectedError)
	}

	body := strings.TrimSpace(resp.Body)
	switch resp.Status {
	case StatusOK:
		if body == "" {
			body = models.MsgUserCreated
		}
		return models.Success(body)
	case StatusRejected:
		if body == "" {
			body = msgAlreadyRegistered
		}
		return models.Conflict(models.FieldEmail, body)
	}

	logger.Info("Unknown account service status", "status", string(resp.Status), "strategy", strategyName)
	return models.Failure(models.MsgUnexpectedError)
}
