package strategy

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"

	"thelab/models"
)

// MsgUnreadableCredential is shown when the widget hands us a token we cannot decode.
const MsgUnreadableCredential = "Could not read the Google credential. Please, try again"

// googleClaims are the ID token claims we read.
type googleClaims struct {
	jwt.RegisteredClaims
	Email         string       `json:"email"`
	EmailVerified flexibleBool `json:"email_verified"`
	Name          string       `json:"name"`
	GivenName     string       `json:"given_name"`
	FamilyName    string       `json:"family_name"`
}

// flexibleBool accepts both true and "true", identity providers send either.
type flexibleBool bool

func (b *flexibleBool) UnmarshalJSON(data []byte) error {
	var v bool
	if err := json.Unmarshal(data, &v); err == nil {
		*b = flexibleBool(v)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return serr.Wrap(err, "email_verified is neither bool nor string")
	}
	*b = flexibleBool(strings.EqualFold(s, "true"))
	return nil
}

// Google signs a user up with the credential issued by the Google identity widget.
//
// SECURITY: the token's signature is NOT verified here. The claims are read
// as-is and forwarded, so the account service must verify the ID token
// against Google's keys before trusting the e-mail or its verified flag.
type Google struct {
	accounts AccountService
	parser   *jwt.Parser
}

// NewGoogle returns a Google-credential strategy backed by accounts.
func NewGoogle(accounts AccountService) *Google {
	return &Google{
		accounts: accounts,
		parser:   jwt.NewParser(),
	}
}

func (g *Google) Name() string { return "google" }

// Decode reads the identity claims from the token's payload segment.
func (g *Google) Decode(credential string) (models.IdentityCredential, error) {
	var claims googleClaims
	if _, _, err := g.parser.ParseUnverified(credential, &claims); err != nil {
		return models.IdentityCredential{}, serr.Wrap(err, "failed to decode identity token")
	}
	if claims.Email == "" {
		return models.IdentityCredential{}, serr.New("identity token carries no e-mail")
	}

	first, surname := claims.GivenName, claims.FamilyName
	if first == "" && surname == "" {
		first, surname = splitName(claims.Name)
	}

	return models.IdentityCredential{
		EmailVerified: bool(claims.EmailVerified),
		FullName:      models.FullName{FirstName: first, Surname: surname},
		Email:         claims.Email,
	}, nil
}

// Submit decodes the credential and sends it with the same rules as Local.
// An undecodable credential becomes a Failure without any request.
func (g *Google) Submit(ctx context.Context, payload models.Payload) models.SubmissionResult {
	cred, err := g.Decode(payload.Credential)
	if err != nil {
		logger.LogErr(err, "rejecting identity credential", "strategy", g.Name())
		return models.Failure(MsgUnreadableCredential)
	}
	return submitAndClassify(ctx, g.accounts, g.Name(), models.GoogleSignUpData(cred))
}

// splitName splits "Mary Ann Smith" into "Mary" and "Ann Smith".
func splitName(full string) (first, rest string) {
	full = strings.TrimSpace(full)
	if i := strings.IndexByte(full, ' '); i > 0 {
		return full[:i], strings.TrimSpace(full[i+1:])
	}
	return full, ""
}
