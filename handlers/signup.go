package handlers

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"

	"thelab/form"
	"thelab/web/pages/auth"
	"thelab/web/session"
)

// ShowSignUp renders the form for the caller's session.
// GET / and GET /sign-up
func ShowSignUp(c rweb.Context) error {
	s, ok := session.FromContext(c)
	if !ok {
		logger.LogErr(serr.New("no session on request"), "show sign-up")
		return ServerError(c)
	}
	return renderSignUp(c, s, http.StatusOK)
}

// PostSignUp handles a full-form post: every posted field is applied, all
// errors are revealed and a submission is attempted.
// POST /sign-up
//
// Responds 200 with the re-rendered page once an outcome was presented,
// 422 when the guard refused (invalid, pristine or already submitting).
func PostSignUp(c rweb.Context) error {
	s, ok := session.FromContext(c)
	if !ok {
		logger.LogErr(serr.New("no session on request"), "post sign-up")
		return ServerError(c)
	}

	posted, err := url.ParseQuery(string(c.Request().Body()))
	if err != nil {
		logger.LogErr(serr.Wrap(err, "failed to parse sign-up form"), "session", s.ID)
		c.SetStatus(http.StatusBadRequest)
		return c.WriteHTML("<h1>400 - Bad Request</h1>")
	}

	catalog := s.Catalog()
	s.Edit(func(m *form.Machine) {
		for _, key := range catalog.Keys() {
			if vals, present := posted[string(key)]; present && len(vals) > 0 {
				m.SetValue(key, vals[0])
			}
		}
		m.TouchAll()
	})

	status := http.StatusOK
	if _, submitted := s.Submit(context.Background()); !submitted {
		status = http.StatusUnprocessableEntity
	}
	return renderSignUp(c, s, status)
}

func renderSignUp(c rweb.Context, s *session.Session, status int) error {
	page := auth.NewRegisterPage(s.Catalog(), s.View(), s.GoogleClientID())
	c.SetStatus(status)
	c.Response().SetHeader("Content-Type", "text/html; charset=utf-8")
	return c.WriteHTML(page.Render())
}
