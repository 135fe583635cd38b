package handlers

import (
	"net/http"
	"strings"

	"github.com/rohanthewiz/element"
	"github.com/rohanthewiz/rweb"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// HealthCheck returns the health status of the application
func HealthCheck(c rweb.Context) error {
	return c.WriteJSON(map[string]interface{}{
		"status":  "healthy",
		"service": "thelab-signup",
		"version": Version,
	})
}

// NotFound answers paths no route serves. API clients get the JSON error
// shape, browsers a page pointing back to the form.
func NotFound(c rweb.Context) error {
	c.SetStatus(http.StatusNotFound)
	if wantsJSON(c) {
		return c.WriteJSON(map[string]interface{}{
			"success": false,
			"error":   "no such endpoint: " + c.Request().Path(),
		})
	}

	b := element.NewBuilder()
	b.Html("lang", "en").R(
		b.Head().R(
			b.Title().T("THE LAB - Not found"),
			b.Link("rel", "stylesheet", "href", "/static/css/app.css"),
		),
		b.Body().R(
			b.Div("class", "sign-up", "role", "main").R(
				b.H1("class", "sign-up__title").T("404 - Page Not Found"),
				b.P().R(b.A("href", "/sign-up").T("Back to sign up")),
			),
		),
	)
	return c.WriteHTML("<!DOCTYPE html>" + b.String())
}

func wantsJSON(c rweb.Context) bool {
	return strings.HasPrefix(c.Request().Path(), "/api/") ||
		strings.Contains(c.Request().Header("Accept"), "application/json")
}

// ServerError handles 500 errors
func ServerError(c rweb.Context) error {
	if c.Request().Header("Accept") == "application/json" {
		c.SetStatus(http.StatusInternalServerError)
		return c.WriteJSON(map[string]string{
			"error": "Internal server error",
		})
	}

	// Return HTML error page
	c.SetStatus(http.StatusInternalServerError)
	return c.WriteHTML("<h1>500 - Internal Server Error</h1>")
}
