package web

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"

	"thelab/handlers"
	"thelab/web/session"
)

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	// Set CORS headers for all responses
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")

	// Handle preflight OPTIONS requests
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware attaches the caller's form session, starting a new one
// (and setting the cookie) when the cookie is missing or has expired.
func SessionMiddleware(store *session.Store) rweb.Handler {
	return func(c rweb.Context) error {
		if isSessionless(c.Request().Path()) {
			return c.Next()
		}
		cookieValue, _ := c.GetCookie(session.CookieName)

		s, created := store.GetOrCreate(cookieValue)
		if created {
			if err := c.SetCookie(session.CookieName, s.ID); err != nil {
				logger.LogErr(err, "failed to set session cookie")
			}
		}

		c.Set(session.ContextKey, s)
		return c.Next()
	}
}

// isSessionless reports paths that never touch a form.
func isSessionless(path string) bool {
	return strings.HasPrefix(path, "/static/") || path == "/favicon.ico" || path == "/health"
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("X-XSS-Protection", "1; mode=block")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// Google Identity Services loads its button from accounts.google.com
	csp := []string{
		"default-src 'self'",
		"script-src 'self' https://accounts.google.com/gsi/client",
		"style-src 'self' 'unsafe-inline' https://accounts.google.com/gsi/style",
		"frame-src https://accounts.google.com/gsi/",
		"img-src 'self' data: https:",
		"connect-src 'self' https://accounts.google.com/gsi/",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// RateLimitMiddleware implements per-visitor rate limiting. It must run after
// SessionMiddleware: a request carrying a known session cookie counts
// against its session, anything else against the client address.
func RateLimitMiddleware(requestsPerMinute int) rweb.Handler {
	type visitor struct {
		lastSeen time.Time
		count    int
	}

	var mu sync.Mutex
	visitors := make(map[string]*visitor)

	return func(c rweb.Context) error {
		key := visitorKey(c)

		now := time.Now()
		mu.Lock()
		for k, v := range visitors {
			if now.Sub(v.lastSeen) > time.Minute {
				delete(visitors, k)
			}
		}

		limited := false
		v, exists := visitors[key]
		switch {
		case !exists:
			visitors[key] = &visitor{lastSeen: now, count: 1}
		case now.Sub(v.lastSeen) < time.Minute:
			v.count++
			limited = v.count > requestsPerMinute
		default:
			v.lastSeen = now
			v.count = 1
		}
		mu.Unlock()

		if limited {
			logger.Info("Rate limit exceeded", "visitor", key)
			c.SetStatus(http.StatusTooManyRequests)
			return c.WriteJSON(map[string]interface{}{
				"success": false,
				"error":   "too many requests, slow down",
			})
		}
		return c.Next()
	}
}

// visitorKey names the bucket a request is counted in.
func visitorKey(c rweb.Context) string {
	if s, ok := session.FromContext(c); ok {
		if cookie, _ := c.GetCookie(session.CookieName); cookie == s.ID {
			return "session:" + s.ID
		}
	}
	return "addr:" + clientAddr(c)
}

// clientAddr prefers proxy headers and falls back to the connection peer.
func clientAddr(c rweb.Context) string {
	if ip := c.Request().Header("X-Forwarded-For"); ip != "" {
		return strings.TrimSpace(strings.Split(ip, ",")[0])
	}
	if ip := c.Request().Header("X-Real-IP"); ip != "" {
		return ip
	}
	if conn := c.GetConn(); conn != nil {
		if host, _, err := net.SplitHostPort(conn.RemoteAddr().String()); err == nil {
			return host
		}
		return conn.RemoteAddr().String()
	}
	return "unknown"
}

// NotFoundMiddleware renders the 404 page for requests no route answered.
func NotFoundMiddleware(c rweb.Context) error {
	if err := c.Next(); err != nil {
		return err
	}
	if c.Response().Status() == http.StatusNotFound && len(c.Response().Body()) == 0 {
		return handlers.NotFound(c)
	}
	return nil
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"ip", c.Request().Header("X-Forwarded-For"),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
