package web

import (
	"embed"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// Embed static directory files
//
//go:embed all:static
var staticFiles embed.FS

// contentTypes maps the extensions shipped under static/.
var contentTypes = map[string]string{
	".css":  "text/css; charset=utf-8",
	".js":   "application/javascript; charset=utf-8",
	".json": "application/json",
	".svg":  "image/svg+xml",
	".png":  "image/png",
}

// Served as an inline SVG so no separate icon file is needed
const faviconSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 500 500"><rect width="500" height="500" rx="40" fill="#212529"/><text x="250" y="320" font-family="Arial,sans-serif" font-weight="900" font-size="220" fill="white" text-anchor="middle">TL</text></svg>`

// SetupStaticFiles configures static file serving using embedded files
func SetupStaticFiles(s *rweb.Server) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		logger.LogErr(err, "failed to get static subdirectory")
		return
	}

	s.Get("/favicon.ico", func(c rweb.Context) error {
		c.Response().SetHeader("Content-Type", "image/svg+xml")
		c.Response().SetHeader("Cache-Control", "public, max-age=86400")
		return c.Bytes([]byte(faviconSVG))
	})

	s.Get("/static/*", func(c rweb.Context) error {
		return serveStatic(c, staticFS, strings.TrimPrefix(c.Request().Path(), "/static/"))
	})
}

func serveStatic(c rweb.Context, staticFS fs.FS, name string) error {
	file, err := staticFS.Open(name)
	if err != nil {
		c.SetStatus(http.StatusNotFound)
		return nil
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		c.SetStatus(http.StatusInternalServerError)
		return nil
	}
	if stat.IsDir() {
		c.SetStatus(http.StatusNotFound)
		return nil
	}

	if ct, ok := contentTypes[path.Ext(name)]; ok {
		c.Response().SetHeader("Content-Type", ct)
	}
	// The page script and stylesheet change with the form, keep caching short
	c.Response().SetHeader("Cache-Control", "public, max-age=3600")

	content, err := io.ReadAll(file)
	if err != nil {
		logger.LogErr(err, "failed to read static file", "file", name)
		c.SetStatus(http.StatusInternalServerError)
		return nil
	}
	return c.Bytes(content)
}
