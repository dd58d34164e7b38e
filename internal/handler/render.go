package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"

	"qrmenu/internal/mw"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"title": func(v any) string {
		s := strings.ToLower(fmt.Sprint(v))
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"safeURL": safeURL,
}).ParseFS(templateFS, "templates/*.html"))

// safeURL lets image data URLs from the QR service through html/template.
func safeURL(s string) template.URL {
	switch {
	case strings.HasPrefix(s, "data:image/png;base64,"),
		strings.HasPrefix(s, "data:image/svg+xml;base64,"),
		strings.HasPrefix(s, "https://"),
		strings.HasPrefix(s, "http://"):
		return template.URL(s)
	}
	return ""
}

type page struct {
	Title     string
	Session   mw.RequestSession
	CSRFField template.HTML
	Flash     string
	Form      map[string]string
	Errors    map[string]string
	Data      any
}

func render(w http.ResponseWriter, r *http.Request, name string, code int, p page) {
	p.Session = mw.FromContext(r.Context())
	p.CSRFField = csrf.TemplateField(r)

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, p); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	_, _ = buf.WriteTo(w)
}

func renderError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	render(w, r, "error", code, page{Title: http.StatusText(code), Flash: msg})
}
