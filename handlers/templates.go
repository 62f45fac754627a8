package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/spf13/cast"

	"productconsole/logger"
	"productconsole/notify"
	"productconsole/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templateFuncs = template.FuncMap{
	"fileSize": func(size interface{}) string { return utils.FormatFileSize(cast.ToInt64(size)) },
	"dollars":  utils.FormatDollars,
	"date": func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format("Jan 2, 2006")
	},
}

// page is the data every console page carries for the layout.
type page struct {
	Title   string
	Active  string
	Notices []notify.Notice
}

// pageTemplates parses one template set per page so each can define its own "content".
func pageTemplates() map[string]*template.Template {
	pages := make(map[string]*template.Template)
	for _, name := range []string{"dashboard", "form", "confirm", "files"} {
		pages[name] = template.Must(template.New(name).Funcs(templateFuncs).ParseFS(
			templatesFS, "templates/layout.html", fmt.Sprintf("templates/%s.html", name),
		))
	}
	return pages
}

func (h *ConsoleHandler) render(w http.ResponseWriter, status int, name string, data interface{}) {
	tmpl, ok := h.pages[name]
	if !ok {
		logger.Error("Unknown page template: %s", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.WithFields(map[string]interface{}{"page": name, "error": err.Error()}).Error("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
