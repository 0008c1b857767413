package api

import (
	"embed"
	"html/template"
	"io"
	"log"

	"github.com/jeevananthan-98/Hydrointel/internal/i18n"
)

//go:embed templates/*
var templateFS embed.FS

type templateSet struct {
	tmpl *template.Template
}

// newTemplates parses the embedded HTML templates, binding the translator
// into the FuncMap so every template can localize with {{t "key"}}.
func newTemplates(tr *i18n.Translator) *templateSet {
	funcs := template.FuncMap{
		"t": tr.T,
	}
	return &templateSet{
		tmpl: template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")),
	}
}

func (ts *templateSet) render(w io.Writer, name string, data any) {
	if err := ts.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("template %s: %v", name, err)
	}
}
