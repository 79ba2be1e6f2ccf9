// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"embed"
	"html/template"
	"io"

	"github.com/pdiddy/coursefinder/internal/form"
	"github.com/pdiddy/coursefinder/pkg/types"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

// PageTemplateName is the name the page template is registered under.
const PageTemplateName = "page"

// Page is the data the page template renders.
type Page struct {
	Query       string
	Placeholder string
	CanSubmit   bool
	Error       string
	Courses     []types.CourseRecord
}

// NewPage builds template data from s.
func NewPage(s form.State) Page {
	p := Page{
		Query:       s.Query(),
		Placeholder: Placeholder,
		CanSubmit:   s.CanSubmit(),
	}
	switch s.Phase() {
	case form.ErrorShown:
		p.Error = s.Error()
	case form.ResultsShown:
		p.Courses = s.Results()
	}
	return p
}

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"schedule":     Schedule,
		"availability": AvailabilityLine,
	}).ParseFS(templateFS, "templates/*.html.tmpl")
}

// HTML writes s as a complete page.
func HTML(w io.Writer, s form.State) error {
	t, err := Templates()
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, PageTemplateName, NewPage(s))
}
