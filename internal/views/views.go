// Package views renders the dashboard's HTML pages.
//
// Every page is parsed together with layout.html into its own template set, so
// pages can each define "title" and "content" without clashing.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"time"

	"alcyxob/fitness-dashboard/internal/domain"

	"github.com/gin-gonic/gin/render"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Page names.
const (
	PageHome         = "home"
	PageLogin        = "login"
	PageDashboard    = "dashboard"
	PageUsers        = "users"
	PageUserForm     = "user_form"
	PageWorkouts     = "workouts"
	PageWorkoutForm  = "workout_form"
	PageWorkout      = "workout"
	PageExerciseForm = "exercise_form"
	PagePrograms     = "programs"
	PageActivity     = "activity"
	PageAuditEntry   = "activity_entry"
	PageError        = "error"
)

// Page is the data every template receives. Data holds the page specific part.
type Page struct {
	Title     string
	Path      string
	Claims    *domain.Claims
	Nav       []NavLink
	CSRFField template.HTML
	// Message is a page level notice, e.g. a remote failure.
	Message string
	Errors  map[string][]string
	// Form echoes submitted values back into a form that failed validation.
	Form url.Values
	Data any
}

// FieldError returns the first message for a form field.
func (p Page) FieldError(field string) string {
	if msgs := p.Errors[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Value returns the submitted value of a form field.
func (p Page) Value(field string) string {
	return p.Form.Get(field)
}

// mdRenderer escapes raw HTML in the input (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown renders user supplied text such as program descriptions.
func Markdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

var funcs = template.FuncMap{
	"markdown":  Markdown,
	"roleLabel": func(r domain.Role) string { return r.Label() },
	"add":       func(a, b int) int { return a + b },
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.UTC().Format("2006-01-02 15:04")
	},
	"seq": func(n int) []int {
		s := make([]int, n)
		for i := range s {
			s[i] = i
		}
		return s
	},
	"at": func(values []string, i int) string {
		if i < len(values) {
			return values[i]
		}
		return ""
	},
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	return newRenderer(templateFS)
}

func newRenderer(fsys fs.FS) (*Renderer, error) {
	files, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{pages: make(map[string]*template.Template, len(files))}
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(f), ".html")
		t, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(fsys, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page to w.
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.Execute(w, data)
}

// Instance makes the Renderer usable as gin's HTMLRender, so handlers can call
// c.HTML(status, views.PageUsers, page).
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.pages[name]
	if !ok {
		t = r.pages[PageError]
		data = Page{Title: "Error", Message: "Page not found."}
	}
	return render.HTML{Template: t, Name: path.Base(layoutFile), Data: data}
}

var _ render.HTMLRender = (*Renderer)(nil)
