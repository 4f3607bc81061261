// Package page renders the escape room HTML document from a gate.Report.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"escaperoom/internal/gate"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Section is the view of one level.
type Section struct {
	ID      int
	Title   string
	Passed  bool
	Message string
	Clue    template.HTML
	Hint    template.HTML
	// HintID is the DOM id toggled by the hint button.
	HintID string
}

// View is the data handed to the template.
type View struct {
	Title string
	// Sections holds only the visible levels, in ascending order.
	Sections []Section
}

// Renderer executes the embedded page template. It is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("could not parse page templates: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// NewView builds the view of report. Level 1 is always visible; level n is
// visible only when level n-1 passed.
func NewView(report gate.Report) View {
	v := View{Title: "Docker Escape Room"}
	for i, c := range levels {
		id := i + 1
		if id > 1 && !report.Passed(id-1) {
			break
		}
		lvl := report.Level(id)
		v.Sections = append(v.Sections, Section{
			ID:      id,
			Title:   c.Title,
			Passed:  lvl.Passed,
			Message: lvl.Message,
			Clue:    c.Clue,
			Hint:    c.Hint,
			HintID:  fmt.Sprintf("hint%d", id),
		})
	}

	return v
}

// Render writes the page for report to w.
func (r *Renderer) Render(w io.Writer, report gate.Report) error {
	if err := r.tmpl.ExecuteTemplate(w, "index.html.tmpl", NewView(report)); err != nil {
		return fmt.Errorf("could not render page: %w", err)
	}

	return nil
}
