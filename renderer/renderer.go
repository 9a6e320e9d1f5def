// Package renderer turns game state into markdown reports.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/younginvestor/content"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

// RenderStatus renders the player's balance sheet, holdings and milestones.
func RenderStatus(s *Status) string {
	partials := map[string]string{
		"status_title":      "status_title.md",
		"status_holdings":   "status_holdings.md",
		"status_milestones": "status_milestones.md",
	}
	return renderTemplate("status", "status.md", partials, s)
}

// RenderRound renders the quotes of a trading round.
func RenderRound(r *Round) string {
	partials := map[string]string{
		"round_quotes": "round_quotes.md",
		"round_news":   "round_news.md",
	}
	return renderTemplate("round", "round.md", partials, r)
}

// RenderJournal renders the executed trades.
func RenderJournal(j *Journal) string {
	return renderTemplate("journal", "journal.md", nil, j)
}

// RenderFlow renders the guided flow around the current step.
func RenderFlow(f *Flow) string {
	return renderTemplate("flow", "flow.md", nil, f)
}

// RenderLesson renders a lesson, one section per slide.
func RenderLesson(l content.Lesson) string {
	return renderTemplate("lesson", "lesson.md", nil, l)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
