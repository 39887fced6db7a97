package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed templates/*.md
var templates embed.FS

// StatementRenderOptions holds configuration for rendering a capital
// account statement.
type StatementRenderOptions struct {
	SkipRows bool // Do not render the per-event ledger table.
}

// RenderStatement renders the Statement struct to a markdown string.
func RenderStatement(st *Statement, opts StatementRenderOptions) string {
	// Phase 1: Declare template dependencies.
	// We define which partials are needed and how they are aliased in the main template.
	partials := map[string]string{
		"statement_title":   "templates/statement_title.md",
		"statement_summary": "templates/statement_summary.md",
	}

	// Skip the ledger table if requested. An empty file name results in an empty template.
	if opts.SkipRows {
		partials["ledger_view"] = ""
	} else {
		partials["ledger_view"] = "templates/statement_rows.md"
	}

	// A fund with no fee terms gets no fee section at all.
	if st.HasFees {
		partials["fee_view"] = "templates/statement_fees.md"
	} else {
		partials["fee_view"] = ""
	}

	// Phase 2: Execute rendering with the generic utility.
	return renderTemplate("statement", "templates/statement.md", partials, st)
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
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
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
