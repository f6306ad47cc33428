package rest

import (
	"embed"
	"html/template"
	"io"
	"net/url"

	"github.com/nemanja-m/mrlabs/internal/shell"
)

//go:embed templates/page.html
var templatesFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesFS, "templates/page.html"))

type pageData struct {
	PageTitle     string
	SelectorTitle string
	SelectorLabel string
	View          shell.View
	ScriptURL     string
	SampleURL     string
}

func renderPage(w io.Writer, view shell.View) error {
	base := experimentsPath + url.PathEscape(view.Selected)
	data := pageData{
		PageTitle:     shell.PageTitle,
		SelectorTitle: shell.SelectorTitle,
		SelectorLabel: shell.SelectorLabel,
		View:          view,
		ScriptURL:     base + "/script",
	}
	if view.Sample != nil {
		data.SampleURL = base + "/sample"
	}
	return pageTemplate.Execute(w, data)
}
