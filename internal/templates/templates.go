// Package templates holds the embedded files written by `trinity init`.
package templates

import (
	"bytes"
	"embed"
	"text/template"
)

//go:embed project/*.tmpl
var projectTemplates embed.FS

// ProjectData fills the project templates.
type ProjectData struct {
	Date        string
	ArchiveDir  string
	Threshold   int
	HeaderLines int
	TailLines   int
}

// RenderIndex renders the starter sprint index document.
func RenderIndex(data ProjectData) ([]byte, error) {
	return render("project/INDEX.md.tmpl", data)
}

// RenderActivity renders the starter activity log.
func RenderActivity(data ProjectData) ([]byte, error) {
	return render("project/ACTIVITY.md.tmpl", data)
}

func render(name string, data ProjectData) ([]byte, error) {
	tmpl, err := template.ParseFS(projectTemplates, name)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
