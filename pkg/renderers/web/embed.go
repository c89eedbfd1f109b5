package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded snapshot and page templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}
