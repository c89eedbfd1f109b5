package funnelplan

import (
	"io/fs"

	"github.com/goliatone/go-funnelplan/pkg/renderers/web"
)

// EmbeddedTemplates exposes the built-in HTML templates so callers can copy
// or extend them and pass the result back through web.WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return web.TemplatesFS()
}
