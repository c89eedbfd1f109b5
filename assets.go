package funnelplan

import (
	"embed"
	"io/fs"
)

// Stylesheet is the file name of the planner stylesheet inside AssetsFS.
const Stylesheet = "funnelplan.css"

//go:embed assets/*.css
var embeddedAssets embed.FS

// AssetsFS exposes the static assets the rendered page links to, so callers
// can copy or serve them next to the HTML output.
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}
