package web

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// engine renders the embedded pongo2 templates. Parsed templates are cached
// by path.
type engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

func newEngine(files fs.FS, extension string) (*engine, error) {
	if files == nil {
		return nil, errors.New("web: template fs is required")
	}
	ext := strings.TrimSpace(extension)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	e := &engine{
		templateSet: pongo2.NewSet("funnelplan", pongo2.NewFSLoader(files)),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      ext,
	}
	registerDefaultFilters()
	return e, nil
}

// render executes the named template with data.
func (e *engine) render(name string, data pongo2.Context) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("web: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(data, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("web: execute template %q: %w", templatePath, err)
	}
	return buf.String(), nil
}

// globals seeds values visible to every template.
func (e *engine) globals(data pongo2.Context) {
	if len(data) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.templateSet.Globals == nil {
		e.templateSet.Globals = make(pongo2.Context)
	}
	e.templateSet.Globals.Update(data)
}

func (e *engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("web: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

func registerDefaultFilters() {
	if !pongo2.FilterExists("trim") {
		_ = pongo2.RegisterFilter("trim", filterTrim)
	}
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.Len() <= 0 {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}
