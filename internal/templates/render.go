// Package templates handles HTML template rendering for Datastar SSE responses.
//
// The editor fragments are embedded in the binary. A fragments directory on
// disk can override them for development; Reload re-reads it.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path/filepath"
	"strconv"
	"sync"
)

//go:embed fragments/*.html
var embedded embed.FS

// funcMap provides common template functions.
var funcMap = template.FuncMap{
	// dict creates a map from key-value pairs, useful for passing multiple values to nested templates
	"dict": func(values ...any) map[string]any {
		if len(values)%2 != 0 {
			return nil
		}
		m := make(map[string]any, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				continue
			}
			m[key] = values[i+1]
		}
		return m
	},
	// num formats a float with a fixed number of decimals
	"num": func(f float64, prec int) string {
		return strconv.FormatFloat(f, 'f', prec, 64)
	},
	// trim formats a float without trailing zeros
	"trim": func(f float64) string {
		return strconv.FormatFloat(f, 'f', -1, 64)
	},
	"add": func(a, b float64) float64 { return a + b },
	"sub": func(a, b float64) float64 { return a - b },
	"half": func(a float64) float64 { return a / 2 },
	"pct": func(part, total int) string {
		if total == 0 {
			return "0"
		}
		return fmt.Sprintf("%.0f", float64(part)/float64(total)*100)
	},
}

// Renderer manages HTML fragment templates.
type Renderer struct {
	templates *template.Template
	mu        sync.RWMutex
}

// New creates a new template renderer. An empty fragmentsDir uses the
// embedded fragments.
func New(fragmentsDir string) (*Renderer, error) {
	tmpl, err := parse(fragmentsDir)
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: tmpl}, nil
}

// MustNew is New for the embedded fragments, which are known to parse.
func MustNew() *Renderer {
	r, err := New("")
	if err != nil {
		panic(err)
	}
	return r
}

func parse(fragmentsDir string) (*template.Template, error) {
	base := template.New("").Funcs(funcMap)
	if fragmentsDir == "" {
		return base.ParseFS(embedded, "fragments/*.html")
	}
	return base.ParseGlob(filepath.Join(fragmentsDir, "*.html"))
}

// Render renders a named template to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToBuffer renders a named template to a buffer.
func (r *Renderer) RenderToBuffer(buf *bytes.Buffer, name string, data any) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.templates.ExecuteTemplate(buf, name, data)
}

// MustRender renders a template and panics on error.
// Use only when you're certain the template exists.
func (r *Renderer) MustRender(name string, data any) string {
	s, err := r.Render(name, data)
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether a template with the given name is defined.
func (r *Renderer) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.templates.Lookup(name) != nil
}

// Reload re-parses the fragments (useful for dev hot-reload).
func (r *Renderer) Reload(fragmentsDir string) error {
	tmpl, err := parse(fragmentsDir)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.templates = tmpl
	r.mu.Unlock()

	return nil
}
