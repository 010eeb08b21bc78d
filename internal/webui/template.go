package webui

import (
	"fmt"
	"html/template"
	"sync"

	"github.com/alex65536/fenboard/internal/util/timeutil"
)

type templator struct {
	cfg  *Config
	mu   sync.Mutex
	tmpl map[string]*template.Template
}

func newTemplator(cfg *Config) *templator {
	return &templator{
		cfg:  cfg,
		tmpl: make(map[string]*template.Template),
	}
}

func (t *templator) makeFuncs() template.FuncMap {
	return template.FuncMap{
		"asURL": func(s string) string {
			return t.cfg.prefix + s
		},
		"asStaticURL": func(s string) string {
			return t.cfg.prefix + s + "?" + t.cfg.ServerID
		},
		"humanTime": func(tm timeutil.UTCTime) string {
			return timeutil.HumanTime(tm)
		},
		"fullTime": func(tm timeutil.UTCTime) string {
			return timeutil.FullTime(tm)
		},
	}
}

// Get returns the template for the given page. Every page template is parsed
// together with the base layout and the shared parts.
func (t *templator) Get(name string) (*template.Template, error) {
	key := name
	if key == "" {
		key = "-"
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if tmpl, ok := t.tmpl[key]; ok {
		return tmpl, nil
	}
	files := []string{"template/base.html", "template/parts.html"}
	if name != "" {
		files = append(files, fmt.Sprintf("template/%v.html", name))
	}
	tmpl, err := template.New("base").Funcs(t.makeFuncs()).ParseFS(templates, files...)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	t.tmpl[key] = tmpl
	return tmpl, nil
}
