package benchtmpl

import (
	"io/fs"

	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// ParseTemplate parses a single template source.
func ParseTemplate(name, source string, options ...template.Option) (*template.Template, error) {
	return template.New(name, source, options...)
}

// LoadTemplates builds a store from every template file in fsys.
func LoadTemplates(fsys fs.FS, options ...template.LoadOption) (*template.Store, error) {
	return template.LoadFS(fsys, options...)
}
