package benchtmpl

import (
	"io/fs"

	"github.com/goliatone/go-benchtmpl/pkg/builtin"
)

// EmbeddedTemplates exposes the built-in template sources (stored with a .j2
// suffix) so callers can reuse or extend them without importing the builtin
// package directly.
func EmbeddedTemplates() fs.FS {
	return builtin.FS()
}
