// Package builtin ships the templates the benchmark tooling renders out of
// the box: the fib Kubernetes manifest set and a PostgreSQL server
// configuration.
package builtin

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-benchtmpl/pkg/template"
)

// Names of the embedded templates, as registered in a store.
const (
	KubernetesFib  = "kubernetes/fib.yaml"
	PostgresConfig = "postgresql/postgresql.conf"
)

//go:embed templates/kubernetes/*.j2 templates/postgresql/*.j2
var embedded embed.FS

// FS exposes the embedded template files rooted at the templates directory.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return embedded
	}
	return sub
}

// Store returns a fresh store holding every embedded template.
func Store() (*template.Store, error) {
	return template.LoadFS(FS())
}
