package template_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-benchtmpl/pkg/template"
)

func TestStore_RegisterAndGet(t *testing.T) {
	store := template.NewStore()

	tmpl := template.Must(template.New("db/postgresql.conf", "max_connections = {{ MAX_CONNECTIONS }}"))
	if err := store.Register(tmpl); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := store.Register(tmpl); err == nil {
		t.Fatalf("expected duplicate registration error")
	}

	got, err := store.Get("db/postgresql.conf")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != tmpl {
		t.Fatalf("expected the registered template instance")
	}

	_, err = store.Get("missing")
	if !errors.Is(err, template.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	var notFound *template.NotFoundError
	if !errors.As(err, &notFound) || notFound.Name != "missing" {
		t.Fatalf("expected *NotFoundError for missing, got %v", err)
	}
}

func TestStore_AddRejectsMalformed(t *testing.T) {
	store := template.NewStore()
	if _, err := store.Add("bad", "{% for x in xs %}"); !errors.Is(err, template.ErrMalformedTemplate) {
		t.Fatalf("expected malformed error, got %v", err)
	}
	if store.Has("bad") {
		t.Fatalf("malformed template must not be registered")
	}
}

func TestStore_ListSorted(t *testing.T) {
	store := template.NewStore()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := store.Add(name, "x"); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	if diff := cmp.Diff([]string{"alpha", "mid", "zeta"}, store.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if store.Len() != 3 {
		t.Fatalf("len = %d", store.Len())
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"kubernetes/fib.yaml.j2":           {Data: []byte("image: {{ fib_image }}\n")},
		"postgresql/postgresql.conf.j2":    {Data: []byte("max_connections = {{ MAX_CONNECTIONS }}\n")},
		"postgresql/README.md":             {Data: []byte("not a template {{")},
		"postgresql/conf.d/extra.conf.tpl": {Data: []byte("x = {{ y }}")},
	}

	store, err := template.LoadFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff([]string{"kubernetes/fib.yaml", "postgresql/postgresql.conf"}, store.List()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	prefixed, err := template.LoadFS(fsys, template.WithSuffix("tpl"), template.WithNamePrefix("/extra/"))
	if err != nil {
		t.Fatalf("load prefixed: %v", err)
	}
	if diff := cmp.Diff([]string{"extra/postgresql/conf.d/extra.conf"}, prefixed.List()); diff != "" {
		t.Fatalf("prefixed names mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFS_PropagatesMalformed(t *testing.T) {
	fsys := fstest.MapFS{
		"broken.j2": {Data: []byte("{% if x %}")},
	}
	_, err := template.LoadFS(fsys)
	if !errors.Is(err, template.ErrMalformedTemplate) {
		t.Fatalf("expected malformed error, got %v", err)
	}
}

func TestLoadFS_NilIsEmpty(t *testing.T) {
	store, err := template.LoadFS(nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store")
	}
}

func TestStore_LoadFSIsAtomic(t *testing.T) {
	store := template.NewStore()
	if _, err := store.Add("b", "kept"); err != nil {
		t.Fatalf("add: %v", err)
	}

	collides := fstest.MapFS{
		"a.j2": {Data: []byte("{{ a }}")},
		"b.j2": {Data: []byte("{{ b }}")},
	}
	if err := store.LoadFS(collides); err == nil {
		t.Fatalf("expected collision error")
	}

	malformed := fstest.MapFS{
		"a.j2": {Data: []byte("{{ a }}")},
		"z.j2": {Data: []byte("{% for x in xs %}")},
	}
	if err := store.LoadFS(malformed); !errors.Is(err, template.ErrMalformedTemplate) {
		t.Fatalf("expected malformed error, got %v", err)
	}

	if diff := cmp.Diff([]string{"b"}, store.List()); diff != "" {
		t.Fatalf("store changed after failed loads (-want +got):\n%s", diff)
	}
}

func TestStore_Clone(t *testing.T) {
	store := template.NewStore()
	if _, err := store.Add("a", "x"); err != nil {
		t.Fatalf("add: %v", err)
	}

	clone := store.Clone()
	if _, err := clone.Add("b", "y"); err != nil {
		t.Fatalf("add to clone: %v", err)
	}
	if diff := cmp.Diff([]string{"a"}, store.List()); diff != "" {
		t.Fatalf("original mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, clone.List()); diff != "" {
		t.Fatalf("clone mismatch (-want +got):\n%s", diff)
	}
	if clone.MustGet("a") != store.MustGet("a") {
		t.Fatalf("clone should share parsed templates")
	}
}
