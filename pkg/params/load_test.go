package params_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-benchtmpl/pkg/params"
)

func TestLoadFS_Formats(t *testing.T) {
	fsys := fstest.MapFS{
		"fib.yaml": {Data: []byte(strings.Join([]string{
			"fib_image: example/fib:latest",
			"port: 8080",
			"node_selectors:",
			"  - \"disktype: ssd\"",
			"",
		}, "\n"))},
		"fib.json": {Data: []byte(`{"fib_image": "example/fib:latest", "port": 8080, "node_selectors": ["disktype: ssd"]}`)},
		"fib.hcl": {Data: []byte(strings.Join([]string{
			`fib_image      = "example/fib:latest"`,
			`port           = 8080`,
			`node_selectors = ["disktype: ssd"]`,
			"",
		}, "\n"))},
	}

	for _, path := range []string{"fib.yaml", "fib.json", "fib.hcl"} {
		t.Run(path, func(t *testing.T) {
			set, err := params.LoadFS(fsys, path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if diff := cmp.Diff([]string{"fib_image", "node_selectors", "port"}, set.Names()); diff != "" {
				t.Fatalf("names mismatch (-want +got):\n%s", diff)
			}
			if v, _ := set.Lookup("port"); v.String() != "8080" {
				t.Fatalf("port = %q", v.String())
			}
			sel, _ := set.Lookup("node_selectors")
			if diff := cmp.Diff([]string{"disktype: ssd"}, sel.Items()); diff != "" {
				t.Fatalf("node_selectors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFS_HCLScalars(t *testing.T) {
	fsys := fstest.MapFS{
		"pg.hcl": {Data: []byte(strings.Join([]string{
			`PG_VERSION         = "14"`,
			`MAX_CONNECTIONS    = 200`,
			`SHARED_BUFFER_SIZE = 8`,
			`FRACTION           = 0.5`,
			`FSYNC              = false`,
			`SIZES              = [1, 2.5]`,
			"",
		}, "\n"))},
	}

	set, err := params.LoadFS(fsys, "pg.hcl")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]string{
		"PG_VERSION":         "14",
		"MAX_CONNECTIONS":    "200",
		"SHARED_BUFFER_SIZE": "8",
		"FRACTION":           "0.5",
		"FSYNC":              "false",
		"SIZES":              "[1, 2.5]",
	}
	for name, text := range want {
		v, ok := set.Lookup(name)
		if !ok || v.String() != text {
			t.Errorf("%s = %q (%v), want %q", name, v.String(), ok, text)
		}
	}
}

func TestLoadFS_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"nested.yaml": {Data: []byte("a:\n  b: c\n")},
		"broken.yaml": {Data: []byte("a: [\n")},
		"object.hcl":  {Data: []byte("a = { b = 1 }\n")},
		"null.hcl":    {Data: []byte("a = null\n")},
		"broken.hcl":  {Data: []byte("a = \n")},
		"block.hcl":   {Data: []byte("a {\n}\n")},
		"params.toml": {Data: []byte("a = 1\n")},
	}
	for path := range fsys {
		t.Run(path, func(t *testing.T) {
			if _, err := params.LoadFS(fsys, path); err == nil {
				t.Fatalf("expected error for %s", path)
			}
		})
	}
	if _, err := params.LoadFS(fsys, "missing.yaml"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFiles_LaterWins(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "base.yaml")
	override := filepath.Join(dir, "override.hcl")
	if err := os.WriteFile(base, []byte("port: 8080\nfib_image: example/fib:latest\n"), 0o644); err != nil {
		t.Fatalf("write base: %v", err)
	}
	if err := os.WriteFile(override, []byte("port = 9090\n"), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	set, err := params.LoadFiles(base, override)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if v, _ := set.Lookup("port"); v.String() != "9090" {
		t.Fatalf("port = %q", v.String())
	}
	if v, _ := set.Lookup("fib_image"); v.String() != "example/fib:latest" {
		t.Fatalf("fib_image = %q", v.String())
	}
}

func TestDecode_EmptyYAML(t *testing.T) {
	set, err := params.Decode([]byte("  \n"), params.FormatYAML, "empty.yaml")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if set.Len() != 0 {
		t.Fatalf("expected empty set")
	}
}
