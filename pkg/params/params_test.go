package params_test

import (
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-benchtmpl/pkg/params"
)

type gigabytes int

type engineName string

func TestValueOf(t *testing.T) {
	cases := []struct {
		name  string
		in    any
		kind  params.Kind
		text  string
		items []string
	}{
		{name: "string", in: "example/fib:latest", kind: params.KindScalar, text: "example/fib:latest"},
		{name: "int", in: 8080, kind: params.KindScalar, text: "8080"},
		{name: "int64", in: int64(-3), kind: params.KindScalar, text: "-3"},
		{name: "uint", in: uint16(200), kind: params.KindScalar, text: "200"},
		{name: "float", in: 0.9, kind: params.KindScalar, text: "0.9"},
		{name: "whole float", in: 8.0, kind: params.KindScalar, text: "8"},
		{name: "bool", in: true, kind: params.KindScalar, text: "true"},
		{name: "bytes", in: []byte("raw"), kind: params.KindScalar, text: "raw"},
		{name: "stringer", in: net.IPv4(10, 0, 0, 1), kind: params.KindScalar, text: "10.0.0.1"},
		{name: "named string", in: engineName("strict"), kind: params.KindScalar, text: "strict"},
		{name: "named int", in: gigabytes(8), kind: params.KindScalar, text: "8"},
		{name: "string slice", in: []string{"disktype: ssd"}, kind: params.KindSequence, items: []string{"disktype: ssd"}},
		{name: "mixed slice", in: []any{"a", 1, false}, kind: params.KindSequence, items: []string{"a", "1", "false"}},
		{name: "array", in: [2]int{1, 2}, kind: params.KindSequence, items: []string{"1", "2"}},
		{name: "empty slice", in: []string{}, kind: params.KindSequence, items: []string{}},
		{name: "value passthrough", in: params.Sequence("x"), kind: params.KindSequence, items: []string{"x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := params.ValueOf(tc.in)
			if err != nil {
				t.Fatalf("value of: %v", err)
			}
			if v.Kind() != tc.kind {
				t.Fatalf("kind = %s, want %s", v.Kind(), tc.kind)
			}
			if tc.kind == params.KindScalar && v.String() != tc.text {
				t.Fatalf("text = %q, want %q", v.String(), tc.text)
			}
			if tc.kind == params.KindSequence {
				if diff := cmp.Diff(tc.items, v.Items()); diff != "" {
					t.Fatalf("items mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestValueOf_Rejects(t *testing.T) {
	for name, in := range map[string]any{
		"nil":         nil,
		"map":         map[string]any{"a": 1},
		"nested":      []any{[]string{"a"}},
		"struct":      struct{ A int }{A: 1},
		"zero value":  params.Value{},
		"nil element": []any{nil},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := params.ValueOf(in); err == nil {
				t.Fatalf("expected error for %#v", in)
			}
		})
	}
}

func TestValue_Truthy(t *testing.T) {
	cases := map[string]struct {
		v    params.Value
		want bool
	}{
		"empty scalar":   {params.Scalar(""), false},
		"scalar":         {params.Scalar("hadoop-aws"), true},
		"empty sequence": {params.Sequence(), false},
		"sequence":       {params.Sequence("a"), true},
		"zero":           {params.Value{}, false},
	}
	for name, tc := range cases {
		if got := tc.v.Truthy(); got != tc.want {
			t.Errorf("%s: truthy = %v, want %v", name, got, tc.want)
		}
	}
}

func TestSet_LookupAndNames(t *testing.T) {
	set := params.MustNew(map[string]any{
		"PG_VERSION":      "14",
		"MAX_CONNECTIONS": 200,
	})

	v, ok := set.Lookup("MAX_CONNECTIONS")
	if !ok || v.String() != "200" {
		t.Fatalf("lookup MAX_CONNECTIONS = %v, %v", v, ok)
	}
	if _, ok := set.Lookup("missing"); ok {
		t.Fatalf("expected missing name to be unbound")
	}
	if diff := cmp.Diff([]string{"MAX_CONNECTIONS", "PG_VERSION"}, set.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_New_Errors(t *testing.T) {
	if _, err := params.New(map[string]any{"": "x"}); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := params.New(map[string]any{"a": nil}); err == nil {
		t.Fatalf("expected nil value error")
	}
	if _, err := params.New(map[string]any{"a": 1, " a ": 2}); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func TestSet_WithAndMergeCopy(t *testing.T) {
	base := params.MustNew(map[string]any{"a": "1"})
	extended := base.With("b", params.Scalar("2"))
	if _, ok := base.Lookup("b"); ok {
		t.Fatalf("With must not mutate the receiver")
	}
	merged := base.Merge(params.MustNew(map[string]any{"a": "override"}), extended)
	if diff := cmp.Diff([]string{"a", "b"}, merged.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if v, _ := merged.Lookup("a"); v.String() != "1" {
		t.Fatalf("later sets win: a = %q", v.String())
	}
}

func TestChain(t *testing.T) {
	overrides := params.MustNew(map[string]any{"port": 9090})
	defaults := params.MustNew(map[string]any{"port": 8080, "fib_image": "example/fib:latest"})
	computed := params.BinderFunc(func(name string) (params.Value, bool) {
		if name == "replicas" {
			return params.Scalar("3"), true
		}
		return params.Value{}, false
	})

	b := params.Chain(overrides, nil, defaults, computed)

	for name, want := range map[string]string{
		"port":      "9090",
		"fib_image": "example/fib:latest",
		"replicas":  "3",
	} {
		v, ok := b.Lookup(name)
		if !ok || v.String() != want {
			t.Errorf("%s = %q (%v), want %q", name, v.String(), ok, want)
		}
	}
	if _, ok := b.Lookup("nope"); ok {
		t.Fatalf("expected nope to be unbound")
	}
}

func TestFromEnv(t *testing.T) {
	env := []string{
		"BENCHTMPL_PARAM_PG_VERSION=14",
		"BENCHTMPL_PARAM_SCRATCH_DIR=/scratch=0",
		"BENCHTMPL_PARAM_=ignored",
		"HOME=/root",
		"malformed",
	}
	set := params.FromEnv("BENCHTMPL_PARAM_", env)

	if diff := cmp.Diff([]string{"PG_VERSION", "SCRATCH_DIR"}, set.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	if v, _ := set.Lookup("SCRATCH_DIR"); v.String() != "/scratch=0" {
		t.Fatalf("SCRATCH_DIR = %q", v.String())
	}
}

func TestParseAssignments(t *testing.T) {
	set, err := params.ParseAssignments([]string{
		"fib_image=example/fib:latest",
		"port=8080",
		"node_selectors=[disktype: ssd, zone: a]",
		"empty=[]",
		"note=a,b",
		"port=9090",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if v, _ := set.Lookup("port"); v.String() != "9090" {
		t.Fatalf("later assignments win, port = %q", v.String())
	}
	if v, _ := set.Lookup("note"); v.IsSequence() || v.String() != "a,b" {
		t.Fatalf("unbracketed commas stay scalar, note = %v", v)
	}
	sel, _ := set.Lookup("node_selectors")
	if diff := cmp.Diff([]string{"disktype: ssd", "zone: a"}, sel.Items()); diff != "" {
		t.Fatalf("node_selectors mismatch (-want +got):\n%s", diff)
	}
	if v, _ := set.Lookup("empty"); !v.IsSequence() || v.Len() != 0 {
		t.Fatalf("empty = %v", v)
	}

	if _, err := params.ParseAssignments([]string{"novalue"}); err == nil {
		t.Fatalf("expected error for missing '='")
	}
	if _, err := params.ParseAssignments([]string{"=x"}); err == nil {
		t.Fatalf("expected error for empty name")
	}
}
