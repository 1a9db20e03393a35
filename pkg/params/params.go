package params

import (
	"fmt"
	"sort"
	"strings"
)

// Binder resolves a name to a value. A false second result means the name is
// not bound. Lookups must be free of side effects and return the same answer
// for the lifetime of a render.
type Binder interface {
	Lookup(name string) (Value, bool)
}

// BinderFunc adapts a function to the Binder interface.
type BinderFunc func(name string) (Value, bool)

// Lookup calls f(name).
func (f BinderFunc) Lookup(name string) (Value, bool) {
	return f(name)
}

// Set is an immutable name → value mapping. The zero Set is empty and
// usable.
type Set struct {
	values map[string]Value
}

var _ Binder = Set{}

// New converts a map of Go values into a Set. See ValueOf for the accepted
// value types.
func New(values map[string]any) (Set, error) {
	out := make(map[string]Value, len(values))
	for rawName, raw := range values {
		name := strings.TrimSpace(rawName)
		if name == "" {
			return Set{}, fmt.Errorf("params: empty parameter name")
		}
		value, err := ValueOf(raw)
		if err != nil {
			return Set{}, fmt.Errorf("params: %q: %w", name, err)
		}
		if _, dup := out[name]; dup {
			return Set{}, fmt.Errorf("params: duplicate parameter %q", name)
		}
		out[name] = value
	}
	return Set{values: out}, nil
}

// MustNew panics when New fails.
func MustNew(values map[string]any) Set {
	set, err := New(values)
	if err != nil {
		panic(err)
	}
	return set
}

// FromValues copies already-built values into a Set. Invalid values and
// empty names are dropped.
func FromValues(values map[string]Value) Set {
	out := make(map[string]Value, len(values))
	for name, value := range values {
		name = strings.TrimSpace(name)
		if name == "" || !value.Valid() {
			continue
		}
		out[name] = value
	}
	return Set{values: out}
}

// Lookup implements Binder.
func (s Set) Lookup(name string) (Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Len returns the number of bound names.
func (s Set) Len() int { return len(s.values) }

// Names returns the bound names, sorted.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// With returns a copy of s with name bound to value.
func (s Set) With(name string, value Value) Set {
	out := make(map[string]Value, len(s.values)+1)
	for k, v := range s.values {
		out[k] = v
	}
	if name = strings.TrimSpace(name); name != "" && value.Valid() {
		out[name] = value
	}
	return Set{values: out}
}

// Merge returns a copy of s overlaid with every binding in others, later
// sets winning.
func (s Set) Merge(others ...Set) Set {
	out := make(map[string]Value, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	for _, other := range others {
		for k, v := range other.values {
			out[k] = v
		}
	}
	return Set{values: out}
}

type chain []Binder

// Chain returns a Binder that asks each binder in order and returns the first
// hit. Put overrides first and defaults last. Nil binders are skipped.
func Chain(binders ...Binder) Binder {
	out := make(chain, 0, len(binders))
	for _, b := range binders {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}

func (c chain) Lookup(name string) (Value, bool) {
	for _, b := range c {
		if v, ok := b.Lookup(name); ok {
			return v, true
		}
	}
	return Value{}, false
}

// FromEnv snapshots environment entries ("KEY=value") whose key starts with
// prefix. The prefix is stripped from the bound name. Pass os.Environ() in
// production code; the snapshot keeps lookups stable during a render.
func FromEnv(prefix string, environ []string) Set {
	out := make(map[string]Value)
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}
		name := strings.TrimPrefix(key, prefix)
		if name == "" {
			continue
		}
		out[name] = Scalar(value)
	}
	return Set{values: out}
}

// ParseAssignments parses "name=value" pairs, as passed on a command line.
// A value wrapped in brackets ("zones=[a, b]") becomes a sequence whose items
// are split on commas and trimmed; "[]" is an empty sequence. Later pairs
// override earlier ones.
func ParseAssignments(pairs []string) (Set, error) {
	out := make(map[string]Value, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return Set{}, fmt.Errorf("params: invalid assignment %q, want name=value", pair)
		}
		out[name] = parseAssignedValue(raw)
	}
	return Set{values: out}, nil
}

func parseAssignedValue(raw string) Value {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 2 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return Scalar(raw)
	}
	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return Sequence()
	}
	parts := strings.Split(inner, ",")
	for i, part := range parts {
		parts[i] = strings.TrimSpace(part)
	}
	return Sequence(parts...)
}
