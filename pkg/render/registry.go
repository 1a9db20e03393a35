package render

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownRenderer matches every *UnknownRendererError.
var ErrUnknownRenderer = errors.New("unknown renderer")

// UnknownRendererError names a renderer the registry does not hold.
type UnknownRendererError struct {
	Name      string
	Available []string
}

func (e *UnknownRendererError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("render: renderer %q not found, none registered", e.Name)
	}
	return fmt.Sprintf("render: renderer %q not found (available: %s)", e.Name, strings.Join(e.Available, ", "))
}

func (e *UnknownRendererError) Unwrap() error {
	return ErrUnknownRenderer
}

// Registry selects the engine for a render by name. The first renderer
// registered is the default.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	first     string
}

// NewRegistry creates a registry holding the given renderers; the first one
// becomes the default. It panics on duplicate or unnamed renderers.
func NewRegistry(renderers ...Renderer) *Registry {
	r := &Registry{renderers: make(map[string]Renderer, len(renderers))}
	for _, renderer := range renderers {
		r.MustRegister(renderer)
	}
	return r
}

// Register adds a renderer under its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	name := strings.TrimSpace(renderer.Name())
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[name]; exists {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	r.renderers[name] = renderer
	if r.first == "" {
		r.first = name
	}
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get returns the named renderer or an *UnknownRendererError.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if renderer, ok := r.renderers[name]; ok {
		return renderer, nil
	}
	return nil, &UnknownRendererError{Name: name, Available: r.sortedNames()}
}

// MustGet panics if the renderer is missing.
func (r *Registry) MustGet(name string) Renderer {
	renderer, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return renderer
}

// Default returns the first renderer registered.
func (r *Registry) Default() (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.first == "" {
		return nil, &UnknownRendererError{Name: ""}
	}
	return r.renderers[r.first], nil
}

// Resolve picks the renderer for a request: name when given, the default
// otherwise.
func (r *Registry) Resolve(name string) (Renderer, error) {
	if strings.TrimSpace(name) == "" {
		return r.Default()
	}
	return r.Get(name)
}

// List returns the registered names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedNames()
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.renderers[name]
	return ok
}

func (r *Registry) sortedNames() []string {
	names := make([]string, 0, len(r.renderers))
	for name := range r.renderers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
