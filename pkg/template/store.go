package template

import (
	"fmt"
	"sort"
	"sync"
)

// Store keeps parsed templates by name. It is safe for concurrent use;
// templates themselves are immutable once registered.
type Store struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		templates: make(map[string]*Template),
	}
}

// Register adds a parsed template. Duplicate names return an error.
func (s *Store) Register(t *Template) error {
	if t == nil {
		return fmt.Errorf("template: template is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.templates[t.name]; exists {
		return fmt.Errorf("template: %q already registered", t.name)
	}
	s.templates[t.name] = t
	return nil
}

// registerAll adds every template or none of them.
func (s *Store) registerAll(ts []*Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(ts))
	for _, t := range ts {
		if _, exists := s.templates[t.name]; exists {
			return fmt.Errorf("template: %q already registered", t.name)
		}
		if _, dup := seen[t.name]; dup {
			return fmt.Errorf("template: %q already registered", t.name)
		}
		seen[t.name] = struct{}{}
	}
	for _, t := range ts {
		s.templates[t.name] = t
	}
	return nil
}

// Clone returns a new store holding the same templates. Registering into
// the clone leaves s untouched.
func (s *Store) Clone() *Store {
	s.mu.RLock()
	defer s.mu.RUnlock()

	clone := NewStore()
	for name, t := range s.templates {
		clone.templates[name] = t
	}
	return clone
}

// MustRegister panics on registration failure.
func (s *Store) MustRegister(t *Template) {
	if err := s.Register(t); err != nil {
		panic(err)
	}
}

// Add parses source and registers the result under name.
func (s *Store) Add(name, source string, opts ...Option) (*Template, error) {
	t, err := New(name, source, opts...)
	if err != nil {
		return nil, err
	}
	if err := s.Register(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the named template or a *NotFoundError.
func (s *Store) Get(name string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.templates[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return t, nil
}

// MustGet panics if the template is missing.
func (s *Store) MustGet(name string) *Template {
	t, err := s.Get(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Has reports whether name is registered.
func (s *Store) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.templates[name]
	return ok
}

// List returns the registered names, sorted.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.templates))
	for name := range s.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.templates)
}
