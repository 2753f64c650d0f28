package schema

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"sheetport-hq/sheetport/pkg/export"
)

// Registry maps type names and Go types to registered types.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	byName   map[string]*Type
	byGoType map[reflect.Type]*Type
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:   make(map[string]*Type),
		byGoType: make(map[reflect.Type]*Type),
	}
}

// Register adds types to the registry. Registering a name twice fails
// with a ConfigurationError and an unparsable expansion mode with a
// ValidationError; either way the registry is left unchanged. Valid modes
// are stored in canonical form.
func (r *Registry) Register(types ...*Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(types))
	for _, t := range types {
		if t == nil || t.name == "" {
			return export.NewConfigurationError("", "type name is required")
		}
		if _, exists := r.byName[t.name]; exists || seen[t.name] {
			return export.NewConfigurationError(t.name, "type is already registered")
		}
		seen[t.name] = true

		if err := checkModes(t); err != nil {
			return err
		}
	}

	for _, t := range types {
		for _, m := range t.members {
			if m.Tag != nil {
				m.Tag.Mode, _ = export.ParseExpansionMode(string(m.Tag.Mode))
			}
		}
		r.byName[t.name] = t
		if t.goType != nil {
			if _, exists := r.byGoType[t.goType]; !exists {
				r.byGoType[t.goType] = t
			}
		}
	}
	return nil
}

func checkModes(t *Type) error {
	for _, m := range t.members {
		if m.Tag == nil {
			continue
		}
		if _, err := export.ParseExpansionMode(string(m.Tag.Mode)); err != nil {
			var valErr *export.ValidationError
			if errors.As(err, &valErr) {
				return export.NewValidationError(t.name+"."+m.Name+".mode", valErr.Reason)
			}
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(types ...*Type) {
	if err := r.Register(types...); err != nil {
		panic(err)
	}
}

// Lookup returns the type registered under name.
func (r *Registry) Lookup(name string) (*Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byName[name]
	if !ok {
		return nil, export.NewConfigurationError(name, fmt.Sprintf("type %q is not registered", name))
	}
	return t, nil
}

// ForGoType returns the type registered for rt, dereferencing pointers.
func (r *Registry) ForGoType(rt reflect.Type) (*Type, bool) {
	rt = baseType(rt)
	if rt == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byGoType[rt]
	return t, ok
}

// ForValue returns the type registered for the runtime type of v.
func (r *Registry) ForValue(v any) (*Type, bool) {
	if IsNil(v) {
		return nil, false
	}
	return r.ForGoType(reflect.TypeOf(v))
}

// Names returns the registered type names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
