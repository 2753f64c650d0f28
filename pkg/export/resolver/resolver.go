package resolver

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/schema"
)

// Resolver produces field descriptors from registered types.
type Resolver struct {
	registry    *schema.Registry
	logger      *slog.Logger
	sampleLimit int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for soft resolution failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSampleLimit caps how many items are scanned when a relation's target
// type has to be detected from values. Zero scans the whole dataset.
func WithSampleLimit(n int) Option {
	return func(r *Resolver) {
		r.sampleLimit = n
	}
}

// New creates a resolver backed by registry.
func New(registry *schema.Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		logger:   slog.Default().With("component", "export.resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the ordered descriptors of t for group. A nil group
// selects every member carrying export metadata. Items are only read to
// detect relation targets that are not statically declared.
func (r *Resolver) Resolve(t *schema.Type, group *string, items []any) []FieldDescriptor {
	members := selectMembers(t, group)

	descs := make([]FieldDescriptor, 0, len(members))
	for _, m := range members {
		d := FieldDescriptor{
			ExportName: m.Name,
			Member:     m.Name,
			Kind:       m.Kind,
			Get:        m.Get,
		}
		if m.Tag != nil {
			if m.Tag.Name != "" {
				d.ExportName = m.Tag.Name
			}
			d.Mode = m.Tag.Mode
			d.Groups = m.Tag.Groups
			d.Position = m.Tag.Position
		} else {
			d.Groups = m.LegacyGroups
		}

		d.SubFields = r.subFields(t, m, items)
		descs = append(descs, d)
	}

	r.logger.Debug("resolved export fields",
		"type", t.Name(),
		"group", groupLabel(group),
		"fields", len(descs),
	)
	return descs
}

// selectMembers applies the group filter and orders the result: properties
// before methods in declaration order, then by position where declared.
func selectMembers(t *schema.Type, group *string) []schema.Member {
	var props, methods []schema.Member
	for _, m := range t.Members() {
		if !included(m, group) {
			continue
		}
		if m.Kind == schema.KindMethod {
			methods = append(methods, m)
		} else {
			props = append(props, m)
		}
	}

	members := append(props, methods...)
	sort.SliceStable(members, func(i, j int) bool {
		pi, pj := position(members[i]), position(members[j])
		switch {
		case pi != nil && pj != nil:
			return *pi < *pj
		case pi != nil:
			return true
		default:
			return false
		}
	})
	return members
}

func included(m schema.Member, group *string) bool {
	if m.Tag != nil {
		return m.Tag.InGroup(group)
	}
	if m.HasLegacyGroups {
		return export.MatchGroup(m.LegacyGroups, group)
	}
	return false
}

func position(m schema.Member) *int {
	if m.Tag == nil {
		return nil
	}
	return m.Tag.Position
}

// subFields returns the sub-field columns for m, or nil when the raw value
// is exported as a single column.
func (r *Resolver) subFields(owner *schema.Type, m schema.Member, items []any) []SubField {
	target := r.target(owner, m, items)

	if m.Tag != nil && len(m.Tag.Fields) > 0 {
		out := make([]SubField, len(m.Tag.Fields))
		for i, name := range m.Tag.Fields {
			out[i] = SubField{Name: name, Get: r.fieldGetter(target, name)}
		}
		return out
	}

	if target == nil {
		return nil
	}

	nested := selectMembers(target, nil)
	if len(nested) == 0 {
		r.soft(owner, m, fmt.Errorf("related type %q has no exportable members", target.Name()))
		return nil
	}

	out := make([]SubField, len(nested))
	for i, nm := range nested {
		name := nm.Name
		if nm.Tag != nil && nm.Tag.Name != "" {
			name = nm.Tag.Name
		}
		out[i] = SubField{Name: name, Get: nm.Get}
	}
	return out
}

// target finds the registered type of m's related values: the static
// declaration first, then the runtime type of the first sampled value.
func (r *Resolver) target(owner *schema.Type, m schema.Member, items []any) *schema.Type {
	if m.Target != nil {
		if schema.IsScalar(m.Target) {
			return nil
		}
		t, ok := r.registry.ForGoType(m.Target)
		if !ok {
			r.soft(owner, m, fmt.Errorf("related type %s is not registered", m.Target))
			return nil
		}
		return t
	}

	sample, found := r.sample(m, items)
	if !found {
		return nil
	}
	rt := reflect.TypeOf(sample)
	if schema.IsScalar(rt) {
		return nil
	}
	t, ok := r.registry.ForGoType(rt)
	if !ok {
		r.soft(owner, m, fmt.Errorf("sampled type %s is not registered", rt))
		return nil
	}
	return t
}

// sample scans item values for m until it finds a non-nil object or a
// non-empty collection, and returns that object or the collection's first
// non-nil element.
func (r *Resolver) sample(m schema.Member, items []any) (any, bool) {
	for i, item := range items {
		if r.sampleLimit > 0 && i >= r.sampleLimit {
			break
		}
		v := m.Get(item)
		if schema.IsNil(v) {
			continue
		}
		elems, iterable := schema.Elements(v)
		if !iterable {
			return v, true
		}
		for _, e := range elems {
			if !schema.IsNil(e) {
				return e, true
			}
		}
	}
	return nil, false
}

// fieldGetter composes an accessor for an explicitly named sub-field.
func (r *Resolver) fieldGetter(target *schema.Type, name string) func(any) any {
	if target != nil {
		if m, ok := target.Member(name); ok {
			static := m.Get
			dynamic := r.dynamicGetter(name)
			return func(v any) any {
				if out := static(v); out != nil {
					return out
				}
				return dynamic(v)
			}
		}
	}
	return r.dynamicGetter(name)
}

// dynamicGetter reads a named sub-field from maps, FieldGetter values or
// values whose runtime type is registered.
func (r *Resolver) dynamicGetter(name string) func(any) any {
	return func(v any) any {
		if schema.IsNil(v) {
			return nil
		}
		switch x := v.(type) {
		case map[string]any:
			return x[name]
		case map[string]string:
			if s, ok := x[name]; ok {
				return s
			}
			return nil
		case FieldGetter:
			out, _ := x.ExportField(name)
			return out
		}
		if t, ok := r.registry.ForValue(v); ok {
			if m, ok := t.Member(name); ok {
				return m.Get(v)
			}
		}
		return nil
	}
}

func (r *Resolver) soft(owner *schema.Type, m schema.Member, cause error) {
	r.logger.Debug("falling back to raw value",
		"error", export.NewResolutionError(owner.Name(), m.Name, cause),
	)
}

func groupLabel(group *string) string {
	if group == nil {
		return "*"
	}
	return *group
}
