package schema

import "reflect"

// Type is a registered Go type and its declared members.
type Type struct {
	name       string
	goType     reflect.Type
	exportable bool
	members    []Member
}

// NewType declares a type named name whose items are of Go type T.
// Members keep their declaration order.
func NewType[T any](name string, decls ...Decl[T]) *Type {
	t := &Type{
		name:   name,
		goType: baseType(reflect.TypeOf((*T)(nil)).Elem()),
	}
	for _, d := range decls {
		t.members = append(t.members, d.member)
	}
	return t
}

// Exportable sets the exportable marker and returns t.
func (t *Type) Exportable() *Type {
	t.exportable = true
	return t
}

// IsExportable reports whether the type carries the exportable marker.
func (t *Type) IsExportable() bool {
	return t.exportable
}

// Name returns the registered type name.
func (t *Type) Name() string {
	return t.name
}

// GoType returns the dereferenced Go type of the items.
func (t *Type) GoType() reflect.Type {
	return t.goType
}

// Members returns the declared members in declaration order.
func (t *Type) Members() []Member {
	out := make([]Member, len(t.members))
	copy(out, t.members)
	return out
}

// Member looks up a member by declared name, then by export name.
func (t *Type) Member(name string) (Member, bool) {
	for _, m := range t.members {
		if m.Name == name {
			return m, true
		}
	}
	for _, m := range t.members {
		if m.Tag != nil && m.Tag.Name == name {
			return m, true
		}
	}
	return Member{}, false
}
