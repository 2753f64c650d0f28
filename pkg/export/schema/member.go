package schema

import (
	"reflect"

	"sheetport-hq/sheetport/pkg/export"
)

// MemberKind distinguishes data members from accessor methods.
// Properties are enumerated before methods.
type MemberKind int

const (
	// KindProperty is a declared data member.
	KindProperty MemberKind = iota
	// KindMethod is a zero-argument accessor method.
	KindMethod
)

// String returns the kind name.
func (k MemberKind) String() string {
	if k == KindMethod {
		return "method"
	}
	return "property"
}

// Member is a type-erased member declaration.
type Member struct {
	// Name is the declared member name.
	Name string

	// Kind is property or method.
	Kind MemberKind

	// Get reads the member from an item. It returns nil when the item is
	// not of the declaring type.
	Get func(item any) any

	// Target is the statically declared related type, if any. For to-many
	// relations it is the element type. Pointer types are dereferenced.
	Target reflect.Type

	// ToMany marks an association whose value is a collection.
	ToMany bool

	// Tag is the export metadata, nil when the member carries none.
	Tag *export.Tag

	// LegacyGroups holds the generic "group" tag used as a fallback
	// inclusion signal for members without export metadata.
	LegacyGroups []string

	// HasLegacyGroups reports whether LegacyGroups was declared.
	HasLegacyGroups bool
}

// Exported reports whether the member carries export metadata.
func (m Member) Exported() bool {
	return m.Tag != nil
}

// Decl is a typed member declaration for items of type T.
type Decl[T any] struct {
	member Member
}

// Property declares a data member. Its static type is unknown, so related
// types are discovered from sampled values.
func Property[T any](name string, get func(T) any) Decl[T] {
	return Decl[T]{member: Member{
		Name: name,
		Kind: KindProperty,
		Get:  erase(get),
	}}
}

// Method declares a zero-argument accessor method.
func Method[T any](name string, get func(T) any) Decl[T] {
	return Decl[T]{member: Member{
		Name: name,
		Kind: KindMethod,
		Get:  erase(get),
	}}
}

// One declares a single related object of type E.
func One[T, E any](name string, get func(T) E) Decl[T] {
	return Decl[T]{member: Member{
		Name:   name,
		Kind:   KindProperty,
		Get:    erase(get),
		Target: baseType(reflect.TypeOf((*E)(nil)).Elem()),
	}}
}

// Many declares a to-many relation with elements of type E. The member
// value is exposed as []any.
func Many[T, E any](name string, get func(T) []E) Decl[T] {
	return Decl[T]{member: Member{
		Name:   name,
		Kind:   KindProperty,
		Get:    eraseSlice(get),
		Target: baseType(reflect.TypeOf((*E)(nil)).Elem()),
		ToMany: true,
	}}
}

// Export attaches export metadata.
func (d Decl[T]) Export(tag export.Tag) Decl[T] {
	t := tag
	t.Groups = append([]string(nil), tag.Groups...)
	t.Fields = append([]string(nil), tag.Fields...)
	d.member.Tag = &t
	return d
}

// Groups attaches the legacy group tag.
func (d Decl[T]) Groups(groups ...string) Decl[T] {
	d.member.LegacyGroups = append([]string(nil), groups...)
	d.member.HasLegacyGroups = true
	return d
}

// AsMethod marks the declaration as an accessor method.
func (d Decl[T]) AsMethod() Decl[T] {
	d.member.Kind = KindMethod
	return d
}

// Member returns the type-erased declaration.
func (d Decl[T]) Member() Member {
	return d.member
}

func erase[T, V any](get func(T) V) func(any) any {
	return func(item any) any {
		t, ok := coerce[T](item)
		if !ok {
			return nil
		}
		v := any(get(t))
		if IsNil(v) {
			return nil
		}
		return v
	}
}

func eraseSlice[T, E any](get func(T) []E) func(any) any {
	return func(item any) any {
		t, ok := coerce[T](item)
		if !ok {
			return nil
		}
		elems := get(t)
		if elems == nil {
			return nil
		}
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = e
		}
		return out
	}
}

// coerce converts item to T, bridging a value and a pointer to it.
func coerce[T any](item any) (T, bool) {
	if t, ok := item.(T); ok {
		return t, true
	}
	var zero T
	if IsNil(item) {
		return zero, false
	}

	want := reflect.TypeOf((*T)(nil)).Elem()
	rv := reflect.ValueOf(item)
	switch {
	case rv.Kind() == reflect.Pointer && rv.Type().Elem() == want:
		return rv.Elem().Interface().(T), true
	case want.Kind() == reflect.Pointer && want.Elem() == rv.Type():
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		return p.Interface().(T), true
	}
	return zero, false
}

// baseType strips pointer indirections.
func baseType(rt reflect.Type) reflect.Type {
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	return rt
}
