package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"sheetport-hq/sheetport/pkg/export"
)

const (
	exportTagKey = "export"
	groupsTagKey = "groups"
)

// FromStruct derives a type declaration from the struct tags of T.
//
// The `export` tag carries the export metadata as comma-separated
// key=value pairs; list values are separated with '|':
//
//	Email string   `export:"name=Email,groups=default|admin,position=2"`
//	Roles []*Role  `export:"mode=sheet,fields=name"`
//	Notes string   `groups:"admin"`
//
// `export:"-"` skips the field, and an empty `export:""` exports it with
// default metadata. The `groups` tag is the legacy inclusion signal for
// fields without export metadata. Struct fields become single relations
// and slices of structs become to-many relations.
func FromStruct[T any](name string) (*Type, error) {
	rt := baseType(reflect.TypeOf((*T)(nil)).Elem())
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil, export.NewConfigurationError(name, "struct tags require a struct type")
	}

	t := &Type{name: name, goType: rt}
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		raw, hasExport := field.Tag.Lookup(exportTagKey)
		if raw == "-" {
			continue
		}
		legacy, hasLegacy := field.Tag.Lookup(groupsTagKey)
		if !hasExport && !hasLegacy {
			continue
		}

		m := Member{
			Name: field.Name,
			Kind: KindProperty,
			Get:  structFieldGetter(rt, i),
		}

		ft := baseType(field.Type)
		switch {
		case ft.Kind() == reflect.Struct && !IsScalar(ft):
			m.Target = ft
		case (ft.Kind() == reflect.Slice || ft.Kind() == reflect.Array) && !IsScalar(ft):
			m.Target = baseType(ft.Elem())
			m.ToMany = true
		}

		if hasExport {
			tag, err := ParseTag(raw)
			if err != nil {
				return nil, fmt.Errorf("field %s.%s: %w", name, field.Name, err)
			}
			m.Tag = &tag
		}
		if hasLegacy {
			m.LegacyGroups = splitList(legacy, ",")
			m.HasLegacyGroups = true
		}

		t.members = append(t.members, m)
	}
	return t, nil
}

// MustFromStruct is like FromStruct but panics on error.
func MustFromStruct[T any](name string) *Type {
	t, err := FromStruct[T](name)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTag parses the value of an `export` struct tag.
func ParseTag(raw string) (export.Tag, error) {
	var tag export.Tag
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return export.Tag{}, export.NewValidationError("export", fmt.Sprintf("malformed tag entry %q", part))
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			tag.Name = value
		case "groups":
			tag.Groups = splitList(value, "|")
		case "position":
			n, err := strconv.Atoi(value)
			if err != nil {
				return export.Tag{}, export.NewValidationError("position", fmt.Sprintf("invalid position %q", value))
			}
			tag.Position = export.At(n)
		case "mode":
			mode, err := export.ParseExpansionMode(value)
			if err != nil {
				return export.Tag{}, err
			}
			tag.Mode = mode
		case "fields":
			tag.Fields = splitList(value, "|")
		default:
			return export.Tag{}, export.NewValidationError(key, "unknown export tag key")
		}
	}
	return tag, nil
}

func structFieldGetter(rt reflect.Type, index int) func(any) any {
	return func(item any) any {
		rv := reflect.ValueOf(item)
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				return nil
			}
			rv = rv.Elem()
		}
		if !rv.IsValid() || rv.Type() != rt {
			return nil
		}
		v := rv.Field(index).Interface()
		if IsNil(v) {
			return nil
		}
		return v
	}
}

func splitList(s, sep string) []string {
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
