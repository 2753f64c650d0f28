package schema

import (
	"errors"
	"reflect"
	"testing"

	"sheetport-hq/sheetport/pkg/export"
)

type testRole struct {
	Name string
}

type testUser struct {
	Username string
	Roles    []*testRole
	Manager  *testRole
}

func userType() *Type {
	return NewType("User",
		Property("username", func(u *testUser) any { return u.Username }).
			Export(export.Tag{Groups: []string{"default"}}),
		Many("roles", func(u *testUser) []*testRole { return u.Roles }).
			Export(export.Tag{Mode: export.ModeSheet}),
		One("manager", func(u *testUser) *testRole { return u.Manager }),
	).Exportable()
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(userType()); err != nil {
		t.Fatalf("Register() failed: %v", err)
	}

	typ, err := r.Lookup("User")
	if err != nil {
		t.Fatalf("Lookup() failed: %v", err)
	}
	if !typ.IsExportable() {
		t.Error("Expected User to carry the exportable marker")
	}
	if len(typ.Members()) != 3 {
		t.Errorf("Members() = %d, want 3", len(typ.Members()))
	}
}

func TestRegistry_RegisterValidatesModes(t *testing.T) {
	tests := []struct {
		name    string
		mode    export.ExpansionMode
		want    export.ExpansionMode
		wantErr bool
	}{
		{name: "canonical", mode: export.ModeLines, want: export.ModeLines},
		{name: "mixed case", mode: "Lines", want: export.ModeLines},
		{name: "none", mode: "none", want: export.ModeNone},
		{name: "unknown", mode: "rows", wantErr: true},
		{name: "lines and sheet", mode: "lines|sheet", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ := NewType("User",
				Many("roles", func(u *testUser) []*testRole { return u.Roles }).
					Export(export.Tag{Mode: tt.mode}),
			).Exportable()

			r := NewRegistry()
			err := r.Register(typ)
			if tt.wantErr {
				var valErr *export.ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("Register() error = %v, want ValidationError", err)
				}
				if valErr.Field != "User.roles.mode" {
					t.Errorf("ValidationError.Field = %q, want %q", valErr.Field, "User.roles.mode")
				}
				if _, err := r.Lookup("User"); err == nil {
					t.Error("expected rejected type to stay unregistered")
				}
				return
			}
			if err != nil {
				t.Fatalf("Register() failed: %v", err)
			}
			m, _ := typ.Member("roles")
			if m.Tag.Mode != tt.want {
				t.Errorf("Mode = %q, want %q", m.Tag.Mode, tt.want)
			}
		})
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup("Missing")
	var cfgErr *export.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Lookup() error = %v, want ConfigurationError", err)
	}
	if cfgErr.Type != "Missing" {
		t.Errorf("ConfigurationError.Type = %q, want %q", cfgErr.Type, "Missing")
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(userType())

	err := r.Register(NewType[*testRole]("User"))
	var cfgErr *export.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Register() error = %v, want ConfigurationError", err)
	}
}

func TestRegistry_ForValue(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(userType(), NewType[*testRole]("Role"))

	tests := []struct {
		name  string
		value any
		want  string
		found bool
	}{
		{"pointer", &testRole{Name: "admin"}, "Role", true},
		{"value", testRole{Name: "admin"}, "Role", true},
		{"typed nil", (*testRole)(nil), "", false},
		{"nil", nil, "", false},
		{"unregistered", 42, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typ, ok := r.ForValue(tt.value)
			if ok != tt.found {
				t.Fatalf("ForValue() found = %v, want %v", ok, tt.found)
			}
			if ok && typ.Name() != tt.want {
				t.Errorf("ForValue() = %q, want %q", typ.Name(), tt.want)
			}
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	r.MustRegister(userType(), NewType[*testRole]("Role"))

	got := r.Names()
	want := []string{"Role", "User"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestMembers_Accessors(t *testing.T) {
	typ := userType()
	user := &testUser{
		Username: "john",
		Roles:    []*testRole{{Name: "admin"}, {Name: "user"}},
	}

	username, _ := typ.Member("username")
	if got := username.Get(user); got != "john" {
		t.Errorf("username = %v, want john", got)
	}

	roles, _ := typ.Member("roles")
	if !roles.ToMany {
		t.Error("Expected roles to be a to-many relation")
	}
	if roles.Target != reflect.TypeOf(testRole{}) {
		t.Errorf("roles.Target = %v, want testRole", roles.Target)
	}
	elems, ok := roles.Get(user).([]any)
	if !ok || len(elems) != 2 {
		t.Fatalf("roles = %#v, want 2 elements", roles.Get(user))
	}

	manager, _ := typ.Member("manager")
	if got := manager.Get(user); got != nil {
		t.Errorf("manager = %#v, want nil for a typed nil pointer", got)
	}

	if got := username.Get(testUser{Username: "value"}); got != nil {
		t.Errorf("username on wrong item type = %v, want nil", got)
	}
}

func TestElements(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		wantLen  int
		iterable bool
	}{
		{"any slice", []any{1, 2}, 2, true},
		{"typed slice", []string{"a", "b", "c"}, 3, true},
		{"array", [2]int{1, 2}, 2, true},
		{"bytes", []byte("abc"), 0, false},
		{"string", "abc", 0, false},
		{"scalar", 42, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems, ok := Elements(tt.value)
			if ok != tt.iterable {
				t.Fatalf("Elements() iterable = %v, want %v", ok, tt.iterable)
			}
			if len(elems) != tt.wantLen {
				t.Errorf("Elements() len = %d, want %d", len(elems), tt.wantLen)
			}
		})
	}
}
