package schema

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"sheetport-hq/sheetport/pkg/export"
)

type taggedAddress struct {
	Street string `export:""`
	City   string `export:""`
}

type taggedCustomer struct {
	ID        int              `export:"name=Identifier,position=1"`
	Email     string           `export:"groups=default|admin"`
	Notes     string           `groups:"admin"`
	Address   *taggedAddress   `export:"fields=street|city"`
	Addresses []taggedAddress  `export:"mode=lines"`
	Created   time.Time        `export:""`
	Secret    string           `export:"-"`
	Ignored   string
	internal  string           `export:""`
}

func TestFromStruct(t *testing.T) {
	typ, err := FromStruct[*taggedCustomer]("Customer")
	if err != nil {
		t.Fatalf("FromStruct() failed: %v", err)
	}

	var names []string
	for _, m := range typ.Members() {
		names = append(names, m.Name)
	}
	want := []string{"ID", "Email", "Notes", "Address", "Addresses", "Created"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("members = %v, want %v", names, want)
	}

	id, _ := typ.Member("ID")
	if id.Tag.Name != "Identifier" || id.Tag.Position == nil || *id.Tag.Position != 1 {
		t.Errorf("ID tag = %+v, want name Identifier at position 1", id.Tag)
	}

	email, _ := typ.Member("Email")
	if !reflect.DeepEqual(email.Tag.Groups, []string{"default", "admin"}) {
		t.Errorf("Email groups = %v", email.Tag.Groups)
	}

	notes, _ := typ.Member("Notes")
	if notes.Exported() || !notes.HasLegacyGroups {
		t.Errorf("Notes should only carry legacy groups, got %+v", notes)
	}

	address, _ := typ.Member("Address")
	if address.Target != reflect.TypeOf(taggedAddress{}) || address.ToMany {
		t.Errorf("Address target = %v, toMany = %v", address.Target, address.ToMany)
	}

	addresses, _ := typ.Member("Addresses")
	if !addresses.ToMany || addresses.Tag.Mode != export.ModeLines {
		t.Errorf("Addresses = %+v, want to-many lines relation", addresses)
	}

	created, _ := typ.Member("Created")
	if created.Target != nil {
		t.Errorf("time.Time should be scalar, got target %v", created.Target)
	}

	c := &taggedCustomer{ID: 7, Email: "a@example.com"}
	if got := id.Get(c); got != 7 {
		t.Errorf("ID accessor = %v, want 7", got)
	}
	if got := address.Get(c); got != nil {
		t.Errorf("nil Address accessor = %#v, want nil", got)
	}
}

func TestFromStruct_ConflictingModes(t *testing.T) {
	type conflicting struct {
		Roles []taggedAddress `export:"mode=lines|sheet"`
	}

	_, err := FromStruct[conflicting]("Conflicting")
	var valErr *export.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("FromStruct() error = %v, want ValidationError", err)
	}
}

func TestFromStruct_NotStruct(t *testing.T) {
	_, err := FromStruct[int]("Int")
	var cfgErr *export.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("FromStruct() error = %v, want ConfigurationError", err)
	}
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    export.Tag
		wantErr bool
	}{
		{name: "empty", raw: "", want: export.Tag{}},
		{name: "name", raw: "name=Email", want: export.Tag{Name: "Email"}},
		{name: "inline", raw: "mode=inline,fields=name", want: export.Tag{Mode: export.ModeInline, Fields: []string{"name"}}},
		{name: "bad position", raw: "position=first", wantErr: true},
		{name: "unknown key", raw: "colour=red", wantErr: true},
		{name: "malformed", raw: "name", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTag(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseTag() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
