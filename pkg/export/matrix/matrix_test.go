package matrix

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/resolver"
	"sheetport-hq/sheetport/pkg/export/schema"
)

type address struct {
	Street string
	City   string
}

type phone struct {
	Kind   string
	Number string
}

type contact struct {
	Name    string
	Address *address
	Phones  []*phone
	Tags    []string
}

func registry(t *testing.T, phoneMode export.ExpansionMode) (*schema.Registry, *schema.Type) {
	t.Helper()

	contactType := schema.NewType[*contact]("contact",
		schema.Property("name", func(c *contact) any { return c.Name }).Export(export.Tag{}),
		schema.One("address", func(c *contact) *address { return c.Address }).Export(export.Tag{}),
		schema.Many("phones", func(c *contact) []*phone { return c.Phones }).Export(export.Tag{Mode: phoneMode}),
	).Exportable()

	reg := schema.NewRegistry()
	reg.MustRegister(
		schema.NewType[*address]("address",
			schema.Property("street", func(a *address) any { return a.Street }).Export(export.Tag{}),
			schema.Property("city", func(a *address) any { return a.City }).Export(export.Tag{}),
		),
		schema.NewType[*phone]("phone",
			schema.Property("kind", func(p *phone) any { return p.Kind }).Export(export.Tag{}),
			schema.Property("number", func(p *phone) any { return p.Number }).Export(export.Tag{}),
		),
		contactType,
	)
	return reg, contactType
}

func contacts() []any {
	return []any{
		&contact{
			Name:    "Ada",
			Address: &address{Street: "1 Loop Rd", City: "London"},
			Phones: []*phone{
				{Kind: "home", Number: "111"},
				{Kind: "work", Number: "222"},
				{Kind: "cell", Number: "333"},
			},
		},
		&contact{
			Name:   "Alan",
			Phones: []*phone{{Kind: "home", Number: "444"}, {Kind: "work", Number: "555"}},
		},
	}
}

func build(t *testing.T, mode export.ExpansionMode, items []any) *Matrix {
	t.Helper()
	reg, ct := registry(t, mode)
	return Build(items, resolver.New(reg).Resolve(ct, nil, items))
}

func TestBuildHeader(t *testing.T) {
	tests := []struct {
		name string
		mode export.ExpansionMode
		want []string
	}{
		{
			name: "none",
			mode: export.ModeNone,
			want: []string{"name", "address_street", "address_city", "phones_kind", "phones_number"},
		},
		{
			name: "lines",
			mode: export.ModeLines,
			want: []string{"name", "address_street", "address_city", "phones_kind", "phones_number"},
		},
		{
			name: "sheet relation is skipped",
			mode: export.ModeSheet,
			want: []string{"name", "address_street", "address_city"},
		},
		{
			name: "inline relation takes one column",
			mode: export.ModeInline,
			want: []string{"name", "address_street", "address_city", "phones"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, ct := registry(t, tt.mode)
			got := BuildHeader(resolver.New(reg).Resolve(ct, nil, nil))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildHeader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuild_LinesExpansion(t *testing.T) {
	m := build(t, export.ModeLines, contacts())

	want := [][]any{
		{"name", "address_street", "address_city", "phones_kind", "phones_number"},
		{"Ada", "1 Loop Rd", "London", "home", "111"},
		{"Ada", "1 Loop Rd", "London", "work", "222"},
		{"Ada", "1 Loop Rd", "London", "cell", "333"},
		{"Alan", "", "", "home", "444"},
		{"Alan", "", "", "work", "555"},
	}
	if got := m.Main.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %v, want %v", got, want)
	}
	if got := m.Main.DataRows(); got != 5 {
		t.Errorf("DataRows() = %d, want 5", got)
	}
	if len(m.Aux) != 0 {
		t.Errorf("len(Aux) = %d, want 0", len(m.Aux))
	}
}

func TestBuild_LinesEmptyRelationKeepsOneRow(t *testing.T) {
	m := build(t, export.ModeLines, []any{&contact{Name: "Grace"}})

	want := [][]any{
		{"name", "address_street", "address_city", "phones_kind", "phones_number"},
		{"Grace", "", "", "", ""},
	}
	if got := m.Main.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() = %v, want %v", got, want)
	}
}

func TestBuild_SheetExpansion(t *testing.T) {
	items := contacts()
	items[0].(*contact).Phones = items[0].(*contact).Phones[:2]
	m := build(t, export.ModeSheet, items)

	if got := m.Main.DataRows(); got != 2 {
		t.Errorf("main DataRows() = %d, want 2", got)
	}
	if len(m.Aux) != 1 {
		t.Fatalf("len(Aux) = %d, want 1", len(m.Aux))
	}

	aux := m.Aux[0]
	if aux.Name != "phones" {
		t.Errorf("aux Name = %q, want %q", aux.Name, "phones")
	}
	if got, want := aux.Column(1), []any{"row", 1, 1, 2, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("aux column 1 = %v, want %v", got, want)
	}

	want := [][]any{
		{"row", "kind", "number"},
		{1, "home", "111"},
		{1, "work", "222"},
		{2, "home", "444"},
		{2, "work", "555"},
	}
	if got := aux.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("aux Rows() = %v, want %v", got, want)
	}
}

func TestBuild_SheetWithoutSubFields(t *testing.T) {
	reg := schema.NewRegistry()
	ct := schema.NewType[*contact]("contact",
		schema.Property("name", func(c *contact) any { return c.Name }).Export(export.Tag{}),
		schema.Property("tags", func(c *contact) any { return c.Tags }).Export(export.Tag{Mode: export.ModeSheet}),
	).Exportable()
	reg.MustRegister(ct)

	items := []any{&contact{Name: "a", Tags: []string{"x", "y"}}, &contact{Name: "b"}}
	m := Build(items, resolver.New(reg).Resolve(ct, nil, items))

	want := [][]any{{"row", "value"}, {1, "x"}, {1, "y"}}
	if got := m.Aux[0].Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("aux Rows() = %v, want %v", got, want)
	}
}

func TestBuild_SheetsSharingNameAreMerged(t *testing.T) {
	reg, _ := registry(t, export.ModeNone)
	ct := schema.NewType[*contact]("contact",
		schema.Property("name", func(c *contact) any { return c.Name }).Export(export.Tag{}),
		schema.Many("phones", func(c *contact) []*phone { return c.Phones }).
			Export(export.Tag{Name: "details", Mode: export.ModeSheet, Fields: []string{"number"}}),
		schema.One("address", func(c *contact) *address { return c.Address }).
			Export(export.Tag{Name: "details", Mode: export.ModeSheet, Fields: []string{"city", "number"}}),
	)

	items := contacts()
	items[0].(*contact).Phones = items[0].(*contact).Phones[:1]
	items[1].(*contact).Phones = nil
	m := Build(items, resolver.New(reg).Resolve(ct, nil, items))

	if len(m.Aux) != 1 {
		t.Fatalf("len(Aux) = %d, want 1", len(m.Aux))
	}
	want := [][]any{
		{"row", "number", "city"},
		{1, "111", ""},
		{1, "", "London"},
	}
	if got := m.Aux[0].Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("aux Rows() = %v, want %v", got, want)
	}
}

func TestBuild_InlineExpansion(t *testing.T) {
	m := build(t, export.ModeInline, contacts())

	if got, want := m.Main.Get(2, 4), "home 111\nwork 222\ncell 333"; got != want {
		t.Errorf("inline cell = %q, want %q", got, want)
	}
	if got, want := m.Main.Get(3, 4), "home 444\nwork 555"; got != want {
		t.Errorf("inline cell = %q, want %q", got, want)
	}
}

func TestBuild_NoneModeCollectionJoinsSubFields(t *testing.T) {
	m := build(t, export.ModeNone, contacts())

	if got, want := m.Main.Get(3, 4), "home\nwork"; got != want {
		t.Errorf("phones_kind = %q, want %q", got, want)
	}
	if got, want := m.Main.Get(3, 5), "444\n555"; got != want {
		t.Errorf("phones_number = %q, want %q", got, want)
	}
}

func TestBuild_NoItems(t *testing.T) {
	m := build(t, export.ModeSheet, nil)

	if got := m.Main.DataRows(); got != 0 {
		t.Errorf("DataRows() = %d, want 0", got)
	}
	if got, want := m.Aux[0].Rows(), [][]any{{"row", "kind", "number"}}; !reflect.DeepEqual(got, want) {
		t.Errorf("aux Rows() = %v, want %v", got, want)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	items := contacts()
	first := build(t, export.ModeLines, items)
	second := build(t, export.ModeLines, items)

	if !reflect.DeepEqual(first.Main.Assignments(), second.Main.Assignments()) {
		t.Error("Build() produced different assignments for the same input")
	}
}

func TestSheet_Assignments(t *testing.T) {
	s := NewSheet("s")
	s.Set(2, 1, "b")
	s.Set(1, 2, "a2")
	s.Set(1, 1, "a1")
	s.Set(0, 1, "ignored")

	want := []Cell{
		{Row: 1, Col: 1, Value: "a1"},
		{Row: 1, Col: 2, Value: "a2"},
		{Row: 2, Col: 1, Value: "b"},
	}
	if got := s.Assignments(); !reflect.DeepEqual(got, want) {
		t.Errorf("Assignments() = %v, want %v", got, want)
	}
	if rows, cols := s.Dimensions(); rows != 2 || cols != 2 {
		t.Errorf("Dimensions() = (%d, %d), want (2, 2)", rows, cols)
	}
}

type level int

func (l level) String() string { return [...]string{"low", "high"}[l] }

type count uint16

func TestNormalize(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	var nilTime *time.Time
	var nilErr error

	tests := []struct {
		name string
		in   any
		want any
	}{
		{name: "nil", in: nil, want: ""},
		{name: "nil interface", in: nilErr, want: ""},
		{name: "string", in: "x", want: "x"},
		{name: "int", in: 42, want: 42},
		{name: "float", in: 1.5, want: 1.5},
		{name: "bool", in: true, want: true},
		{name: "bytes", in: []byte("raw"), want: "raw"},
		{name: "time", in: ts, want: "2024-03-01T12:30:00Z"},
		{name: "time pointer", in: &ts, want: "2024-03-01T12:30:00Z"},
		{name: "nil time pointer", in: nilTime, want: ""},
		{name: "zero time", in: time.Time{}, want: ""},
		{name: "stringer", in: level(1), want: "high"},
		{name: "named unsigned", in: count(7), want: uint64(7)},
		{name: "error", in: errors.New("boom"), want: "boom"},
		{name: "slice", in: []int{1, 2}, want: "[1 2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
