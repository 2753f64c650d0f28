package export

import (
	"fmt"
	"strings"
)

// Format is an output format token.
type Format string

const (
	// FormatXLSX writes every sheet into a single workbook.
	FormatXLSX Format = "xlsx"
	// FormatCSV writes one file per sheet.
	FormatCSV Format = "csv"
)

// SupportedFormats lists the formats accepted by ParseFormat.
var SupportedFormats = []Format{FormatXLSX, FormatCSV}

// ParseFormat validates a format token.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, supported := range SupportedFormats {
		if f == supported {
			return f, nil
		}
	}
	return "", NewUnsupportedFormatError(s)
}

// Extension returns the file extension for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// ExpansionMode is the flattening policy for a to-many relation.
type ExpansionMode string

const (
	// ModeNone exports the raw value as-is.
	ModeNone ExpansionMode = ""
	// ModeLines emits one output row per related element.
	ModeLines ExpansionMode = "lines"
	// ModeSheet routes related elements to a dedicated auxiliary sheet.
	ModeSheet ExpansionMode = "sheet"
	// ModeInline joins related elements with a newline in a single cell.
	ModeInline ExpansionMode = "inline"
)

// ParseExpansionMode parses a mode token. Several tokens may be given
// separated by '|' or ','; combining lines with sheet is rejected.
func ParseExpansionMode(s string) (ExpansionMode, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return ModeNone, nil
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' })
	mode := ModeNone
	for _, tok := range tokens {
		var m ExpansionMode
		switch strings.TrimSpace(tok) {
		case "", "none":
			continue
		case "lines":
			m = ModeLines
		case "sheet":
			m = ModeSheet
		case "inline":
			m = ModeInline
		default:
			return ModeNone, NewValidationError("mode", fmt.Sprintf("unknown expansion mode %q", tok))
		}
		if mode != ModeNone && mode != m {
			return ModeNone, NewValidationError("mode",
				fmt.Sprintf("expansion modes %q and %q are mutually exclusive", mode, m))
		}
		mode = m
	}
	return mode, nil
}

// Expands reports whether the mode consumes an iterable value.
func (m ExpansionMode) Expands() bool {
	return m != ModeNone
}

// Tag is the per-member export metadata.
type Tag struct {
	// Name overrides the member name in headers and sheet names.
	Name string

	// Groups restricts the member to exports requesting one of these groups.
	// An empty list means the member belongs to every group.
	Groups []string

	// Position orders the member; members without a position sort last.
	Position *int

	// Mode is the relation expansion mode.
	Mode ExpansionMode

	// Fields lists the sub-fields to extract from a related value.
	// When empty, sub-fields are discovered from the relation's target type.
	Fields []string
}

// InGroup reports whether the tag matches the requested group.
// A nil group matches every tag.
func (t Tag) InGroup(group *string) bool {
	return MatchGroup(t.Groups, group)
}

// MatchGroup reports whether a member tagged with groups is selected by
// the requested group. A nil group or an empty tag list always matches.
func MatchGroup(groups []string, group *string) bool {
	if group == nil || len(groups) == 0 {
		return true
	}
	for _, g := range groups {
		if g == *group {
			return true
		}
	}
	return false
}

// At returns a pointer to n, for Tag.Position literals.
func At(n int) *int {
	return &n
}

// Group returns a pointer to name, or nil when name is empty.
func Group(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}
