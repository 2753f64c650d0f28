package source

import (
	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/schema"
)

// Registered type names.
const (
	TypeBoard    = "Board"
	TypeSwimlane = "Swimlane"
	TypeList     = "List"
	TypeCard     = "Card"
)

// Types returns the kanban types. Board, List and Card are exportable;
// Swimlane only appears as a relation target.
func Types() ([]*schema.Type, error) {
	card, err := schema.FromStruct[*Card](TypeCard)
	if err != nil {
		return nil, err
	}

	board := schema.NewType[*Board](TypeBoard,
		schema.Property("id", func(b *Board) any { return b.ID }).
			Export(export.Tag{Position: export.At(0)}),
		schema.Property("name", func(b *Board) any { return b.Name }).
			Export(export.Tag{Groups: []string{"default", "summary"}}),
		schema.Property("description", func(b *Board) any { return b.Description }).
			Export(export.Tag{Groups: []string{"default"}}),
		schema.Property("created_at", func(b *Board) any { return b.CreatedAt }).
			Export(export.Tag{Groups: []string{"default"}}),
		schema.Method("card_count", func(b *Board) any { return b.CardCount() }).
			Export(export.Tag{Name: "cards", Groups: []string{"summary"}}),
		schema.Many("swimlanes", func(b *Board) []*Swimlane { return b.Swimlanes }).
			Export(export.Tag{Mode: export.ModeSheet, Groups: []string{"default"}}),
		schema.Many("lists", func(b *Board) []*List { return b.Lists() }).
			Export(export.Tag{Mode: export.ModeInline, Fields: []string{"name"}, Groups: []string{"summary"}}),
	).Exportable()

	swimlane := schema.NewType[*Swimlane](TypeSwimlane,
		schema.Property("name", func(s *Swimlane) any { return s.Name }).Export(export.Tag{}),
		schema.Property("position", func(s *Swimlane) any { return s.Position }).Export(export.Tag{}),
	)

	list := schema.NewType[*List](TypeList,
		schema.Property("id", func(l *List) any { return l.ID }).
			Export(export.Tag{Position: export.At(0)}),
		schema.Property("name", func(l *List) any { return l.Name }).
			Export(export.Tag{Groups: []string{"default", "compact"}}),
		schema.Property("position", func(l *List) any { return l.Position }).
			Groups("full"),
		schema.One("swimlane", func(l *List) *Swimlane { return l.Swimlane }).
			Export(export.Tag{Fields: []string{"name"}, Groups: []string{"default"}}),
		schema.Many("cards", func(l *List) []*Card { return l.Cards }).
			Export(export.Tag{Mode: export.ModeLines, Fields: []string{"title", "position"}, Groups: []string{"default"}}),
		schema.Many("card_titles", func(l *List) []*Card { return l.Cards }).
			Export(export.Tag{Name: "cards", Mode: export.ModeInline, Fields: []string{"title"}, Groups: []string{"compact"}}),
	).Exportable()

	return []*schema.Type{board, swimlane, list, card.Exportable()}, nil
}

// Register adds the kanban types to registry.
func Register(registry *schema.Registry) error {
	types, err := Types()
	if err != nil {
		return err
	}
	return registry.Register(types...)
}
