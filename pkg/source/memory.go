package source

import (
	"context"
	"time"
)

// MemoryProvider serves a fixed dataset.
type MemoryProvider struct {
	data *Dataset
}

// NewMemoryProvider links data and serves it.
func NewMemoryProvider(data *Dataset) *MemoryProvider {
	data.Link()
	return &MemoryProvider{data: data}
}

// Load returns the items of the named type.
func (p *MemoryProvider) Load(ctx context.Context, typeName string) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items, ok := p.data.Items(typeName)
	if !ok {
		return nil, unknownType(typeName)
	}
	return items, nil
}

// Close is a no-op.
func (p *MemoryProvider) Close() error {
	return nil
}

// DemoDataset returns a small kanban board set used by the memory provider
// and to seed empty databases.
func DemoDataset() *Dataset {
	created := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	card := func(id int64, title, desc string, pos int) *Card {
		return &Card{
			ID:          id,
			Title:       title,
			Description: desc,
			Position:    pos,
			CreatedAt:   created.Add(time.Duration(id) * time.Hour),
		}
	}

	d := &Dataset{Boards: []*Board{
		{
			ID: 1, Name: "Roadmap", Description: "Product roadmap", CreatedAt: created,
			Swimlanes: []*Swimlane{
				{ID: 1, Name: "Platform", Position: 0, Lists: []*List{
					{ID: 1, Name: "Todo", Position: 0, Cards: []*Card{
						card(1, "Export to xlsx", "Workbook output", 0),
						card(2, "Export to csv", "Zip when several sheets", 1),
					}},
					{ID: 2, Name: "Done", Position: 1, Cards: []*Card{
						card(3, "Registry", "Exportable types", 0),
					}},
				}},
				{ID: 2, Name: "Ops", Position: 1, Lists: []*List{
					{ID: 3, Name: "Backlog", Position: 0},
				}},
			},
		},
		{
			ID: 2, Name: "Support", Description: "Customer requests", CreatedAt: created.AddDate(0, 1, 0),
			Swimlanes: []*Swimlane{
				{ID: 3, Name: "Default", Position: 0, Lists: []*List{
					{ID: 4, Name: "Inbox", Position: 0, Cards: []*Card{
						card(4, "Download link expired", "", 0),
					}},
				}},
			},
		},
	}}
	d.Link()
	return d
}
