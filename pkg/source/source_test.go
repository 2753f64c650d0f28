package source

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"sheetport-hq/sheetport/pkg/config"
	"sheetport-hq/sheetport/pkg/export"
	"sheetport-hq/sheetport/pkg/export/matrix"
	"sheetport-hq/sheetport/pkg/export/resolver"
	"sheetport-hq/sheetport/pkg/export/schema"
)

func TestRegister(t *testing.T) {
	reg := schema.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name       string
		exportable bool
	}{
		{TypeBoard, true},
		{TypeSwimlane, false},
		{TypeList, true},
		{TypeCard, true},
	}
	for _, tt := range tests {
		typ, err := reg.Lookup(tt.name)
		if err != nil {
			t.Fatalf("Lookup(%s) error = %v", tt.name, err)
		}
		if typ.IsExportable() != tt.exportable {
			t.Errorf("%s: expected exportable=%v", tt.name, tt.exportable)
		}
	}
}

func TestMemoryProvider_Load(t *testing.T) {
	p := NewMemoryProvider(DemoDataset())

	tests := []struct {
		typeName string
		want     int
	}{
		{TypeBoard, 2},
		{TypeSwimlane, 3},
		{TypeList, 4},
		{TypeCard, 4},
	}
	for _, tt := range tests {
		items, err := p.Load(context.Background(), tt.typeName)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", tt.typeName, err)
		}
		if len(items) != tt.want {
			t.Errorf("Load(%s): expected %d items, got %d", tt.typeName, tt.want, len(items))
		}
	}

	_, err := p.Load(context.Background(), "Nope")
	var cfgErr *export.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
}

func TestSQLiteProvider_SeedAndLoad(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverSQLite3} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			cfg := config.SourceConfig{
				Driver:       driver,
				Path:         filepath.Join(t.TempDir(), "data", "kanban.db"),
				Seed:         true,
				BusyTimeout:  time.Second,
				MaxOpenConns: 2,
			}

			p, err := OpenSQLite(ctx, cfg)
			if err != nil {
				t.Fatalf("OpenSQLite() error = %v", err)
			}
			if err := p.PingContext(ctx); err != nil {
				t.Errorf("PingContext() error = %v", err)
			}

			data, err := p.Dataset(ctx)
			if err != nil {
				t.Fatalf("Dataset() error = %v", err)
			}
			if len(data.Boards) != 2 {
				t.Fatalf("expected 2 boards, got %d", len(data.Boards))
			}
			roadmap := data.Boards[0]
			if roadmap.CardCount() != 3 {
				t.Errorf("expected 3 cards on %s, got %d", roadmap.Name, roadmap.CardCount())
			}
			if !roadmap.CreatedAt.Equal(DemoDataset().Boards[0].CreatedAt) {
				t.Errorf("created_at round trip: got %v", roadmap.CreatedAt)
			}

			cards, err := p.Load(ctx, TypeCard)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			first := cards[0].(*Card)
			if first.List == nil || first.List.Name != "Todo" {
				t.Errorf("expected first card linked to Todo, got %+v", first.List)
			}
			p.Close()

			// Reopening a populated database does not seed twice.
			p, err = OpenSQLite(ctx, cfg)
			if err != nil {
				t.Fatalf("reopen error = %v", err)
			}
			defer p.Close()
			items, err := p.Load(ctx, TypeBoard)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(items) != 2 {
				t.Errorf("expected 2 boards after reopen, got %d", len(items))
			}
		})
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	if _, err := New(context.Background(), config.SourceConfig{Driver: "postgres"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestCardExport(t *testing.T) {
	reg := schema.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatal(err)
	}
	items, _ := NewMemoryProvider(DemoDataset()).Load(context.Background(), TypeCard)
	cardType, _ := reg.Lookup(TypeCard)

	descs := resolver.New(reg).Resolve(cardType, export.Group("default"), items)
	header := matrix.BuildHeader(descs)

	want := []string{"id", "title", "description", "created_at", "list_name"}
	if len(header) != len(want) {
		t.Fatalf("expected header %v, got %v", want, header)
	}
	for i := range want {
		if header[i] != want[i] {
			t.Errorf("expected header %v, got %v", want, header)
			break
		}
	}

	m := matrix.Build(items, descs)
	if got := m.Main.Get(2, 5); got != "Todo" {
		t.Errorf("expected list name Todo, got %v", got)
	}
}
