package source

import (
	"context"
	"fmt"

	"sheetport-hq/sheetport/pkg/config"
	"sheetport-hq/sheetport/pkg/export"
)

// Provider loads export items by registered type name.
type Provider interface {
	// Load returns every object of the named type with its relations
	// populated.
	Load(ctx context.Context, typeName string) ([]any, error)

	// Close releases the provider's resources.
	Close() error
}

// New creates the provider selected by cfg.Driver.
func New(ctx context.Context, cfg config.SourceConfig) (Provider, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemoryProvider(DemoDataset()), nil
	case DriverSQLite, DriverSQLite3:
		return OpenSQLite(ctx, cfg)
	}
	return nil, fmt.Errorf("unknown source driver %q", cfg.Driver)
}

func unknownType(typeName string) error {
	return export.NewConfigurationError(typeName, "no data source for type")
}
