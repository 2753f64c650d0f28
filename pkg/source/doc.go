// Package source materializes the kanban dataset that the CLI and the HTTP
// trigger export.
//
// The dataset is a board hierarchy: boards hold swimlanes, swimlanes hold
// lists and lists hold cards. Register adds the exportable types to a
// schema registry; a Provider loads fully linked object graphs by type name.
//
// Two providers are available. SQLiteProvider reads the dataset from a
// sqlite database through either the cgo driver (mattn/go-sqlite3,
// "sqlite3") or the pure Go driver (modernc.org/sqlite, "sqlite").
// MemoryProvider serves the built-in demo data.
//
//	provider, err := source.New(ctx, cfg.Source)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	items, err := provider.Load(ctx, "Card")
package source
