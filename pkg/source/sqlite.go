package source

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"sheetport-hq/sheetport/pkg/config"
)

// Driver names registered by the sqlite packages.
const (
	DriverSQLite  = "sqlite"  // modernc.org/sqlite
	DriverSQLite3 = "sqlite3" // github.com/mattn/go-sqlite3
)

// SQLiteProvider loads the dataset from a sqlite database.
type SQLiteProvider struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

// OpenSQLite opens the database at cfg.Path with cfg.Driver, creates the
// schema and, when cfg.Seed is set and the database is empty, inserts the
// demo dataset.
func OpenSQLite(ctx context.Context, cfg config.SourceConfig) (*SQLiteProvider, error) {
	logger := slog.Default().With("component", "source.sqlite")

	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open(cfg.Driver, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	// Every connection to :memory: is a separate database.
	if cfg.Path == ":memory:" || cfg.MaxOpenConns <= 0 {
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	p := &SQLiteProvider{db: db, driver: cfg.Driver, logger: logger}
	if err := p.initialize(ctx, cfg.BusyTimeout); err != nil {
		db.Close()
		return nil, err
	}

	if cfg.Seed {
		seeded, err := p.seed(ctx, DemoDataset())
		if err != nil {
			db.Close()
			return nil, err
		}
		if seeded {
			logger.Info("seeded empty database with demo data", "path", cfg.Path)
		}
	}

	logger.Info("sqlite source opened",
		"driver", cfg.Driver,
		"path", cfg.Path,
	)
	return p, nil
}

func (p *SQLiteProvider) initialize(ctx context.Context, busyTimeout time.Duration) error {
	if _, err := p.db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout=%d;", busyTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := p.db.ExecContext(ctx, "PRAGMA foreign_keys=ON;"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Driver returns the database/sql driver name in use.
func (p *SQLiteProvider) Driver() string {
	return p.driver
}

// PingContext checks the database connection.
func (p *SQLiteProvider) PingContext(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

// Load reads the whole dataset and returns the items of the named type.
func (p *SQLiteProvider) Load(ctx context.Context, typeName string) ([]any, error) {
	if _, ok := (&Dataset{}).Items(typeName); !ok {
		return nil, unknownType(typeName)
	}

	data, err := p.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	items, _ := data.Items(typeName)
	p.logger.Debug("loaded items", "type", typeName, "count", len(items))
	return items, nil
}

// Dataset reads every board with its swimlanes, lists and cards.
func (p *SQLiteProvider) Dataset(ctx context.Context) (*Dataset, error) {
	data := &Dataset{}
	boards := map[int64]*Board{}
	swimlanes := map[int64]*Swimlane{}
	lists := map[int64]*List{}

	err := p.query(ctx, `SELECT id, name, description, created_at FROM boards ORDER BY id`,
		func(rows *sql.Rows) error {
			b := &Board{}
			var created string
			if err := rows.Scan(&b.ID, &b.Name, &b.Description, &created); err != nil {
				return err
			}
			b.CreatedAt = parseTime(created)
			boards[b.ID] = b
			data.Boards = append(data.Boards, b)
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = p.query(ctx, `SELECT id, board_id, name, position FROM swimlanes ORDER BY board_id, position, id`,
		func(rows *sql.Rows) error {
			s := &Swimlane{}
			if err := rows.Scan(&s.ID, &s.BoardID, &s.Name, &s.Position); err != nil {
				return err
			}
			if b, ok := boards[s.BoardID]; ok {
				b.Swimlanes = append(b.Swimlanes, s)
				swimlanes[s.ID] = s
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = p.query(ctx, `SELECT id, swimlane_id, name, position FROM lists ORDER BY swimlane_id, position, id`,
		func(rows *sql.Rows) error {
			l := &List{}
			if err := rows.Scan(&l.ID, &l.SwimlaneID, &l.Name, &l.Position); err != nil {
				return err
			}
			if s, ok := swimlanes[l.SwimlaneID]; ok {
				s.Lists = append(s.Lists, l)
				lists[l.ID] = l
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	err = p.query(ctx, `SELECT id, list_id, title, description, position, created_at, attachment
		FROM cards ORDER BY list_id, position, id`,
		func(rows *sql.Rows) error {
			c := &Card{}
			var created string
			if err := rows.Scan(&c.ID, &c.ListID, &c.Title, &c.Description, &c.Position, &created, &c.Attachment); err != nil {
				return err
			}
			c.CreatedAt = parseTime(created)
			if l, ok := lists[c.ListID]; ok {
				l.Cards = append(l.Cards, c)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	data.Link()
	return data, nil
}

func (p *SQLiteProvider) query(ctx context.Context, q string, scan func(*sql.Rows) error) error {
	rows, err := p.db.QueryContext(ctx, q)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
	}
	return rows.Err()
}

// seed inserts data when the database holds no boards.
func (p *SQLiteProvider) seed(ctx context.Context, data *Dataset) (bool, error) {
	var count int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM boards`).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count boards: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	return true, p.Insert(ctx, data)
}

// Insert writes data in a single transaction, keeping its IDs.
func (p *SQLiteProvider) Insert(ctx context.Context, data *Dataset) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, b := range data.Boards {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO boards (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
			b.ID, b.Name, b.Description, formatTime(b.CreatedAt)); err != nil {
			return fmt.Errorf("failed to insert board %d: %w", b.ID, err)
		}
		for _, s := range b.Swimlanes {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO swimlanes (id, board_id, name, position) VALUES (?, ?, ?, ?)`,
				s.ID, b.ID, s.Name, s.Position); err != nil {
				return fmt.Errorf("failed to insert swimlane %d: %w", s.ID, err)
			}
			for _, l := range s.Lists {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO lists (id, swimlane_id, name, position) VALUES (?, ?, ?, ?)`,
					l.ID, s.ID, l.Name, l.Position); err != nil {
					return fmt.Errorf("failed to insert list %d: %w", l.ID, err)
				}
				for _, c := range l.Cards {
					if _, err := tx.ExecContext(ctx,
						`INSERT INTO cards (id, list_id, title, description, position, created_at, attachment)
						VALUES (?, ?, ?, ?, ?, ?, ?)`,
						c.ID, l.ID, c.Title, c.Description, c.Position, formatTime(c.CreatedAt), c.Attachment); err != nil {
						return fmt.Errorf("failed to insert card %d: %w", c.ID, err)
					}
				}
			}
		}
	}
	return tx.Commit()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
