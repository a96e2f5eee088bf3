package source

import (
	"context"
	"database/sql"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/poimap/internal/model"
)

// SQLite fetches the POI table from a local SQLite file. Used for local
// development and tests; warehouse and schema settings are no-ops here.
type SQLite struct {
	cfg Config

	mu sync.Mutex
	db *sql.DB
}

// NewSQLite validates the configuration and returns a lazy-opening source.
// cfg.Database is the database file path.
func NewSQLite(cfg Config) (*SQLite, error) {
	cfg.Driver = "sqlite"
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &SQLite{cfg: cfg}, nil
}

func (s *SQLite) acquire(ctx context.Context) (*sql.DB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		return s.db, nil
	}

	db, err := sql.Open("sqlite", s.cfg.Database)
	if err != nil {
		return nil, eris.Wrap(err, "source: open sqlite")
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "source: ping sqlite")
	}

	s.db = db
	return db, nil
}

func (s *SQLite) discard(db *sql.DB) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == db {
		_ = s.db.Close()
		s.db = nil
	}
}

// Fetch runs the fixed query and returns all rows in query order.
func (s *SQLite) Fetch(ctx context.Context) (model.PoiDataset, error) {
	db, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.QueryTimeout())
	defer cancel()

	rows, err := db.QueryContext(ctx, Query)
	if err != nil {
		s.discard(db)
		return nil, eris.Wrap(err, "source: query poi table")
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		s.discard(db)
		return nil, eris.Wrap(err, "source: read columns")
	}

	var ds model.PoiDataset
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			s.discard(db)
			return nil, eris.Wrap(err, "source: scan row")
		}
		ds = append(ds, recordFromRow(cols, vals))
	}
	if err := rows.Err(); err != nil {
		s.discard(db)
		return nil, eris.Wrap(err, "source: iterate rows")
	}

	zap.L().Debug("source: fetched poi table", zap.Int("rows", len(ds)))
	return ds, nil
}

// Ping verifies the database file is readable.
func (s *SQLite) Ping(ctx context.Context) error {
	db, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		s.discard(db)
		return eris.Wrap(err, "source: ping sqlite")
	}
	return nil
}

// Close releases the cached handle, if any.
func (s *SQLite) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db != nil {
		_ = s.db.Close()
		s.db = nil
	}
}
