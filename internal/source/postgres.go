package source

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/poimap/internal/model"
)

// Pool is the subset of pgxpool.Pool the source uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
	Close()
}

// Postgres fetches the POI table from PostgreSQL. The pool handle is created
// on first use and cached; any fetch error discards it so the next cycle
// dials fresh instead of retrying a broken handle.
type Postgres struct {
	cfg Config

	mu   sync.Mutex
	pool Pool
}

// NewPostgres validates credentials and returns a lazy-connecting source.
func NewPostgres(cfg Config) (*Postgres, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Postgres{cfg: cfg}, nil
}

// dsn builds the connection string. Schema maps to search_path; Warehouse has
// no PostgreSQL equivalent and is accepted as a required-but-inert setting.
func (p *Postgres) dsn() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?search_path=%s",
		url.QueryEscape(p.cfg.User),
		url.QueryEscape(p.cfg.Password),
		p.cfg.Account,
		p.cfg.Database,
		url.QueryEscape(p.cfg.Schema),
	)
}

func (p *Postgres) acquire(ctx context.Context) (Pool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		return p.pool, nil
	}

	pgxCfg, err := pgxpool.ParseConfig(p.dsn())
	if err != nil {
		return nil, eris.Wrap(err, "source: parse postgres config")
	}
	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "source: create postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "source: ping postgres")
	}

	p.pool = pool
	return pool, nil
}

// discard drops the cached handle after a failure.
func (p *Postgres) discard(pool Pool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool == pool {
		p.pool.Close()
		p.pool = nil
	}
}

// Fetch runs the fixed query and returns all rows in query order.
func (p *Postgres) Fetch(ctx context.Context) (model.PoiDataset, error) {
	pool, err := p.acquire(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.cfg.QueryTimeout())
	defer cancel()

	rows, err := pool.Query(ctx, Query)
	if err != nil {
		p.discard(pool)
		return nil, eris.Wrap(err, "source: query poi table")
	}
	defer rows.Close()

	descs := rows.FieldDescriptions()
	cols := make([]string, len(descs))
	for i, d := range descs {
		cols[i] = d.Name
	}

	var ds model.PoiDataset
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			p.discard(pool)
			return nil, eris.Wrap(err, "source: read row values")
		}
		ds = append(ds, recordFromRow(cols, vals))
	}
	if err := rows.Err(); err != nil {
		p.discard(pool)
		return nil, eris.Wrap(err, "source: iterate rows")
	}

	zap.L().Debug("source: fetched poi table", zap.Int("rows", len(ds)))
	return ds, nil
}

// Ping verifies connectivity without running the query.
func (p *Postgres) Ping(ctx context.Context) error {
	pool, err := p.acquire(ctx)
	if err != nil {
		return err
	}
	if err := pool.Ping(ctx); err != nil {
		p.discard(pool)
		return eris.Wrap(err, "source: ping postgres")
	}
	return nil
}

// Close releases the cached pool, if any.
func (p *Postgres) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pool != nil {
		p.pool.Close()
		p.pool = nil
	}
}
