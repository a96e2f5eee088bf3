// Package source fetches the POI table from a relational backend. Exactly one
// query is ever issued; the connection handle is cached across fetches and
// re-acquired after any failure rather than retried.
package source

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/poimap/internal/model"
)

// Query is the single fixed statement the dashboard runs. No parameters,
// no pagination; every interaction cycle sees the full table.
const Query = `SELECT * FROM POI_ADDRESS_US`

// DefaultQueryTimeout bounds a single fetch when the config does not.
const DefaultQueryTimeout = 30 * time.Second

// Source is the data access contract. Fetch returns the full table as one
// ordered dataset; result sets are never cached, only the connection is.
type Source interface {
	Fetch(ctx context.Context) (model.PoiDataset, error)
	Ping(ctx context.Context) error
	Close()
}

// Config holds source credentials and tuning. All credential fields are
// required for warehouse-style backends; Warehouse and Schema are session
// settings there and no-ops for file-backed sqlite.
type Config struct {
	Driver           string `yaml:"driver" mapstructure:"driver"`
	User             string `yaml:"user" mapstructure:"user"`
	Password         string `yaml:"password" mapstructure:"password"`
	Account          string `yaml:"account" mapstructure:"account"`
	Warehouse        string `yaml:"warehouse" mapstructure:"warehouse"`
	Database         string `yaml:"database" mapstructure:"database"`
	Schema           string `yaml:"schema" mapstructure:"schema"`
	QueryTimeoutSecs int    `yaml:"query_timeout_secs" mapstructure:"query_timeout_secs"`
}

// QueryTimeout returns the configured per-fetch timeout.
func (c Config) QueryTimeout() time.Duration {
	if c.QueryTimeoutSecs <= 0 {
		return DefaultQueryTimeout
	}
	return time.Duration(c.QueryTimeoutSecs) * time.Second
}

// validate fails before any query executes when a required credential is
// absent. sqlite only needs the database path.
func (c Config) validate() error {
	if c.Driver == "sqlite" {
		if c.Database == "" {
			return eris.New("source: database path is required")
		}
		return nil
	}
	missing := make([]string, 0, 6)
	for _, f := range []struct{ name, val string }{
		{"user", c.User},
		{"password", c.Password},
		{"account", c.Account},
		{"warehouse", c.Warehouse},
		{"database", c.Database},
		{"schema", c.Schema},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("source: missing required credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// New returns a Source for the configured driver.
func New(cfg Config) (Source, error) {
	switch cfg.Driver {
	case "", "postgres":
		return NewPostgres(cfg)
	case "sqlite":
		return NewSQLite(cfg)
	default:
		return nil, eris.Errorf("source: unsupported driver: %s", cfg.Driver)
	}
}

// recordFromRow maps one scanned row onto a PoiRecord. Column matching is
// case-insensitive on the upper-cased name; unrecognized columns become
// passthrough Extra entries.
func recordFromRow(cols []string, vals []any) model.PoiRecord {
	var rec model.PoiRecord
	for i, col := range cols {
		if i >= len(vals) {
			break
		}
		v := asString(vals[i])
		switch strings.ToUpper(col) {
		case model.ColName:
			rec.Name = v
		case model.ColCategory:
			rec.Category = v
		case model.ColCity:
			rec.City = v
		case model.ColState:
			rec.State = v
		case model.ColLatitude:
			rec.RawLatitude = v
		case model.ColLongitude:
			rec.RawLongitude = v
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[strings.ToUpper(col)] = v
		}
	}
	return rec
}

// asString renders a scanned cell as text. NULL becomes the empty string,
// which downstream stages treat as missing.
func asString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case driver.Valuer:
		dv, err := t.Value()
		if err != nil {
			return ""
		}
		return asString(dv)
	default:
		return fmt.Sprint(t)
	}
}
