package source

import (
	"strings"
	"testing"
	"time"
)

func TestConfigValidate_MissingCredentials(t *testing.T) {
	cfg := Config{Driver: "postgres", User: "u", Database: "d"}
	err := cfg.validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"password", "account", "warehouse", "schema"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error, got: %v", want, err)
		}
	}
}

func TestConfigValidate_Complete(t *testing.T) {
	cfg := Config{
		Driver: "postgres", User: "u", Password: "p", Account: "db.example.com:5432",
		Warehouse: "wh", Database: "poi", Schema: "public",
	}
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfigValidate_SQLiteOnlyNeedsPath(t *testing.T) {
	cfg := Config{Driver: "sqlite", Database: "poi.db"}
	if err := cfg.validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Config{Driver: "sqlite"}).validate(); err == nil {
		t.Fatal("expected error without a database path")
	}
}

func TestConfigQueryTimeout(t *testing.T) {
	if got := (Config{}).QueryTimeout(); got != DefaultQueryTimeout {
		t.Errorf("expected default timeout, got %v", got)
	}
	if got := (Config{QueryTimeoutSecs: 5}).QueryTimeout(); got != 5*time.Second {
		t.Errorf("expected 5s, got %v", got)
	}
}

func TestRecordFromRow(t *testing.T) {
	cols := []string{"poi_name", "CATEGORY_MAIN", "CITY", "STATE", "LATITUDE", "LONGITUDE", "PHONE"}
	vals := []any{"Zilker Park", "Park", "Austin", "TX", 30.267, "-97.773", "512-555-0100"}

	rec := recordFromRow(cols, vals)
	if rec.Name != "Zilker Park" || rec.Category != "Park" || rec.City != "Austin" || rec.State != "TX" {
		t.Errorf("unexpected record: %+v", rec)
	}
	if rec.RawLatitude != "30.267" {
		t.Errorf("expected float column rendered as text, got %q", rec.RawLatitude)
	}
	if rec.RawLongitude != "-97.773" {
		t.Errorf("expected raw longitude preserved, got %q", rec.RawLongitude)
	}
	if rec.Extra["PHONE"] != "512-555-0100" {
		t.Errorf("expected passthrough column, got %v", rec.Extra)
	}
}

func TestRecordFromRow_NullsAreMissing(t *testing.T) {
	cols := []string{"POI_NAME", "CATEGORY_MAIN", "LATITUDE", "LONGITUDE"}
	vals := []any{"x", nil, nil, []byte("12.5")}

	rec := recordFromRow(cols, vals)
	if rec.Category != "" {
		t.Errorf("expected NULL category to be missing, got %q", rec.Category)
	}
	if rec.RawLatitude != "" {
		t.Errorf("expected NULL latitude to be missing, got %q", rec.RawLatitude)
	}
	if rec.RawLongitude != "12.5" {
		t.Errorf("expected byte column decoded, got %q", rec.RawLongitude)
	}
}
