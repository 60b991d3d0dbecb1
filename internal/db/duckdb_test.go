package db

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpenAppliesSchema(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	// idempotent
	if err := Migrate(ctx, conn); err != nil {
		t.Fatal(err)
	}
	tables, err := Tables(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}
	if len(tables) != 1 || tables[0] != "snapshots" {
		t.Fatalf("tables=%v, want [snapshots]", tables)
	}
}

func TestConfigPath(t *testing.T) {
	cfg := Config{DataDir: ".data", DBName: "road"}
	if got, want := cfg.Path(), filepath.Join(".data", "duckdb", "road.duckdb"); got != want {
		t.Fatalf("path=%q, want %q", got, want)
	}
}
