// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the db itself; no expectations means every query fails

	err = Migrate(db, SchemaState)
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, SchemaItems)
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnknownSchema(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	err = Migrate(db, Schema("users"))
	if err == nil {
		t.Fatal("expected error for unknown schema, got nil")
	}

	if !strings.Contains(err.Error(), "unknown schema") {
		t.Errorf("expected unknown schema error, got: %v", err)
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, schema := range []Schema{SchemaItems, SchemaState} {
		entries, err := embedMigrations.ReadDir(string(schema))
		if err != nil {
			t.Fatalf("read %s migrations: %v", schema, err)
		}
		if len(entries) == 0 {
			t.Errorf("no migrations embedded for %s", schema)
		}
	}
}
