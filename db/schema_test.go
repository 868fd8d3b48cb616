// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open sqlite: %v", err)
	}
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestCreateSchema_Idempotent(t *testing.T) {
	conn := openSQLite(t)

	for i := 0; i < 2; i++ {
		if err := CreateSchema(conn); err != nil {
			t.Fatalf("CreateSchema() run %d error = %v", i+1, err)
		}
	}

	for _, table := range []string{"topics", "poems"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("Expected table %s to exist: %v", table, err)
		}
	}
}

func TestCreateSchema_WordLengthCheck(t *testing.T) {
	conn := openSQLite(t)
	if err := CreateSchema(conn); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		word    string
		wantErr bool
	}{
		{"봄", false},
		{"가나다라마바", false},
		{"가나다라마바사", true},
		{"", true},
	}

	for i, tt := range tests {
		_, err := conn.Exec(`INSERT INTO topics (id, word, created_at) VALUES (?, ?, ?)`, i, tt.word, i)
		if (err != nil) != tt.wantErr {
			t.Errorf("insert %q: err = %v, wantErr %v", tt.word, err, tt.wantErr)
		}
	}
}
