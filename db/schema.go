// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The schema is shared by sqlite and postgres: created_at holds unix
// microseconds and poems.lines a JSON array of strings.
const schema = `
-- Topics
CREATE TABLE IF NOT EXISTS topics (
    id TEXT PRIMARY KEY,
    word TEXT NOT NULL CHECK (length(word) BETWEEN 1 AND 6),
    category TEXT NOT NULL DEFAULT '',
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_topics_created_at ON topics(created_at);

-- Poems
CREATE TABLE IF NOT EXISTS poems (
    id TEXT PRIMARY KEY,
    topic TEXT NOT NULL,
    lines TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_poems_created_at ON poems(created_at);
`
