// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/samhaengsi/broker"
	"github.com/danielhkuo/samhaengsi/models"
)

// Database types
const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

// SQL stores both collections in a database/sql database. Timestamps are
// unix microseconds and poem lines are a JSON array, so one schema serves
// both dialects.
type SQL struct {
	db       *sql.DB
	dialect  string
	notifier broker.Notifier
	clock    *clock
}

func NewSQL(db *sql.DB, dialect string, n broker.Notifier) *SQL {
	if n == nil {
		n = broker.NewLocal()
	}
	return &SQL{db: db, dialect: dialect, notifier: n, clock: newClock(time.Now)}
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func (s *SQL) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQL) CreateTopic(ctx context.Context, t models.Topic) (models.Topic, error) {
	if !validWord(t.Word) {
		return models.Topic{}, fmt.Errorf("%w: %q", ErrInvalidWord, t.Word)
	}
	t.ID = uuid.NewString()
	t.CreatedAt = s.clock.stamp()

	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO topics (id, word, category, created_at)
		VALUES (?, ?, ?, ?)
	`), t.ID, t.Word, t.Category, t.CreatedAt.UnixMicro())
	if err != nil {
		return models.Topic{}, fmt.Errorf("failed to insert topic: %w", err)
	}

	t.Category = categoryOrDefault(t.Category)
	notify(ctx, s.notifier, models.CollectionTopics)
	return t, nil
}

func (s *SQL) ListTopics(ctx context.Context) ([]models.Topic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, word, category, created_at
		FROM topics
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	topics := []models.Topic{}
	for rows.Next() {
		var t models.Topic
		var created int64
		if err := rows.Scan(&t.ID, &t.Word, &t.Category, &created); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		t.Category = categoryOrDefault(t.Category)
		t.CreatedAt = time.UnixMicro(created).UTC()
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read topics: %w", err)
	}
	return topics, nil
}

func (s *SQL) DeleteTopic(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind(`DELETE FROM topics WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete topic: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("topic %s: %w", id, ErrNotFound)
	}

	notify(ctx, s.notifier, models.CollectionTopics)
	return nil
}

func (s *SQL) CreatePoem(ctx context.Context, p models.Poem) (models.Poem, error) {
	if p.Lines == nil {
		p.Lines = []string{}
	}
	linesJSON, err := json.Marshal(p.Lines)
	if err != nil {
		return models.Poem{}, fmt.Errorf("failed to marshal lines: %w", err)
	}
	p.ID = uuid.NewString()
	p.CreatedAt = s.clock.stamp()

	_, err = s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO poems (id, topic, lines, created_at)
		VALUES (?, ?, ?, ?)
	`), p.ID, p.Topic, string(linesJSON), p.CreatedAt.UnixMicro())
	if err != nil {
		return models.Poem{}, fmt.Errorf("failed to insert poem: %w", err)
	}

	notify(ctx, s.notifier, models.CollectionPoems)
	return p, nil
}

func (s *SQL) ListPoems(ctx context.Context) ([]models.Poem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, topic, lines, created_at
		FROM poems
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query poems: %w", err)
	}
	defer rows.Close()

	poems := []models.Poem{}
	for rows.Next() {
		var p models.Poem
		var linesJSON string
		var created int64
		if err := rows.Scan(&p.ID, &p.Topic, &linesJSON, &created); err != nil {
			return nil, fmt.Errorf("failed to scan poem: %w", err)
		}
		if err := json.Unmarshal([]byte(linesJSON), &p.Lines); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lines of poem %s: %w", p.ID, err)
		}
		p.CreatedAt = time.UnixMicro(created).UTC()
		poems = append(poems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read poems: %w", err)
	}
	return poems, nil
}

func (s *SQL) SubscribePoems(ctx context.Context, fn func([]models.Poem)) (func(), error) {
	return subscribe(ctx, s.notifier, models.CollectionPoems, s.ListPoems, fn)
}
