// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package broker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ChannelPrefix namespaces LISTEN/NOTIFY channels.
const ChannelPrefix = "samhaengsi_"

// Postgres relays signals with LISTEN/NOTIFY. Publishing goes through a
// pool; every Listen holds one dedicated connection.
type Postgres struct {
	url  string
	pool *pgxpool.Pool

	ctx  context.Context // cancelled by Close
	stop context.CancelFunc
	wg   sync.WaitGroup
}

func NewPostgres(ctx context.Context, url string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database URL: %w", err)
	}
	config.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	pctx, stop := context.WithCancel(context.Background())
	return &Postgres{url: url, pool: pool, ctx: pctx, stop: stop}, nil
}

func channel(collection string) string {
	return ChannelPrefix + collection
}

func (p *Postgres) Publish(ctx context.Context, collection string) error {
	if _, err := p.pool.Exec(ctx, "SELECT pg_notify($1, '')", channel(collection)); err != nil {
		return fmt.Errorf("notify %s: %w", collection, err)
	}
	return nil
}

func (p *Postgres) Listen(ctx context.Context, collection string, fn func()) (func(), error) {
	conn, err := pgx.Connect(ctx, p.url)
	if err != nil {
		return nil, fmt.Errorf("listen connection: %w", err)
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{channel(collection)}.Sanitize()); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("listen %s: %w", collection, err)
	}

	lctx, cancel := context.WithCancel(p.ctx)
	stopAfter := context.AfterFunc(ctx, cancel)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer stopAfter()
		defer func() {
			closeCtx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			conn.Close(closeCtx)
		}()
		for {
			if _, err := conn.WaitForNotification(lctx); err != nil {
				if !errors.Is(err, context.Canceled) && lctx.Err() == nil {
					slog.Error("postgres listener stopped", "collection", collection, "error", err)
				}
				return
			}
			fn()
		}
	}()
	return cancel, nil
}

func (p *Postgres) Close() error {
	p.stop()
	p.wg.Wait()
	p.pool.Close()
	return nil
}
