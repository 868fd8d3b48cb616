// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the samhaengsi server.

Samhaengsi (삼행시) is a community page for Korean acrostic poems. Each day
the page picks a topic word from the featured category; visitors write one
line per character, each starting with that character, and every submitted
poem shows up in a live carousel for everyone on the page.

# Starting the Server

With no configuration the server uses a local sqlite file:

	go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -notifier postgres

A .env file in the working directory is loaded first, and -c points to a
YAML config file. Flags win over environment variables, which win over the
file.

# Configuration

Common settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or memory (default: sqlite)
  - DATABASE_URL (-d): Connection string; required for postgres
  - ADMIN_PASSWORD (-admin-password): Admin screen password
  - NOTIFIER (-notifier): local, nats or postgres (default: local)
  - FEATURED_CATEGORY (-category): Season shown on the page (default: 봄)
  - SEED_TOPICS (-seed): Add the suggested words on startup

When ADMIN_PASSWORD is empty the admin screen accepts a built-in default
and the server logs a warning.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (topics, poems, live feed, pages)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, admin guard, JSON helpers
  - store: Topic and poem storage (sqlite, postgres, memory)
  - broker: Change notification (local, NATS, postgres LISTEN/NOTIFY)
  - topic, poem, feed: Topic picking, poem validation, carousel state
  - web: Embedded templates and the rendered guide
  - metrics: Prometheus instrumentation
  - auth: Admin password gate
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
