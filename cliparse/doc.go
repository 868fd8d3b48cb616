// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Each value is taken from the first source that sets it:

 1. CLI flag
 2. Environment variable (a .env file is loaded by LoadDotEnv first)
 3. YAML config file given with -c or CONFIG_FILE
 4. Default

# CLI Flags

	-p               Server port (PORT, default 3318)
	-d               Database URL (DATABASE_URL)
	-t               sqlite, postgres or memory (DATABASE_TYPE, default sqlite)
	-c               YAML config file (CONFIG_FILE)
	-notifier        local, nats or postgres (NOTIFIER, default local)
	-nats-url        NATS server URL (NATS_URL)
	-category        Featured topic category (FEATURED_CATEGORY, default 봄)
	-suggestions     Comma-separated suggested topics (SUGGESTIONS)
	-tz              Time zone of the daily topic (TIME_ZONE, default Asia/Seoul)
	-autoplay        Carousel autoplay interval (AUTOPLAY_INTERVAL, default 4s)
	-seed            Seed suggestions into an empty topic pool (SEED_TOPICS)
	-admin-password  Admin password (ADMIN_PASSWORD)
	-log-level       debug, info, warn or error (LOG_LEVEL, default info)

# Config File

The file uses snake_case keys named after the environment variables:

	port: 3318
	database_type: postgres
	database_url: postgres://localhost/samhaengsi
	notifier: postgres
	featured_category: 봄
	suggestions: [봄바람, 꽃놀이, 새싹]
	autoplay_interval: 4s

# Validation

ParseFlags returns an error when:

  - postgres is selected without a database URL
  - the nats notifier has no NATS_URL
  - the postgres notifier runs on a non-postgres database
  - the category, time zone or autoplay interval is unknown or malformed
  - a suggestion is blank or longer than six characters (suggestions are
    stored trimmed)

An empty admin password is allowed; the auth package falls back to its
default and main logs a warning.
*/
package cliparse
