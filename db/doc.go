// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The same statements run on sqlite (modernc.org/sqlite) and postgres
(lib/pq).

# Tables

  - topics: id, word (1-6 characters), category, created_at
  - poems: id, topic (copied word), lines (JSON array), created_at

There is no foreign key between poems and topics: a poem keeps its own copy
of the word, so deleting a topic never touches existing poems.

created_at is unix microseconds (BIGINT) in both tables.

# Indexes

  - topics.created_at
  - poems.created_at
*/
package db
