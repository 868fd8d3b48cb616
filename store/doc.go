// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the document store behind the topic pool and the poem feed.

# Collections

  - topics: create, list (oldest first), delete
  - poems: create, list (newest first), subscribe; append-only

The store assigns ids (UUIDv4) and creation timestamps.

# Subscriptions

SubscribePoems delivers the full ordered snapshot immediately and again
after every change:

	unsubscribe, err := st.SubscribePoems(ctx, func(poems []models.Poem) {
		// replace the local copy wholesale
	})
	defer unsubscribe()

Change signals come from a broker.Notifier; each signal triggers a re-read,
and signals that pile up during a read collapse into one.

# Implementations

  - Memory: process-local maps, for tests and throwaway runs
  - SQL: database/sql on sqlite or postgres (schema from package db)
*/
package store
