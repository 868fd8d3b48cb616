// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package broker carries "collection changed" signals between the store and
live subscribers.

Signals carry no data. A subscriber that hears one re-reads the whole
collection, so every delivery is a full snapshot and nothing has to be
merged.

# Implementations

  - Local: in-process, the default for a single server
  - NATS: core NATS subjects samhaengsi.changed.<collection>, for several
    instances sharing one database
  - Postgres: LISTEN/NOTIFY on samhaengsi_<collection>, for several
    instances without a NATS server

	n, err := broker.NewNATS("nats://localhost:4222")
	cancel, err := n.Listen(ctx, "poems", func() { ... })
	defer cancel()
*/
package broker
