// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the samhaengsi page.

# Handler Types

Each handler is a struct holding only the store view and config it needs:

  - TopicHandler: today's topic, reroll, and the admin topic pool
  - PoemHandler: live draft validation, submission and the poem list
  - LiveHandler: the websocket feed carousel
  - AdminHandler: password check for the admin screen
  - PageHandler: server-rendered index and admin pages

Handlers are created via constructor functions:

	topicHandler := handlers.NewTopicHandler(st, cfg, m)

A nil *metrics.Metrics is accepted everywhere and records nothing.

# Topics

	GET  /api/topics/today  → GetToday (daily pick from the featured category)
	POST /api/topics/reroll → Reroll (uniform random pick)

Both answer with the word and one empty line per character. An empty pool
or a featured category without topics is a 404 with a Korean message.

# Poems

	POST /api/poems/validate → ValidatePoem (per-line first-character errors)
	POST /api/poems          → CreatePoem
	GET  /api/poems          → ListPoems (newest first)
	GET  /api/poems/live     → LiveHandler.Stream

CreatePoem re-runs the same checks as ValidatePoem and stores nothing when
they fail. Lines are stored exactly as typed.

# Live Feed

Stream upgrades to a websocket and pushes a feed.Frame whenever the poem
set changes, the autoplay ticker fires, or the viewer sends an action:

	{"action": "next"} | {"action": "prev"} | {"action": "interact"}

Any action stops autoplay for that connection.

# Admin

	POST   /api/admin/login             → Login
	GET    /api/admin/topics            → ListTopics
	POST   /api/admin/topics            → CreateTopic
	DELETE /api/admin/topics/{id}       → DeleteTopic
	GET    /api/admin/suggestions       → Suggestions
	POST   /api/admin/suggestions/{word} → AddSuggestion

Everything except Login is wrapped in middleware.RequireAdmin and expects
the X-Admin-Password header.
*/
package handlers
