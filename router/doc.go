// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the samhaengsi page.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

Every route except /health and /metrics is wrapped in request logging and
Prometheus instrumentation labelled with its pattern.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Pages:

	GET /       - Main page (topic, form, live strip, guide)
	GET /admin  - Admin page

Topic of the day (public):

	GET  /api/topics/today  - Daily pick from the featured category
	POST /api/topics/reroll - Uniform random pick

Poems (public):

	POST /api/poems/validate - Per-line errors and the submit gate
	POST /api/poems          - Submit a poem
	GET  /api/poems          - Newest first
	GET  /api/poems/live     - WebSocket carousel feed

Admin (requires X-Admin-Password, except login):

	POST   /api/admin/login
	GET    /api/admin/topics
	POST   /api/admin/topics
	DELETE /api/admin/topics/{id}
	GET    /api/admin/suggestions
	POST   /api/admin/suggestions/{word}

# Handler Initialization

The router creates handler instances with dependency injection:

	topicHandler := handlers.NewTopicHandler(st, cfg, m)
	poemHandler := handlers.NewPoemHandler(st, m)
	liveHandler := handlers.NewLiveHandler(st, cfg, m)

All handlers share one store and one metrics registry.
*/
package router
